package moodle

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/crawl"
)

// DefaultWeeks is how many week sections are extracted when none are named.
const DefaultWeeks = 7

const (
	courseFetchFailed    = "<p>Failed to fetch course content.</p>"
	forumFetchFailed     = "<p>Failed to fetch forum content.</p>"
	forumNotFound        = "<p>No forum content found.</p>"
	assignmentFailed     = "<p>Failed to fetch assignment content.</p>"
	assignmentNotFound   = "<p>No assignment content found.</p>"
	activityFetchFailed  = "<p>Failed to fetch activity content.</p>"
	activityPageNotFound = "<p>No NextGen4 TU-activity-page content found.</p>"
)

// SectionRef names a course section to extract. ID is the li.section id,
// e.g. "section-3"; Name becomes the output heading.
type SectionRef struct {
	Name string
	ID   string
}

// WeekSections returns Week 1..n mapped to section-1..section-n.
// It returns nil when n is not positive.
func WeekSections(n int) []SectionRef {
	if n <= 0 {
		return nil
	}
	refs := make([]SectionRef, 0, n)
	for i := 1; i <= n; i++ {
		refs = append(refs, SectionRef{
			Name: fmt.Sprintf("Week %d", i),
			ID:   fmt.Sprintf("section-%d", i),
		})
	}
	return refs
}

// SectionOptions controls ExtractSections.
type SectionOptions struct {
	// Activities also pulls the forum and assignment descriptions linked
	// from each section.
	Activities bool
}

// SectionsResult is the combined section HTML plus what went into it.
type SectionsResult struct {
	HTML       string
	Sections   int
	Missing    []string // section ids that produced a placeholder
	Activities []core.Activity
}

// ExtractSections fetches each section in order and concatenates
// "<h2>{name}</h2>" plus its cleaned NextGen4 block. A section that cannot
// be fetched or found becomes a placeholder paragraph.
func (c *Client) ExtractSections(ctx context.Context, courseID string, refs []SectionRef, opts SectionOptions) (*SectionsResult, error) {
	if courseID == "" {
		return nil, fmt.Errorf("course id: %w", core.ErrMissingInput)
	}

	result := &SectionsResult{}
	var b strings.Builder
	for _, ref := range refs {
		log := c.log.With("course", courseID, "section", ref.ID)
		log.Info("extracting section")

		body, placeholder, activities, err := c.extractSection(ctx, courseID, ref, opts)
		if err != nil {
			return nil, err
		}
		if placeholder {
			result.Missing = append(result.Missing, ref.ID)
			log.Warn("section placeholder used", "placeholder", body)
		}

		fmt.Fprintf(&b, "<h2>%s</h2>\n%s\n", html.EscapeString(ref.Name), body)
		for _, a := range activities {
			content, err := c.activityDescription(ctx, a)
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&b, "<h3>%s</h3>\n<div class=\"activity-content\">%s</div>\n", html.EscapeString(a.Title), content)
		}

		result.Sections++
		result.Activities = append(result.Activities, activities...)
	}

	result.HTML = b.String()
	return result, nil
}

// extractSection reports placeholder=true when the section content could
// not be fetched or found.
func (c *Client) extractSection(ctx context.Context, courseID string, ref SectionRef, opts SectionOptions) (string, bool, []core.Activity, error) {
	page, ok, err := c.fetchPage(ctx, c.CourseURL(courseID))
	if err != nil {
		return "", false, nil, err
	}
	if !ok {
		return courseFetchFailed, true, nil, nil
	}

	doc, err := c.extractor.Parse(page)
	if err != nil {
		return "", false, nil, err
	}

	// Activities are discovered before the section block is cleaned.
	var activities []core.Activity
	if opts.Activities {
		if section := c.extractor.FindSection(doc, ref.ID); section.Length() > 0 {
			activities = crawl.SectionActivities(section, c.base)
		}
	}

	content, found, err := c.extractor.Section(doc, ref.ID)
	if err != nil {
		return "", false, nil, err
	}
	if !found {
		return fmt.Sprintf("<p>No content found for %s.</p>", html.EscapeString(ref.ID)), true, activities, nil
	}
	return content, false, activities, nil
}

func (c *Client) activityDescription(ctx context.Context, a core.Activity) (string, error) {
	c.log.Debug("extracting activity", "title", a.Title, "url", a.URL, "kind", a.Kind)

	page, ok, err := c.fetchPage(ctx, a.URL)
	if err != nil {
		return "", err
	}

	if a.Kind == core.ActivityForum {
		if !ok {
			return forumFetchFailed, nil
		}
		content, found, err := c.extractor.ForumDescription(page)
		if err != nil {
			return "", err
		}
		if !found {
			return forumNotFound, nil
		}
		return content, nil
	}

	if !ok {
		return assignmentFailed, nil
	}
	content, found, err := c.extractor.AssignmentDescription(page)
	if err != nil {
		return "", err
	}
	if !found {
		return assignmentNotFound, nil
	}
	return content, nil
}
