package moodle

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/fetch"
	"github.com/gaurav-prasanna/coursebuild/crawl"
)

// ActivitiesResult is the combined activity document.
type ActivitiesResult struct {
	HTML       string
	Activities []core.Activity
	Failed     int // activities that produced a placeholder
}

// ExtractActivities reads the gradebook setup page, then fetches every
// listed activity and collects its NextGen4 TU-activity-page block into one
// HTML document. The gradebook page itself must load; individual activity
// failures become placeholders.
func (c *Client) ExtractActivities(ctx context.Context, courseID string) (*ActivitiesResult, error) {
	if courseID == "" {
		return nil, fmt.Errorf("course id: %w", core.ErrMissingInput)
	}
	log := c.log.With("course", courseID)

	activities, err := c.gradebookActivities(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, fmt.Errorf("course %s: %w", courseID, ErrNoActivities)
	}
	log.Info("found activities", "count", len(activities))

	result := &ActivitiesResult{Activities: activities}
	var b strings.Builder
	b.WriteString("<html>\n<head><meta charset=\"UTF-8\"></head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>Extracted Activities for Course %s</h1>\n", html.EscapeString(courseID))

	for i, a := range activities {
		log.Debug("fetching activity", "index", i+1, "title", a.Title, "url", a.URL)

		content, err := c.activityPage(ctx, a.URL)
		if err != nil {
			return nil, err
		}
		if content == activityFetchFailed || content == activityPageNotFound {
			result.Failed++
			log.Warn("activity placeholder used", "title", a.Title, "placeholder", content)
		}
		fmt.Fprintf(&b, "<h2>%s</h2>\n%s\n", html.EscapeString(a.Title), content)
	}

	b.WriteString("</body>\n</html>")
	result.HTML = b.String()
	return result, nil
}

// FirstActivity returns the URL and raw page HTML of the first /mod/ link on
// the gradebook setup page.
func (c *Client) FirstActivity(ctx context.Context, courseID string) (string, string, error) {
	if courseID == "" {
		return "", "", fmt.Errorf("course id: %w", core.ErrMissingInput)
	}

	page, err := c.gradebookPage(ctx, courseID)
	if err != nil {
		return "", "", err
	}
	doc, err := c.extractor.Parse(page)
	if err != nil {
		return "", "", err
	}

	link, ok := crawl.FirstModuleLink(doc, c.base)
	if !ok {
		return "", "", fmt.Errorf("course %s: %w", courseID, ErrNoActivities)
	}

	res, err := c.session.Fetch(ctx, link)
	if err != nil {
		return "", "", fmt.Errorf("fetching first activity: %w", err)
	}
	return link, res.HTML, nil
}

func (c *Client) gradebookPage(ctx context.Context, courseID string) (string, error) {
	res, err := c.session.Fetch(ctx, c.GradebookURL(courseID))
	if err != nil {
		var se *fetch.StatusError
		if errors.As(err, &se) {
			return "", fmt.Errorf("gradebook setup page returned %d", se.StatusCode)
		}
		return "", fmt.Errorf("fetching gradebook setup page: %w", err)
	}
	return res.HTML, nil
}

func (c *Client) gradebookActivities(ctx context.Context, courseID string) ([]core.Activity, error) {
	page, err := c.gradebookPage(ctx, courseID)
	if err != nil {
		return nil, err
	}
	doc, err := c.extractor.Parse(page)
	if err != nil {
		return nil, err
	}
	return crawl.GradebookActivities(doc, c.base), nil
}

func (c *Client) activityPage(ctx context.Context, activityURL string) (string, error) {
	page, ok, err := c.fetchPage(ctx, activityURL)
	if err != nil {
		return "", err
	}
	if !ok {
		return activityFetchFailed, nil
	}
	content, found, err := c.extractor.ActivityPage(page)
	if err != nil {
		return "", err
	}
	if !found {
		return activityPageNotFound, nil
	}
	return content, nil
}
