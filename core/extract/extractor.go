// Package extract isolates course content from full Moodle pages.
// Moodle pages carry the authored material inside a NextGen4 container;
// everything else (navigation, blocks, submission widgets) is dropped.
// Each method reports whether the content was found so callers can decide
// which placeholder to emit.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

var (
	sectionItem     = cascadia.MustCompile("li.section")
	sectionContent  = cascadia.MustCompile("div.NextGen4")
	activityContent = cascadia.MustCompile("div.NextGen4.TU-activity-page")
	internalLinks   = cascadia.MustCompile("p.Internal_Links")

	// Tried in order; the first match wins.
	forumDescription = []cascadia.Selector{
		cascadia.MustCompile("div.hsuforum-description"),
		cascadia.MustCompile("div.instructions"),
		cascadia.MustCompile("div.content"),
	}
	assignmentDescription = []cascadia.Selector{
		cascadia.MustCompile("div.assignmenttext"),
		cascadia.MustCompile("div.description"),
	}
	assignmentNoise = cascadia.MustCompile(
		"div.submissionstatustable, table.submissionstatustable, div.gradingsummary, table.gradingsummary",
	)
)

// HTMLExtractor pulls Moodle content blocks out of fetched pages.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Parse reads raw page HTML into a queryable document.
func (e *HTMLExtractor) Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// FindSection returns the li.section whose id is exactly sectionID.
// The selection is empty when no such section exists.
func (e *HTMLExtractor) FindSection(doc *goquery.Document, sectionID string) *goquery.Selection {
	return doc.FindMatcher(sectionItem).FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, _ := s.Attr("id")
		return id == sectionID
	}).First()
}

// Section returns the cleaned NextGen4 block of the given course section.
func (e *HTMLExtractor) Section(doc *goquery.Document, sectionID string) (string, bool, error) {
	section := e.FindSection(doc, sectionID)
	if section.Length() == 0 {
		return "", false, nil
	}
	return outerWithout(section.FindMatcher(sectionContent).First(), internalLinks)
}

// ActivityPage returns the cleaned NextGen4 TU-activity-page block.
func (e *HTMLExtractor) ActivityPage(html string) (string, bool, error) {
	doc, err := e.Parse(html)
	if err != nil {
		return "", false, err
	}
	return outerWithout(doc.FindMatcher(activityContent).First(), internalLinks)
}

// ForumDescription returns the description block of a forum page.
func (e *HTMLExtractor) ForumDescription(html string) (string, bool, error) {
	doc, err := e.Parse(html)
	if err != nil {
		return "", false, err
	}
	return outerWithout(firstMatch(doc.Selection, forumDescription), nil)
}

// AssignmentDescription returns the description block of an assignment
// page with submission status and grading summaries removed.
func (e *HTMLExtractor) AssignmentDescription(html string) (string, bool, error) {
	doc, err := e.Parse(html)
	if err != nil {
		return "", false, err
	}
	return outerWithout(firstMatch(doc.Selection, assignmentDescription), assignmentNoise)
}

func firstMatch(root *goquery.Selection, sels []cascadia.Selector) *goquery.Selection {
	for _, sel := range sels {
		if found := root.FindMatcher(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return root.FindMatcher(sels[0]).First()
}

// outerWithout removes descendants matching noise and serializes s.
func outerWithout(s *goquery.Selection, noise goquery.Matcher) (string, bool, error) {
	if s.Length() == 0 {
		return "", false, nil
	}
	if noise != nil {
		s.FindMatcher(noise).Remove()
	}
	html, err := goquery.OuterHtml(s)
	if err != nil {
		return "", false, fmt.Errorf("serializing content: %w", err)
	}
	return html, true, nil
}
