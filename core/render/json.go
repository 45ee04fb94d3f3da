// Package render — JSON renderer.
// Describes a finished document's structure (headings, heading-delimited
// sections, links, list and table counts) so an operator can check what a
// merge or extraction produced without opening Moodle.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/coursebuild/core"
)

// JSONRenderer produces a structural summary of an HTML document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Heading is a single heading found in the document.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Section is the text between one heading and the next.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Link is a hyperlink found in the document.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Structure holds counts and lists parsed from the document.
type Structure struct {
	Headings []Heading `json:"headings"`
	Links    []Link    `json:"links"`
	Tables   int       `json:"tables"`
	Lists    int       `json:"lists"`
	Images   int       `json:"images"`
}

// DocumentJSON is the complete JSON output for a document.
type DocumentJSON struct {
	Metadata  core.DocumentMeta `json:"metadata"`
	Sections  []Section         `json:"sections"`
	Structure Structure         `json:"structure"`
}

// Render parses html and marshals its DocumentJSON.
func (r *JSONRenderer) Render(html string, meta core.DocumentMeta) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	out := DocumentJSON{
		Metadata: meta,
		Sections: buildSections(doc),
		Structure: Structure{
			Headings: extractHeadings(doc),
			Links:    extractLinks(doc),
			Tables:   doc.Find("table").Length(),
			Lists:    doc.Find("ul, ol").Length(),
			Images:   doc.Find("img").Length(),
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

const headingSelector = "h1, h2, h3, h4, h5, h6"

func headingLevel(s *goquery.Selection) int {
	name := goquery.NodeName(s)
	if len(name) == 2 && name[0] == 'h' && name[1] >= '1' && name[1] <= '6' {
		return int(name[1] - '0')
	}
	return 0
}

func extractHeadings(doc *goquery.Document) []Heading {
	headings := []Heading{}
	doc.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, Heading{
			Level: headingLevel(s),
			Text:  collapse(s.Text()),
		})
	})
	return headings
}

func extractLinks(doc *goquery.Document) []Link {
	links := []Link{}
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		links = append(links, Link{Text: collapse(s.Text()), Href: href})
	})
	return links
}

// buildSections groups the text of each heading's following siblings.
func buildSections(doc *goquery.Document) []Section {
	sections := []Section{}
	doc.Find(headingSelector).Each(func(_ int, h *goquery.Selection) {
		var parts []string
		for sib := h.Next(); sib.Length() > 0 && headingLevel(sib) == 0; sib = sib.Next() {
			if text := collapse(sib.Text()); text != "" {
				parts = append(parts, text)
			}
		}
		sections = append(sections, Section{
			Heading: collapse(h.Text()),
			Level:   headingLevel(h),
			Text:    strings.Join(parts, "\n"),
		})
	})
	return sections
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
