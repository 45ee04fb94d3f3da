// Package slots moves week content from a formatted course build plan
// into the placeholder tokens of a Moodle HTML template.
//
// Extraction walks each week marker (h1) and looks for the expected
// heading sequence h3, h4, h4, h4, h4, h4. A section's body is every
// sibling after its heading up to the next h1, h3 or h4.
package slots

import (
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/document"
	"golang.org/x/net/html"
)

// sectionHeadings is the fixed heading sequence inside one week.
var sectionHeadings = []struct {
	id  core.SectionID
	tag string
}{
	{core.SectionOverview, "h3"},
	{core.SectionLearningGoals, "h4"},
	{core.SectionKeyTopics, "h4"},
	{core.SectionResources, "h4"},
	{core.SectionSignificance, "h4"},
	{core.SectionWhatsNext, "h4"},
}

var stopTags = map[string]bool{"h1": true, "h3": true, "h4": true}

// ExtractWeeks returns one Week per h1 in document order. A heading that
// cannot be found leaves its section, and every later one in that week,
// empty. The search for a week's headings never runs past the next h1.
func ExtractWeeks(doc *document.Document) ([]core.Week, error) {
	markers := doc.Find("h1, h3, h4")
	nodes := markers.Nodes

	var weeks []core.Week
	for i, n := range nodes {
		if n.Data != "h1" {
			continue
		}

		end := i + 1
		for end < len(nodes) && nodes[end].Data != "h1" {
			end++
		}

		week := core.Week{Label: collapseSpace(markers.Eq(i).Text())}
		pos := i
		for _, sh := range sectionHeadings {
			found := nextHeading(nodes, pos+1, end, sh.tag)
			if found < 0 {
				break
			}
			body, err := sectionBody(nodes[found])
			if err != nil {
				return nil, err
			}
			week.SetSection(sh.id, body)
			pos = found
		}

		weeks = append(weeks, week)
	}
	return weeks, nil
}

// nextHeading returns the index of the first node in nodes[from:end] with
// the given tag, or -1.
func nextHeading(nodes []*html.Node, from, end int, tag string) int {
	for j := from; j < end; j++ {
		if nodes[j].Data == tag {
			return j
		}
	}
	return -1
}

// sectionBody serializes the siblings that follow heading, stopping at the
// first stop tag.
func sectionBody(heading *html.Node) (string, error) {
	var body []*html.Node
	for sib := heading.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == html.ElementNode && stopTags[sib.Data] {
			break
		}
		body = append(body, sib)
	}

	out, err := document.RenderNodes(body...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

