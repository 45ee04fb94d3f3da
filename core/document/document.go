// Package document wraps a parsed HTML tree for in-place transformation.
// A Document remembers whether its source was a bare fragment so that
// serialization gives back a fragment rather than a full html/head/body page.
// Leading metadata such as <style> or <meta> in a fragment is hoisted into
// <head> by the parser and is written back ahead of the body content.
package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/coursebuild/core"
	"golang.org/x/net/html"
)

var documentElementRegex = regexp.MustCompile(`(?i)<(html|head|body)[\s>/]`)

// Document is a parsed HTML tree owned by a single invocation.
type Document struct {
	*goquery.Document
	fragment bool
}

// Parse parses raw HTML. Empty or whitespace-only input is ErrMissingInput.
func Parse(raw string) (*Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, core.ErrMissingInput
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return &Document{
		Document: doc,
		fragment: !documentElementRegex.MatchString(raw),
	}, nil
}

// IsFragment reports whether the source had no <html>, <head> or <body> tag.
func (d *Document) IsFragment() bool {
	return d.fragment
}

// Root returns the document node at the top of the tree.
func (d *Document) Root() *html.Node {
	return d.Nodes[0]
}

// HTML serializes the document. Fragments render the head's children
// followed by the body's children, without the wrapping elements.
func (d *Document) HTML() (string, error) {
	if !d.fragment {
		return d.Html()
	}
	var nodes []*html.Node
	for _, wrapper := range d.Find("head, body").Nodes {
		for c := wrapper.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
	}
	return RenderNodes(nodes...)
}

// RenderNodes serializes nodes in order and concatenates the result.
func RenderNodes(nodes ...*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering node: %w", err)
		}
	}
	return buf.String(), nil
}
