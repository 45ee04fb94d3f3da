// Package render — Markdown renderer.
// Converts HTML into Markdown with html-to-markdown, for reviewing course
// content outside Moodle.
package render

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/gaurav-prasanna/coursebuild/core"
)

// MarkdownRenderer converts HTML to Markdown.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts the HTML document into Markdown bytes.
func (r *MarkdownRenderer) Render(html string, meta core.DocumentMeta) ([]byte, error) {
	markdown, err := toMarkdown(html)
	if err != nil {
		return nil, err
	}
	return []byte(markdown), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// toMarkdown is shared with the PDF renderer, which lays out Markdown.
func toMarkdown(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
