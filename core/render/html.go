// Package render provides output renderers for finished course HTML.
// This file implements the HTML renderer, which is a simple passthrough.
package render

import (
	"github.com/gaurav-prasanna/coursebuild/core"
)

// HTMLRenderer writes HTML as-is. It's the default renderer since every
// tool already produces HTML ready to paste into Moodle.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns the HTML as bytes (passthrough).
func (r *HTMLRenderer) Render(html string, meta core.DocumentMeta) ([]byte, error) {
	return []byte(html), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
