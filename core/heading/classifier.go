// Package heading retags a course build plan's paragraphs and headings
// so that they match the heading levels of a reference template.
//
// Two rules decide an element's tag, in priority order:
//  1. Week headers ("Week 3: ..." or "Week 3 - ...") always become <h1>.
//  2. Text matching a template heading takes that heading's tag.
//
// Anything else is left untouched.
package heading

import (
	"regexp"

	"github.com/gaurav-prasanna/coursebuild/core/normalize"
)

// WeekTag is the tag every week header is promoted to.
const WeekTag = "h1"

var weekHeaderRegex = regexp.MustCompile(`(?i)^\s*week\s+\d+\s*[:\-]`)

// IsWeekHeader reports whether text begins like "Week 1:" or "Week 1 -".
func IsWeekHeader(text string) bool {
	return weekHeaderRegex.MatchString(text)
}

// Classify returns the target tag for an element with the given text.
// Empty text never matches.
func Classify(text string, tpl Template) (string, bool) {
	norm := normalize.Text(text)
	if norm == "" {
		return "", false
	}
	if IsWeekHeader(norm) {
		return WeekTag, true
	}
	return tpl.Lookup(norm)
}
