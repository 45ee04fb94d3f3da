package slots

import (
	"strings"

	"github.com/gaurav-prasanna/coursebuild/core"
	"github.com/gaurav-prasanna/coursebuild/core/document"
)

// MergeResult is the output of Merge.
type MergeResult struct {
	HTML     string
	Weeks    []core.Week
	Unfilled []string // placeholders left in HTML
}

// Merge extracts the weeks of planHTML and fills them into templateHTML.
// When filler returns an error the partially filled result is returned
// with it.
func Merge(planHTML, templateHTML string, filler core.SlotFiller) (*MergeResult, error) {
	if strings.TrimSpace(templateHTML) == "" {
		return nil, core.ErrMissingInput
	}
	plan, err := document.Parse(planHTML)
	if err != nil {
		return nil, err
	}

	weeks, err := ExtractWeeks(plan)
	if err != nil {
		return nil, err
	}

	out, fillErr := filler.Fill(templateHTML, weeks)
	res := &MergeResult{
		HTML:     out,
		Weeks:    weeks,
		Unfilled: Unfilled(templateHTML, len(weeks)),
	}
	return res, fillErr
}
