package heading

import (
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/coursebuild/core/document"
	"github.com/gaurav-prasanna/coursebuild/core/normalize"
)

// ErrConflictingHeading is returned by RejectConflicts when the same
// normalized text appears under two different heading levels.
var ErrConflictingHeading = errors.New("conflicting template heading")

// CollisionPolicy decides what happens when two template headings share
// the same normalized text.
type CollisionPolicy int

const (
	// LastWins keeps the tag of the last heading seen.
	LastWins CollisionPolicy = iota
	// FirstWins keeps the tag of the first heading seen.
	FirstWins
	// RejectConflicts fails when duplicates disagree on the tag.
	RejectConflicts
)

// ParsePolicy maps a flag value to a CollisionPolicy.
func ParsePolicy(s string) (CollisionPolicy, error) {
	switch s {
	case "", "last":
		return LastWins, nil
	case "first":
		return FirstWins, nil
	case "reject":
		return RejectConflicts, nil
	}
	return LastWins, fmt.Errorf("unknown collision policy %q (want last, first or reject)", s)
}

const headingSelector = "h1, h2, h3, h4, h5, h6"

// Template maps normalized heading text to a tag name.
type Template map[string]string

// Lookup returns the tag for an already-normalized key.
func (t Template) Lookup(key string) (string, bool) {
	tag, ok := t[key]
	return tag, ok
}

// BuildTemplate collects every h1..h6 of doc into a Template.
// Headings with empty text are ignored.
func BuildTemplate(doc *document.Document, policy CollisionPolicy) (Template, error) {
	tpl := make(Template)
	var err error

	doc.Find(headingSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		key := normalize.Text(s.Text())
		if key == "" {
			return true
		}
		tag := goquery.NodeName(s)

		if prev, seen := tpl[key]; seen {
			switch policy {
			case FirstWins:
				return true
			case RejectConflicts:
				if prev != tag {
					err = fmt.Errorf("%w: %q is both %s and %s", ErrConflictingHeading, key, prev, tag)
					return false
				}
			}
		}
		tpl[key] = tag
		return true
	})

	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// DefaultTemplate is the standard Course Build Plan heading layout.
const DefaultTemplate = `
<h3>Overview</h3>
<h4>This Week's Learning Goals</h4>
<h4>Key Topics for the Week</h4>
<h4>Resources</h4>
<h4>Significance</h4>
<h4>What's Next?</h4>
<h3>Introduction</h3>
<h3>Initial Post Instructions (Due Wednesday)</h3>
<h3>Follow-up Post Instructions (Due Saturday)</h3>
<h3>Tips for Success</h3>
<h3>Writing Requirements</h3>
<h3>Weekly Learning Goal(s)</h3>
<h3>Introduction</h3>
<h3>Activity Instructions</h3>
<h3>Tips for Success</h3>
<h3>Writing and Submission Requirements</h3>
<h3>Weekly Learning Goal(s)</h3>
`
