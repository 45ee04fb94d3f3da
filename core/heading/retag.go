package heading

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/coursebuild/core/document"
	"github.com/gaurav-prasanna/coursebuild/core/lists"
	"github.com/gaurav-prasanna/coursebuild/core/normalize"
	"golang.org/x/net/html/atom"
)

const retagSelector = "p, " + headingSelector

// Retag renames every p and h1..h6 element of design whose text classifies
// against tpl. Only the tag name changes; attributes and children are kept
// and no node is added or removed. Returns the number of renamed elements.
func Retag(design *document.Document, tpl Template) int {
	renamed := 0
	design.Find(retagSelector).Each(func(_ int, s *goquery.Selection) {
		tag, ok := Classify(s.Text(), tpl)
		if !ok {
			return
		}
		n := s.Get(0)
		if n.Data == tag {
			return
		}
		n.Data = tag
		n.DataAtom = atom.Lookup([]byte(tag))
		renamed++
	})
	return renamed
}

// Options controls Format.
type Options struct {
	Policy     CollisionPolicy
	MergeLists bool
}

// Result is the output of Format.
type Result struct {
	HTML        string
	Retagged    int
	ListsMerged int
}

// Format runs the whole heading pass: parse both documents, build the
// template, retag the design, optionally merge adjacent lists, serialize
// and straighten any remaining curly quotes.
func Format(designHTML, templateHTML string, opts Options) (*Result, error) {
	design, err := document.Parse(designHTML)
	if err != nil {
		return nil, err
	}
	templateDoc, err := document.Parse(templateHTML)
	if err != nil {
		return nil, err
	}

	tpl, err := BuildTemplate(templateDoc, opts.Policy)
	if err != nil {
		return nil, err
	}

	res := &Result{Retagged: Retag(design, tpl)}
	if opts.MergeLists {
		res.ListsMerged = lists.MergeAdjacent(design.Root())
	}

	out, err := design.HTML()
	if err != nil {
		return nil, err
	}
	res.HTML = normalize.StraightenQuotes(out)
	return res, nil
}
