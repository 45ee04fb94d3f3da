// Package lists repairs list markup produced by lossy HTML converters,
// which often emit one <ul> per bullet instead of one list per run.
package lists

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"golang.org/x/net/html"
)

// MergeAdjacent coalesces consecutive sibling lists of the same kind
// (ul with ul, ol with ol) anywhere under root. The items of each later
// list are appended to the first list of the run and the emptied list is
// removed. Whitespace-only text between two lists does not break a run;
// any other node does. Returns the number of lists removed.
func MergeAdjacent(root *html.Node) int {
	if root == nil {
		return 0
	}

	removed := 0
	var run *html.Node // first list of the current run

	for child := root.FirstChild; child != nil; {
		next := child.NextSibling

		switch {
		case isList(child):
			if run != nil && dom.NodeName(run) == dom.NodeName(child) {
				absorb(run, child)
				removed++
			} else {
				run = child
			}
		case isBlankText(child):
			// Formatting whitespace between lists.
		default:
			run = nil
		}

		child = next
	}

	for child := root.FirstChild; child != nil; child = child.NextSibling {
		removed += MergeAdjacent(child)
	}
	return removed
}

// absorb moves every child of src to the end of dst, then removes src
// and the blank text that separated them.
func absorb(dst, src *html.Node) {
	for n := dst.NextSibling; n != nil && n != src; {
		next := n.NextSibling
		n.Parent.RemoveChild(n)
		n = next
	}

	for c := src.FirstChild; c != nil; {
		next := c.NextSibling
		src.RemoveChild(c)
		dst.AppendChild(c)
		c = next
	}

	src.Parent.RemoveChild(src)
}

func isList(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	name := dom.NodeName(n)
	return name == "ul" || name == "ol"
}

func isBlankText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}
