package markdown

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

// sectionPair is one (heading, body) grouping produced by the walk.
// Body may be empty; pairs with an empty heading are never emitted.
type sectionPair struct {
	heading string
	body    string
}

// walkState is the finite-state machine grouping top-level nodes into
// heading/body pairs. Keeping the transitions explicit makes the edge
// cases (leading heading, heading immediately followed by heading)
// testable in isolation.
type walkState struct {
	heading string
	body    string
	pairs   []sectionPair
}

// onHeading applies the heading transition:
//
//	body non-empty               -> emit (heading, body), start new section
//	body empty, heading empty    -> adopt the heading
//	body empty, heading set      -> demote the new heading to body text
func (w *walkState) onHeading(text string) {
	switch {
	case w.body != "":
		w.emit()
		w.heading = text
	case w.heading == "":
		w.heading = text
	default:
		w.body = text
	}
}

// onBody appends a body element's text, newline-separated.
func (w *walkState) onBody(text string) {
	if text == "" {
		return
	}
	if w.body != "" {
		w.body += "\n"
	}
	w.body += text
}

// finish emits the final pending pair, if any heading is held.
func (w *walkState) finish() []sectionPair {
	if w.heading != "" {
		w.emit()
	}
	return w.pairs
}

func (w *walkState) emit() {
	if w.heading != "" {
		w.pairs = append(w.pairs, sectionPair{heading: w.heading, body: w.body})
	}
	w.heading = ""
	w.body = ""
}

// headingTags are the element names treated as headings during the walk.
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
	"title": true,
}

// sections walks the top-level children of a rendered document in order
// and groups them into heading/body pairs.
func sections(parent *xhtml.Node) []sectionPair {
	state := &walkState{}
	for node := parent.FirstChild; node != nil; node = node.NextSibling {
		switch node.Type {
		case xhtml.ElementNode:
			text := nodeText(node)
			if headingTags[node.Data] {
				state.onHeading(text)
			} else {
				state.onBody(text)
			}
		case xhtml.TextNode:
			state.onBody(strings.TrimSpace(node.Data))
		}
	}
	return state.finish()
}

// nodeText returns the trimmed text content of a node and its descendants.
func nodeText(node *xhtml.Node) string {
	var sb strings.Builder
	var walk func(*xhtml.Node)
	walk = func(n *xhtml.Node) {
		if n.Type == xhtml.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return strings.TrimSpace(sb.String())
}
