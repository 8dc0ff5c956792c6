// Package dom provides the in-memory HTML document that quilt components
// render into. It is a thin ownership layer over golang.org/x/net/html:
// nodes are the real parser nodes, and every node is represented by exactly
// one *Element wrapper for the document's lifetime, so identity comparisons
// and per-element revision counters are stable.
//
// The package deliberately implements only what the component engine needs:
// element creation, child manipulation, class handling, id lookup,
// serialization, and event delegation. It is not a general DOM.
package dom

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrBadContent is returned when content cannot be converted to an element.
var ErrBadContent = errors.New("dom: content is not convertible to an element")

// Document is an in-memory HTML document.
//
// Not safe for concurrent use: a document is exclusively owned by the
// single goroutine driving its components, matching the synchronous
// execution model of the component engine.
type Document struct {
	root *html.Node // the <html> element
	head *html.Node
	body *html.Node

	// One wrapper per node, so the same node always yields the same
	// *Element and revision counters survive repeated lookups.
	wrappers map[*html.Node]*Element

	delegations []*Delegation
}

// NewDocument creates an empty document with html, head, and body elements.
func NewDocument() *Document {
	root := newNode("html")
	head := newNode("head")
	body := newNode("body")
	root.AppendChild(head)
	root.AppendChild(body)

	return &Document{
		root:     root,
		head:     head,
		body:     body,
		wrappers: make(map[*html.Node]*Element),
	}
}

// Body returns the document's body element.
func (d *Document) Body() *Element {
	return d.wrap(d.body)
}

// CreateElement creates a detached element with the given tag name.
func (d *Document) CreateElement(tag string) *Element {
	return d.wrap(newNode(tag))
}

// ByID returns the element with the given id attribute, searching the whole
// document tree. Returns nil if no element carries the id.
func (d *Document) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	if n := findByID(d.root, id); n != nil {
		return d.wrap(n)
	}
	return nil
}

// ToElement converts content into an element owned by this document.
//
// Accepts an *Element (returned as-is) or an HTML string, in which case the
// first element of the parsed fragment is returned. Anything else, or a
// string with no element content, yields ErrBadContent.
func (d *Document) ToElement(content any) (*Element, error) {
	switch v := content.(type) {
	case *Element:
		if v == nil {
			return nil, ErrBadContent
		}
		return v, nil
	case string:
		nodes, err := parseFragment(v)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			if n.Type == html.ElementNode {
				return d.wrap(n), nil
			}
		}
		return nil, ErrBadContent
	default:
		return nil, fmt.Errorf("%w: %T", ErrBadContent, content)
	}
}

// HTML serializes the entire document.
func (d *Document) HTML() string {
	var sb strings.Builder
	_ = html.Render(&sb, d.root)
	return sb.String()
}

// wrap returns the canonical *Element for a node, creating it on first use.
func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if el, ok := d.wrappers[n]; ok {
		return el
	}
	el := &Element{node: n, doc: d}
	d.wrappers[n] = el
	return el
}

func newNode(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

// parseFragment parses an HTML fragment in body context.
func parseFragment(s string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(s), ctx)
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
