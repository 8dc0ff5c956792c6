package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Element wraps a single element node. Obtain elements through a Document;
// never construct them directly, or the document's wrapper cache and
// revision tracking are bypassed.
type Element struct {
	node *html.Node
	doc  *Document

	// revision counts structural mutations to this element's child list.
	// Tests and the surface cache use it to observe whether a render pass
	// actually touched the DOM.
	revision int
}

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// Revision returns the number of structural mutations applied to this
// element's children since creation.
func (e *Element) Revision() int {
	return e.revision
}

// ID returns the element's id attribute, or "".
func (e *Element) ID() string {
	return e.Attr("id")
}

// SetID sets the element's id attribute.
func (e *Element) SetID(id string) {
	e.SetAttr("id", id)
}

// Attr returns the value of the named attribute, or "".
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the named attribute, replacing any existing value.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// Classes returns the element's class list in order.
func (e *Element) Classes() []string {
	return strings.Fields(e.Attr("class"))
}

// HasClass reports whether the element carries the given class.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Classes() {
		if c == name {
			return true
		}
	}
	return false
}

// AddClasses appends the given classes, skipping ones already present and
// empty strings.
func (e *Element) AddClasses(names ...string) {
	classes := e.Classes()
	for _, n := range names {
		if n == "" || e.HasClass(n) {
			continue
		}
		classes = append(classes, n)
	}
	e.setClasses(classes)
}

// RemoveClasses removes the given classes if present.
func (e *Element) RemoveClasses(names ...string) {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}
	var kept []string
	for _, c := range e.Classes() {
		if _, gone := drop[c]; !gone {
			kept = append(kept, c)
		}
	}
	e.setClasses(kept)
}

func (e *Element) setClasses(classes []string) {
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(classes, " "))
}

// Parent returns the parent element, or nil for detached elements and
// elements whose parent is not an element node.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return e.doc.wrap(p)
}

// Children returns the element's child elements (text nodes excluded).
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, e.doc.wrap(c))
		}
	}
	return out
}

// Contains reports whether other is a descendant of e (or e itself).
func (e *Element) Contains(other *Element) bool {
	if other == nil {
		return false
	}
	for n := other.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// Descendant returns the descendant element with the given id, or nil.
// Scoped counterpart to Document.ByID for subtrees that are not attached
// to the document.
func (e *Element) Descendant(id string) *Element {
	if id == "" {
		return nil
	}
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if n := findByID(c, id); n != nil {
			return e.doc.wrap(n)
		}
	}
	return nil
}

// AppendChild appends child to this element, detaching it from any current
// parent first.
func (e *Element) AppendChild(child *Element) {
	child.Remove()
	e.node.AppendChild(child.node)
	e.revision++
}

// InsertBefore inserts child into this element immediately before ref.
// If ref is nil or not a child of this element, child is appended.
func (e *Element) InsertBefore(child, ref *Element) {
	child.Remove()
	if ref == nil || ref.node.Parent != e.node {
		e.node.AppendChild(child.node)
	} else {
		e.node.InsertBefore(child.node, ref.node)
	}
	e.revision++
}

// Append appends content to this element. Strings are parsed as HTML
// fragments (all parsed nodes are appended), elements are moved in, and
// any other value is appended as text.
func (e *Element) Append(content any) error {
	switch v := content.(type) {
	case string:
		nodes, err := parseFragment(v)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			e.node.AppendChild(n)
		}
		e.revision++
		return nil
	case *Element:
		e.AppendChild(v)
		return nil
	default:
		e.AppendText(fmt.Sprint(content))
		return nil
	}
}

// AppendText appends a text node with the given content.
func (e *Element) AppendText(s string) {
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	e.revision++
}

// RemoveChildren removes all child nodes. No-op (and no revision bump) on
// an already-empty element.
func (e *Element) RemoveChildren() {
	if e.node.FirstChild == nil {
		return
	}
	for e.node.FirstChild != nil {
		e.node.RemoveChild(e.node.FirstChild)
	}
	e.revision++
}

// Remove detaches the element from its parent. Safe to call when already
// detached.
func (e *Element) Remove() {
	p := e.node.Parent
	if p == nil {
		return
	}
	p.RemoveChild(e.node)
	if p.Type == html.ElementNode {
		e.doc.wrap(p).revision++
	}
}

// InnerHTML serializes the element's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

// OuterHTML serializes the element including its own tag.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	_ = html.Render(&sb, e.node)
	return sb.String()
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return sb.String()
}
