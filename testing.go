package quilt

import (
	"strings"

	"github.com/quiltui/quilt/lib/dom"
)

// TestBed bundles a fresh document and registry for widget tests.
//
// Each test gets its own bed, so type definitions and DOM state never leak
// between tests:
//
//	tb := quilt.NewTestBed()
//	tb.Registry.Define(quilt.Def{Name: "badge", Surfaces: ...})
//	c, err := tb.New("badge", quilt.Config{})
type TestBed struct {
	Doc      *dom.Document
	Registry *Registry
}

// NewTestBed creates a test bed with an empty document and a registry
// containing only the base type.
func NewTestBed() *TestBed {
	return &TestBed{
		Doc:      dom.NewDocument(),
		Registry: NewRegistry(),
	}
}

// New creates a component of the given type in the bed's document.
func (tb *TestBed) New(typeName string, cfg Config) (*Component, error) {
	return New(tb.Registry, typeName, tb.Doc, cfg)
}

// SeedBodyHTML appends an HTML fragment to the document body, simulating
// server-rendered markup for decoration tests.
func (tb *TestBed) SeedBodyHTML(fragment string) error {
	return tb.Doc.Body().Append(fragment)
}

// BodyHTML serializes the document body's contents.
func (tb *TestBed) BodyHTML() string {
	return tb.Doc.Body().InnerHTML()
}

// SurfaceHTML returns the serialized contents of a component's surface,
// resolving the surface element if needed. Returns "" for unknown ids.
func SurfaceHTML(c *Component, id string) string {
	el := c.SurfaceElement(id)
	if el == nil {
		return ""
	}
	return el.InnerHTML()
}

// ContainsHTML reports whether the serialized body contains the substring.
// Convenience for assertions that don't care about exact markup.
func (tb *TestBed) ContainsHTML(substr string) bool {
	return strings.Contains(tb.BodyHTML(), substr)
}

// MutationProbe observes structural DOM mutations on one element between
// two points in time. Used to assert that a render pass was (or was not)
// suppressed by the surface cache.
type MutationProbe struct {
	el   *dom.Element
	base int
}

// ProbeMutations starts observing an element.
func ProbeMutations(el *dom.Element) *MutationProbe {
	return &MutationProbe{el: el, base: el.Revision()}
}

// Count returns the number of structural mutations since the probe was
// created.
func (p *MutationProbe) Count() int {
	return p.el.Revision() - p.base
}

// Reset makes the current state the new baseline.
func (p *MutationProbe) Reset() {
	p.base = p.el.Revision()
}
