package quilt

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"

	"github.com/quiltui/quilt/lib/attrs"
)

// staticContent satisfies templ.Component with fixed markup.
type staticContent string

func (s staticContent) Render(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

func TestAddAndRemoveSurface(t *testing.T) {
	tb := cardBed(t)
	w := newCard(t, tb, Config{})

	if w.Surface("header") == nil || w.Surface("body") == nil {
		t.Fatal("declared surfaces missing after construction")
	}
	if w.Surface("ghost") != nil {
		t.Error("Surface(ghost) should be nil")
	}

	w.AddSurface("extra", SurfaceConfig{RenderAttrs: []string{"title"}})
	want := []string{"body", "extra", "header"}
	if got := w.SurfaceIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("SurfaceIDs() = %v, want %v", got, want)
	}

	w.RemoveSurface("extra")
	w.RemoveSurface("extra") // unknown id is a no-op
	if w.Surface("extra") != nil {
		t.Error("removed surface still registered")
	}
	if w.SurfaceElement("extra") != nil {
		t.Error("SurfaceElement for a removed surface should be nil")
	}
}

func TestRemoveSurfaceDetachesElement(t *testing.T) {
	tb := cardBed(t)
	w := newCard(t, tb, Config{})
	w.content["header"] = "h"
	if err := w.Render(nil, nil); err != nil {
		t.Fatal(err)
	}

	el := w.SurfaceElement("header")
	if el.Parent() == nil {
		t.Fatal("surface element should be attached after render")
	}
	w.RemoveSurface("header")
	if el.Parent() != nil {
		t.Error("surface element still attached after RemoveSurface")
	}
}

func TestSurfaceElementCreated(t *testing.T) {
	tb := NewTestBed()
	tb.Registry.Define(Def{
		Name:       "menu",
		SurfaceTag: "li",
		Surfaces:   map[string]SurfaceConfig{"items": {}},
	})
	c, err := tb.New("menu", Config{ID: "m1"})
	if err != nil {
		t.Fatal(err)
	}

	el := c.SurfaceElement("items")
	if el == nil {
		t.Fatal("SurfaceElement should create a missing element")
	}
	if el.Tag() != "li" {
		t.Errorf("created surface tag = %q, want li", el.Tag())
	}
	if el.ID() != "m1-items" {
		t.Errorf("surface id = %q, want m1-items", el.ID())
	}
	if el.Parent() != c.Element() {
		t.Error("created surface should hang off the root element")
	}
	if c.SurfaceElement("items") != el {
		t.Error("resolution should be cached")
	}
}

func TestSurfaceElementAdoptsExisting(t *testing.T) {
	tb := cardBed(t)
	if err := tb.SeedBodyHTML(`<div id="c1"><div id="c1-header">seeded</div></div>`); err != nil {
		t.Fatal(err)
	}
	root := tb.Doc.ByID("c1")
	w := newCard(t, tb, Config{ID: "c1", Element: root})

	el := w.SurfaceElement("header")
	if el == nil || el.InnerHTML() != "seeded" {
		t.Fatal("existing surface element should be adopted, not recreated")
	}
	if el != tb.Doc.ByID("c1-header") {
		t.Error("adopted element should be the document's element")
	}
}

func TestSurfaceElementScopedLookup(t *testing.T) {
	// The root element is not in the document yet; resolution falls back to
	// a scoped search under it.
	tb := cardBed(t)
	root, err := tb.Doc.ToElement(`<div id="c2"><div id="c2-header">off-doc</div></div>`)
	if err != nil {
		t.Fatal(err)
	}
	w := newCard(t, tb, Config{ID: "c2", Element: root})

	el := w.SurfaceElement("header")
	if el == nil || el.InnerHTML() != "off-doc" {
		t.Error("scoped lookup under a detached root failed")
	}
}

func TestModifiedSurfaces(t *testing.T) {
	tb := cardBed(t)
	w := newCard(t, tb, Config{})
	w.AddSurface("combo", SurfaceConfig{RenderAttrs: []string{"title", "body"}})

	batch := attrs.Batch{"title": {New: "x", Prev: "y"}}
	want := []string{"combo", "header"}
	if got := w.ModifiedSurfaces(batch); !reflect.DeepEqual(got, want) {
		t.Errorf("ModifiedSurfaces(title) = %v, want %v", got, want)
	}

	batch = attrs.Batch{
		"title": {New: "x"},
		"body":  {New: "y"},
		"other": {New: "z"},
	}
	want = []string{"body", "combo", "header"}
	if got := w.ModifiedSurfaces(batch); !reflect.DeepEqual(got, want) {
		t.Errorf("ModifiedSurfaces(all) = %v, want %v", got, want)
	}
}

func TestStaleIndexEntriesTolerated(t *testing.T) {
	tb := cardBed(t)
	w := newCard(t, tb, Config{})
	w.content["header"] = "h"
	w.content["body"] = "b"
	if err := w.Render(nil, nil); err != nil {
		t.Fatal(err)
	}

	w.RemoveSurface("header")

	// The index still maps title → header; the id shows up in the modified
	// set but the render path must skip it.
	got := w.ModifiedSurfaces(attrs.Batch{"title": {New: "x"}})
	if !reflect.DeepEqual(got, []string{"header"}) {
		t.Fatalf("ModifiedSurfaces after removal = %v", got)
	}
	if err := w.Attrs().Set("title", "x"); err != nil {
		t.Fatal(err)
	}
	if w.Surface("header") != nil {
		t.Error("removed surface came back")
	}
}

func TestRenderSurfaceContentNoOps(t *testing.T) {
	tb := cardBed(t)
	w := newCard(t, tb, Config{})
	if err := w.Render(nil, nil); err != nil {
		t.Fatal(err)
	}

	probe := ProbeMutations(w.SurfaceElement("header"))
	if err := w.RenderSurfaceContent("header", nil); err != nil {
		t.Errorf("nil content error = %v", err)
	}
	if err := w.RenderSurfaceContent("ghost", "content"); err != nil {
		t.Errorf("unregistered id error = %v", err)
	}
	if probe.Count() != 0 {
		t.Error("no-op render paths touched the DOM")
	}
}

func TestRenderSurfaceContentKinds(t *testing.T) {
	tb := cardBed(t)

	t.Run("string fragment", func(t *testing.T) {
		w := newCard(t, tb, Config{})
		if err := w.RenderSurfaceContent("header", "<em>hi</em>"); err != nil {
			t.Fatal(err)
		}
		if got := SurfaceHTML(w.Component, "header"); got != "<em>hi</em>" {
			t.Errorf("surface = %q", got)
		}
	})

	t.Run("element", func(t *testing.T) {
		w := newCard(t, tb, Config{})
		child := tb.Doc.CreateElement("p")
		if err := w.RenderSurfaceContent("header", child); err != nil {
			t.Fatal(err)
		}
		if child.Parent() != w.SurfaceElement("header") {
			t.Error("element content should be moved into the surface")
		}
	})

	t.Run("templ component", func(t *testing.T) {
		w := newCard(t, tb, Config{})
		if err := w.RenderSurfaceContent("header", staticContent("<b>t</b>")); err != nil {
			t.Fatal(err)
		}
		if got := SurfaceHTML(w.Component, "header"); got != "<b>t</b>" {
			t.Errorf("surface = %q", got)
		}
	})

	t.Run("other renders as text", func(t *testing.T) {
		w := newCard(t, tb, Config{})
		if err := w.RenderSurfaceContent("header", 42); err != nil {
			t.Fatal(err)
		}
		if got := SurfaceHTML(w.Component, "header"); !strings.Contains(got, "42") {
			t.Errorf("surface = %q, want text 42", got)
		}
	})
}
