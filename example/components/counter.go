package components

import (
	"fmt"

	"github.com/quiltui/quilt"
	"github.com/quiltui/quilt/lib/attrs"
	"github.com/quiltui/quilt/lib/dom"
)

// Counter is a click counter with a live value surface. The buttons are
// wired through delegated events, so they survive surface re-renders.
type Counter struct {
	*quilt.Component
}

// NewCounter creates a counter in the given document.
func NewCounter(reg *quilt.Registry, doc *dom.Document, cfg quilt.Config) (*Counter, error) {
	c, err := quilt.New(reg, "counter", doc, cfg)
	if err != nil {
		return nil, err
	}
	w := &Counter{Component: c}
	c.Bind(w)
	return w, nil
}

// Created wires the increment and decrement buttons.
func (w *Counter) Created() {
	w.Delegate("click", ".counter-inc", func(*dom.Event) { w.add(1) })
	w.Delegate("click", ".counter-dec", func(*dom.Event) { w.add(-1) })
}

func (w *Counter) add(delta int) {
	v, _ := w.Attrs().Get("count")
	n, _ := v.(int)
	_ = w.Attrs().Set("count", n+delta)
}

// SurfaceContent renders the counter's surfaces from its attributes.
func (w *Counter) SurfaceContent(id string) any {
	switch id {
	case "value":
		v, _ := w.Attrs().Get("count")
		label, _ := w.Attrs().Get("label")
		return fmt.Sprintf("%s: <strong>%v</strong>", label, v)
	case "controls":
		// Rendered once; the render attribute list is empty so attribute
		// changes never touch this surface.
		return `<button class="counter-dec">-</button><button class="counter-inc">+</button>`
	}
	return nil
}

func counterDef() quilt.Def {
	return quilt.Def{
		Name:    "counter",
		Classes: []string{"counter"},
		Attrs: []attrs.Def{
			{Name: "count", Value: 0},
			{Name: "label", Value: "Count"},
		},
		SyncAttrs: []string{"count"},
		Surfaces: map[string]quilt.SurfaceConfig{
			"value":    {RenderAttrs: []string{"count", "label"}},
			"controls": {},
		},
	}
}
