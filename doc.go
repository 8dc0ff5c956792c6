// Package quilt provides a component system for building attribute-driven
// UI widgets with partial, cache-aware re-rendering of named sub-regions
// ("surfaces") of a component's DOM subtree.
//
// quilt gives every widget a uniform lifecycle (create, render or decorate,
// attach, detach, dispose) on top of an in-memory DOM. Widgets declare
// which attributes each surface depends on; when attributes change, only
// the surfaces whose dependencies intersect the change batch are
// recomputed, and a content fingerprint suppresses DOM writes whose output
// is byte-identical to what is already rendered.
//
// # Core Concepts
//
// Widgets embed *quilt.Component and bind themselves as the component's
// owner. The component asserts optional lifecycle interfaces on the owner
// (Created, RenderInternal, Attached, SurfaceContent, ...), so a widget
// implements exactly the hooks it needs:
//
//	type Clock struct {
//	    *quilt.Component
//	}
//
//	func NewClock(reg *quilt.Registry, doc *dom.Document) (*Clock, error) {
//	    c, err := quilt.New(reg, "clock", doc, quilt.Config{})
//	    if err != nil {
//	        return nil, err
//	    }
//	    w := &Clock{Component: c}
//	    c.Bind(w)
//	    return w, nil
//	}
//
//	func (w *Clock) SurfaceContent(id string) any {
//	    hours, _ := w.Attrs().Get("hours")
//	    return fmt.Sprintf("<span>%v</span>", hours)
//	}
//
// # Static Hints and the Type Registry
//
// Per-type configuration (default CSS classes, tag names, attribute
// definitions, sync attributes, surface maps) is declared once per
// component type with Registry.Define and merged across the type's
// ancestor chain. Each hint has its own merge strategy: class lists
// flatten root-to-leaf, tag names take the first value defined by the
// root-most ancestor, sync-attribute lists deduplicate, and surface maps
// let the most-derived type win on conflicts. Merging happens exactly once
// per type, never per instance.
//
// # Surfaces and Caching
//
// A surface is a named child region of the component's root element,
// identified in the DOM as "<componentId>-<surfaceId>". Rendering a
// surface hashes its string content; if the fingerprint matches the
// previous render, the DOM is left untouched. Non-string content (a
// templ.Component, a *dom.Element) is never cached and re-renders on
// every pass. When a component decorates existing server-rendered markup
// instead of building its own, surface caches are seeded from the current
// DOM (whitespace-normalized) so an identical render pass costs nothing.
//
// # Attributes
//
// Attribute state lives in a lib/attrs.Store: named values with
// validators, setters, lazy defaults, and one batched change event per
// update tick. The component subscribes once; on each batch it re-renders
// only the affected surfaces and fires synchronization callbacks for the
// declared sync attributes.
//
// # State Snapshots
//
// For progressive enhancement, a component's attribute values can be
// serialized (msgpack, HMAC-signed or AES-GCM encrypted) into a data
// attribute on its root element. Decorate restores the snapshot before
// seeding surface caches, so server-rendered widgets resume with the
// exact state they were rendered with.
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit type registration (no init() side effects)
//   - Explicit lifecycle (small optional interfaces, not reflection)
//   - Explicit surface dependencies (renderAttrs, statically declared)
//   - Explicit security for snapshots (signed vs encrypted)
//
// Everything runs synchronously on the goroutine that owns the document;
// there is no internal concurrency, matching the cooperative single-thread
// model of UI work.
package quilt
