package quilt

// Lifecycle hooks are optional interfaces asserted on the owner widget
// bound with Component.Bind. The framework tolerates any subset being
// implemented; unimplemented hooks are no-ops.

// Creator is implemented by widgets that need a hook when construction
// completes (the component is built and its owner is bound). Attribute
// definitions, surfaces, and the render-attribute index all exist by the
// time Created runs, so it is the place to register delegated event
// handlers or derived state.
type Creator interface {
	Created()
}

// Renderer is implemented by widgets that need to prepare the component's
// DOM before the first full render. RenderInternal runs at the start of
// Render, before any surface content is computed.
type Renderer interface {
	RenderInternal()
}

// Decorator is the decoration-time counterpart of Renderer. It runs at the
// start of Decorate, before attribute state is restored and surface caches
// are seeded from the existing markup.
type Decorator interface {
	DecorateInternal()
}

// Attacher is implemented by widgets that need a hook after the component's
// root element enters the document.
type Attacher interface {
	Attached()
}

// Detacher is implemented by widgets that need a hook after the component's
// root element leaves the document.
type Detacher interface {
	Detached()
}

// SurfaceRenderer produces the content for a surface. It is consulted
// during full renders and whenever a change batch touches one of the
// surface's render attributes.
//
// Returned content may be:
//   - nil: leave the surface untouched
//   - string: parsed as an HTML fragment; cacheable by fingerprint
//   - templ.Component: rendered through templ; never cached
//   - *dom.Element: moved into the surface; never cached
//   - anything else: rendered as text; never cached
//
// SurfaceContent should be pure: read attributes, produce content, no side
// effects. Side effects belong in sync callbacks.
type SurfaceRenderer interface {
	SurfaceContent(id string) any
}

// AttrSyncer receives synchronization callbacks for the component type's
// declared sync attributes: once per declared attribute on every
// render/decorate (with prev == nil), and once per changed sync attribute
// per change batch.
//
// The sync-attribute set is declared statically per type (Def.SyncAttrs)
// rather than derived from attribute names at runtime, so the full set of
// callbacks a type can receive is enumerable from its definition.
type AttrSyncer interface {
	SyncAttr(name string, newVal, prevVal any)
}
