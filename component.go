package quilt

import (
	"fmt"

	"github.com/quiltui/quilt/lib/attrs"
	"github.com/quiltui/quilt/lib/dom"
)

// Config configures a new component instance.
type Config struct {
	// ID overrides the generated component id. Must be unique within the
	// document since it namespaces surface element ids.
	ID string

	// Element adopts an existing root element instead of creating one
	// lazily. Required for Decorate.
	Element *dom.Element

	// Attrs supplies initial attribute values, applied after the merged
	// defaults and before the store is sealed (so init-only attributes
	// accept them).
	Attrs map[string]any

	// Encoder enables attribute state snapshots (see SaveState/Decorate).
	Encoder *Encoder

	// Sensitive encrypts snapshots instead of signing them.
	Sensitive bool
}

// Component is the base type embedded by widgets. It owns the attribute
// store, the surface registry, and the root element, and drives the
// lifecycle: Render or Decorate to enter the document, Detach to leave it,
// Dispose to tear down.
//
// A Component is bound to the single goroutine that owns its document; no
// method is safe for concurrent use.
type Component struct {
	reg   *Registry
	doc   *dom.Document
	hints *Hints
	store *attrs.Store

	// owner is the concrete widget embedding this component. Lifecycle
	// hooks are asserted on it.
	owner any

	element    *dom.Element
	inDocument bool
	disposed   bool

	surfaces        map[string]*SurfaceState
	renderAttrIndex map[string]map[string]struct{}

	delegations []*dom.Delegation
	unsubscribe func()

	encoder   *Encoder
	sensitive bool

	// OnError receives errors raised while re-rendering surfaces from an
	// attribute change batch, where there is no caller to return them to.
	// nil drops them.
	OnError func(error)
}

// New creates a component of the given registered type.
//
// Construction merges the type's static hints, defines the merged
// attributes, applies Config values, registers the declared surfaces, and
// subscribes to attribute changes. Bind the owner widget afterwards to
// complete construction and fire the Created hook.
func New(reg *Registry, typeName string, doc *dom.Document, cfg Config) (*Component, error) {
	h, err := reg.Hints(typeName)
	if err != nil {
		return nil, err
	}

	c := &Component{
		reg:             reg,
		doc:             doc,
		hints:           h,
		store:           attrs.NewStore(),
		surfaces:        make(map[string]*SurfaceState),
		renderAttrIndex: make(map[string]map[string]struct{}),
		element:         cfg.Element,
		encoder:         cfg.Encoder,
		sensitive:       cfg.Sensitive,
	}

	for _, ad := range h.Attrs {
		if err := c.store.Define(ad); err != nil {
			return nil, fmt.Errorf("quilt: type %q: %w", typeName, err)
		}
	}
	if len(h.Classes) > 0 {
		if err := c.store.Set(AttrElementClasses, h.Classes); err != nil {
			return nil, err
		}
	}
	if cfg.ID != "" {
		if err := c.store.Set(AttrID, cfg.ID); err != nil {
			return nil, err
		}
	}
	if len(cfg.Attrs) > 0 {
		if err := c.store.SetAll(cfg.Attrs); err != nil {
			return nil, err
		}
	}
	c.store.Seal()

	for id, sc := range h.Surfaces {
		c.AddSurface(id, sc)
	}

	c.unsubscribe = c.store.OnChange(c.handleChanges)
	return c, nil
}

// Bind attaches the owner widget and fires its Created hook. Call once,
// right after embedding the component in the widget struct. Components
// used without an owner render empty surfaces and receive no hooks.
func (c *Component) Bind(owner any) {
	c.owner = owner
	if h, ok := owner.(Creator); ok {
		h.Created()
	}
}

// ID returns the component id, resolving the generated default on first
// read. The id is init-only: it cannot change afterwards.
func (c *Component) ID() string {
	v, _ := c.store.Get(AttrID)
	id, _ := v.(string)
	return id
}

// Type returns the component's registered type name.
func (c *Component) Type() string {
	return c.hints.Type
}

// Doc returns the document the component renders into.
func (c *Component) Doc() *dom.Document {
	return c.doc
}

// Attrs returns the component's attribute store.
func (c *Component) Attrs() *attrs.Store {
	return c.store
}

// InDocument reports whether the component is currently attached.
func (c *Component) InDocument() bool {
	return c.inDocument
}

// Disposed reports whether the component has been disposed.
func (c *Component) Disposed() bool {
	return c.disposed
}

// ElementClasses returns the current class list attribute value.
func (c *Component) ElementClasses() []string {
	v, _ := c.store.Get(AttrElementClasses)
	classes, _ := v.([]string)
	return classes
}

// Element returns the root element, creating it lazily from the merged
// tag-name hint on first access. The element is set at most once (from
// Config or here) and never replaced.
func (c *Component) Element() *dom.Element {
	if c.element == nil {
		el := c.doc.CreateElement(c.hints.TagName)
		el.SetID(c.ID())
		el.AddClasses(c.ElementClasses()...)
		c.element = el
	}
	return c.element
}

// Render builds the component's DOM from scratch and attaches it.
//
// parent and before position the root element: with a before sibling the
// element is inserted in front of it; with only a parent it is appended;
// with neither, it is appended to the document body unless it already has
// a parent, in which case it stays put.
//
// Fails with ErrAlreadyRendered while attached and ErrDisposed after
// disposal, in both cases before any mutation.
func (c *Component) Render(parent, before *dom.Element) error {
	if c.disposed {
		return ErrDisposed
	}
	if c.inDocument {
		return ErrAlreadyRendered
	}

	if h, ok := c.owner.(Renderer); ok {
		h.RenderInternal()
	}

	// A full render never reuses decoration-time caches.
	c.resetSurfaceCaches()
	if err := c.renderSurfaces(c.SurfaceIDs()); err != nil {
		return err
	}
	c.syncAll()
	c.attach(parent, before)
	return nil
}

// Decorate adopts existing (typically server-rendered) DOM instead of
// building it. Attribute state is restored from the root element's
// snapshot when an encoder is configured, surface caches are seeded from
// the current markup, and only surfaces whose content differs from the
// seeded fingerprint are rewritten.
//
// Same failure modes as Render.
func (c *Component) Decorate() error {
	if c.disposed {
		return ErrDisposed
	}
	if c.inDocument {
		return ErrAlreadyRendered
	}

	if h, ok := c.owner.(Decorator); ok {
		h.DecorateInternal()
	}

	if err := c.restoreState(); err != nil {
		return err
	}
	c.seedSurfaceCaches()
	if err := c.renderSurfaces(c.SurfaceIDs()); err != nil {
		return err
	}
	c.syncAll()
	c.attach(nil, nil)
	return nil
}

func (c *Component) attach(parent, before *dom.Element) {
	el := c.Element()
	switch {
	case before != nil:
		p := parent
		if p == nil {
			p = before.Parent()
		}
		if p == nil {
			p = c.doc.Body()
		}
		p.InsertBefore(el, before)
	case parent != nil:
		parent.AppendChild(el)
	default:
		if el.Parent() == nil {
			c.doc.Body().AppendChild(el)
		}
	}

	c.inDocument = true
	if h, ok := c.owner.(Attacher); ok {
		h.Attached()
	}
}

// Detach removes the root element from its parent and marks the component
// unattached. Safe to call repeatedly; the Detached hook fires only on an
// actual attached→unattached transition.
func (c *Component) Detach() {
	if c.element != nil {
		c.element.Remove()
	}
	if !c.inDocument {
		return
	}
	c.inDocument = false
	if h, ok := c.owner.(Detacher); ok {
		h.Detached()
	}
}

// Dispose tears the component down: detach first (detach reads the
// element's parent, so it must run before bookkeeping is cleared), then
// release delegated event handlers and the attribute subscription, then
// clear the surface registry and index. Terminal: all lifecycle calls on
// a disposed component fail or no-op.
func (c *Component) Dispose() {
	if c.disposed {
		return
	}
	c.Detach()

	for _, dg := range c.delegations {
		dg.Remove()
	}
	c.delegations = nil
	if c.element != nil {
		c.doc.RemoveDelegations(c.element)
	}
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}

	c.surfaces = make(map[string]*SurfaceState)
	c.renderAttrIndex = make(map[string]map[string]struct{})
	c.disposed = true
}

// Delegate registers a delegated event handler rooted at the component's
// element. The registration is released on Dispose.
func (c *Component) Delegate(event, selector string, fn func(*dom.Event)) *dom.Delegation {
	dg := c.doc.Delegate(c.Element(), event, selector, fn)
	c.delegations = append(c.delegations, dg)
	return dg
}

// handleChanges is the attribute store's batched change listener: while
// attached, re-render the surfaces whose render attributes intersect the
// batch; always fire sync callbacks for declared sync attributes in the
// batch.
func (c *Component) handleChanges(batch attrs.Batch) {
	if c.disposed {
		return
	}
	if c.inDocument {
		if err := c.renderSurfaces(c.ModifiedSurfaces(batch)); err != nil && c.OnError != nil {
			c.OnError(err)
		}
	}
	c.syncChanged(batch)
}

// syncAll fires sync callbacks for every declared sync attribute with its
// current value. Runs once per render/decorate; prev is nil.
func (c *Component) syncAll() {
	for _, name := range c.hints.SyncAttrs {
		v, _ := c.store.Get(name)
		c.fireSync(name, v, nil)
	}
}

// syncChanged fires sync callbacks for the declared sync attributes
// present in a change batch.
func (c *Component) syncChanged(batch attrs.Batch) {
	for _, name := range c.hints.SyncAttrs {
		if ch, ok := batch[name]; ok {
			c.fireSync(name, ch.New, ch.Prev)
		}
	}
}

func (c *Component) fireSync(name string, newVal, prevVal any) {
	if name == AttrElementClasses {
		c.syncElementClasses(newVal, prevVal)
	}
	if h, ok := c.owner.(AttrSyncer); ok {
		h.SyncAttr(name, newVal, prevVal)
	}
}

// syncElementClasses applies an elementClasses change to the root element.
func (c *Component) syncElementClasses(newVal, prevVal any) {
	el := c.Element()
	if prev, ok := prevVal.([]string); ok {
		el.RemoveClasses(prev...)
	}
	if next, ok := newVal.([]string); ok {
		el.AddClasses(next...)
	}
}
