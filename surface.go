package quilt

import (
	"context"
	"sort"
	"strings"

	"github.com/a-h/templ"
	"github.com/quiltui/quilt/lib/attrs"
	"github.com/quiltui/quilt/lib/dom"
	"github.com/quiltui/quilt/lib/hash"
)

// CacheState summarizes the previously rendered content of a surface.
// Non-negative values are content fingerprints; the sentinels below mark
// surfaces that have never rendered or hold uncacheable content.
type CacheState int64

const (
	// CacheNotInitialized marks a surface that has not rendered yet.
	// The next render always writes to the DOM.
	CacheNotInitialized CacheState = -1

	// CacheNotCacheable marks a surface whose last content was not a
	// string. Such surfaces re-render on every pass.
	CacheNotCacheable CacheState = -2
)

// SurfaceConfig configures a surface registration.
type SurfaceConfig struct {
	// RenderAttrs lists the attribute names whose change invalidates the
	// surface.
	RenderAttrs []string
}

// SurfaceState is the per-surface bookkeeping: the content cache marker,
// the lazily resolved DOM element, and the invalidating attributes.
type SurfaceState struct {
	cache       CacheState
	element     *dom.Element
	renderAttrs []string
}

// Cache returns the surface's current cache state.
func (s *SurfaceState) Cache() CacheState {
	return s.cache
}

// AddSurface registers a surface. Re-adding an id overwrites the previous
// registration. Each render attribute is indexed so change batches can
// find affected surfaces in O(changed attrs).
func (c *Component) AddSurface(id string, cfg SurfaceConfig) {
	renderAttrs := make([]string, len(cfg.RenderAttrs))
	copy(renderAttrs, cfg.RenderAttrs)

	c.surfaces[id] = &SurfaceState{
		cache:       CacheNotInitialized,
		renderAttrs: renderAttrs,
	}
	for _, attr := range renderAttrs {
		ids := c.renderAttrIndex[attr]
		if ids == nil {
			ids = make(map[string]struct{})
			c.renderAttrIndex[attr] = ids
		}
		ids[id] = struct{}{}
	}
}

// RemoveSurface detaches the surface's element from the DOM (if resolved
// and attached) and deletes the registration.
//
// The render-attribute index is not purged: entries pointing at removed
// surfaces stay behind and are ignored by the render path. Index cleanup
// is eventually consistent with surface existence, not guaranteed here.
func (c *Component) RemoveSurface(id string) {
	s, ok := c.surfaces[id]
	if !ok {
		return
	}
	if s.element != nil {
		s.element.Remove()
	}
	delete(c.surfaces, id)
}

// Surface returns the state of a registered surface, or nil.
func (c *Component) Surface(id string) *SurfaceState {
	return c.surfaces[id]
}

// SurfaceIDs returns the registered surface ids, sorted.
func (c *Component) SurfaceIDs() []string {
	ids := make([]string, 0, len(c.surfaces))
	for id := range c.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// surfaceElementID namespaces a surface id by the component id.
func (c *Component) surfaceElementID(id string) string {
	return c.ID() + "-" + id
}

// SurfaceElement resolves the surface's DOM element, creating it on first
// use. Resolution order: the cached element, a document-wide id lookup, a
// scoped lookup under the root element (the root may not be in the
// document yet), and finally a freshly created element appended to the
// root. The result is cached for the component's lifetime.
//
// Returns nil for ids that were never registered.
func (c *Component) SurfaceElement(id string) *dom.Element {
	s, ok := c.surfaces[id]
	if !ok {
		return nil
	}
	if s.element != nil {
		return s.element
	}

	el := c.findSurfaceElement(id)
	if el == nil {
		el = c.doc.CreateElement(c.hints.SurfaceTag)
		el.SetID(c.surfaceElementID(id))
		c.Element().AppendChild(el)
	}
	s.element = el
	return el
}

// findSurfaceElement looks up an existing element for the surface without
// creating one. Used by decoration to adopt pre-rendered markup.
func (c *Component) findSurfaceElement(id string) *dom.Element {
	elID := c.surfaceElementID(id)
	if el := c.doc.ByID(elID); el != nil {
		return el
	}
	if c.element != nil {
		return c.element.Descendant(elID)
	}
	return nil
}

// ModifiedSurfaces returns the ids of surfaces whose render attributes
// intersect the change batch, sorted. Ids left behind in the index by
// RemoveSurface may appear; callers must tolerate them (the render path
// drops ids with no registered surface).
func (c *Component) ModifiedSurfaces(batch attrs.Batch) []string {
	set := make(map[string]struct{})
	for attr := range batch {
		for id := range c.renderAttrIndex[attr] {
			set[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RenderSurfaceContent renders content into a surface, suppressing the DOM
// write when a string fingerprint matches the previous render.
//
// nil content and unregistered ids are no-ops. The stored cache state is
// updated to the freshly computed value unconditionally, so uncacheable
// content keeps forcing re-renders on every call.
func (c *Component) RenderSurfaceContent(id string, content any) error {
	if content == nil {
		return nil
	}
	s, ok := c.surfaces[id]
	if !ok {
		return nil
	}

	state := computeCacheState(content)
	rerender := s.cache == CacheNotInitialized ||
		state == CacheNotCacheable ||
		state != s.cache
	s.cache = state

	if !rerender {
		return nil
	}
	el := c.SurfaceElement(id)
	el.RemoveChildren()
	return appendContent(el, content)
}

// renderSurfaces computes and renders content for the given surfaces via
// the owner's SurfaceContent hook. Owners without the hook render nothing.
func (c *Component) renderSurfaces(ids []string) error {
	renderer, ok := c.owner.(SurfaceRenderer)
	if !ok {
		return nil
	}
	for _, id := range ids {
		if _, registered := c.surfaces[id]; !registered {
			// Stale render-attribute index entry for a removed surface.
			continue
		}
		if err := c.RenderSurfaceContent(id, renderer.SurfaceContent(id)); err != nil {
			return err
		}
	}
	return nil
}

// resetSurfaceCaches forces the next render of every surface, discarding
// any decoration-time seeding.
func (c *Component) resetSurfaceCaches() {
	for _, s := range c.surfaces {
		s.cache = CacheNotInitialized
	}
}

// seedSurfaceCaches primes each surface's cache from its current DOM
// content, whitespace-normalized, so decorating server-rendered markup
// does not spuriously re-render identical content. Surfaces with no
// existing element stay uninitialized.
func (c *Component) seedSurfaceCaches() {
	for id, s := range c.surfaces {
		el := c.findSurfaceElement(id)
		if el == nil {
			s.cache = CacheNotInitialized
			continue
		}
		s.element = el
		s.cache = CacheState(hash.NormalizedFingerprint(el.InnerHTML()))
	}
}

// computeCacheState fingerprints string content; everything else is
// uncacheable.
func computeCacheState(content any) CacheState {
	if s, ok := content.(string); ok {
		return CacheState(hash.Fingerprint(s))
	}
	return CacheNotCacheable
}

// appendContent writes content into a surface element.
func appendContent(el *dom.Element, content any) error {
	switch v := content.(type) {
	case string:
		return el.Append(v)
	case templ.Component:
		var sb strings.Builder
		if err := v.Render(context.Background(), &sb); err != nil {
			return err
		}
		return el.Append(sb.String())
	case *dom.Element:
		el.AppendChild(v)
		return nil
	default:
		return el.Append(content)
	}
}
