package quilt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/quiltui/quilt/lib/attrs"
)

// BaseType is the implicit root of every type chain. It supplies the
// framework-level defaults: div root and surface tags, the id and
// elementClasses attributes, and the elementClasses sync callback.
const BaseType = "component"

// Attribute names defined by the base type.
const (
	AttrID             = "id"
	AttrElementClasses = "elementClasses"
)

// Def declares a component type and its static hints. Hints are merged
// across the type's ancestor chain when the first instance is created;
// see Registry.Hints for the per-hint merge strategies.
type Def struct {
	// Name uniquely identifies the type within a registry.
	Name string

	// Parent names the ancestor type. Empty means the built-in base type.
	Parent string

	// Attrs are attribute definitions added (or overridden, by name) at
	// this level of the chain.
	Attrs []attrs.Def

	// Classes are CSS classes applied to the root element, appended to the
	// ancestors' classes.
	Classes []string

	// TagName is the root element's tag. The root-most defined value in
	// the chain wins; subclasses cannot override an ancestor's tag.
	TagName string

	// SurfaceTag is the tag used for lazily created surface elements.
	// Same first-defined policy as TagName.
	SurfaceTag string

	// SyncAttrs lists attributes whose changes fire SyncAttr callbacks.
	SyncAttrs []string

	// Surfaces maps surface ids to their configuration. On conflicts the
	// most-derived type's entry wins.
	Surfaces map[string]SurfaceConfig
}

// Hints is the merged static configuration of a component type. One Hints
// value exists per type per registry; every instance of the type shares it.
type Hints struct {
	Type       string
	Classes    []string
	TagName    string
	SurfaceTag string
	SyncAttrs  []string
	Attrs      []attrs.Def
	Surfaces   map[string]SurfaceConfig
}

// Registry holds component type definitions and their merged hints.
//
// Define every type up front (program start, not per instance); merging is
// lazy and guarded, so concurrent instance creation is safe once
// definitions stop.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]Def
	merged map[string]*Hints
}

// NewRegistry creates a registry pre-populated with the base type.
func NewRegistry() *Registry {
	reg := &Registry{
		defs:   make(map[string]Def),
		merged: make(map[string]*Hints),
	}
	reg.defs[BaseType] = baseDef()
	return reg
}

// Define registers component types. Panics on an empty name or a name
// collision — type definitions are program structure, and a collision is a
// programming error, not a runtime condition.
func (r *Registry) Define(defs ...Def) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, def := range defs {
		if def.Name == "" {
			panic("quilt: component type with empty name")
		}
		if _, exists := r.defs[def.Name]; exists {
			panic(fmt.Sprintf("quilt: component type %q already defined", def.Name))
		}
		r.defs[def.Name] = def
	}
}

// Defined reports whether the named type is registered.
func (r *Registry) Defined(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[name]
	return ok
}

// Hints returns the merged static hints for a type, computing and caching
// them on first use. The returned value is shared: the same pointer is
// handed to every caller, and callers must not mutate it.
func (r *Registry) Hints(name string) (*Hints, error) {
	r.mu.RLock()
	h, ok := r.merged[name]
	r.mu.RUnlock()
	if ok {
		return h, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock; another goroutine may have built it.
	if h, ok := r.merged[name]; ok {
		return h, nil
	}

	chain, err := r.chain(name)
	if err != nil {
		return nil, err
	}
	h = mergeChain(name, chain)
	r.merged[name] = h
	return h, nil
}

// chain resolves the ancestor definitions ordered root-most first.
func (r *Registry) chain(name string) ([]Def, error) {
	var reversed []Def
	seen := make(map[string]bool)

	for cur := name; ; {
		if seen[cur] {
			return nil, fmt.Errorf("%w: %q", ErrTypeCycle, cur)
		}
		seen[cur] = true

		def, ok := r.defs[cur]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownType, cur)
		}
		reversed = append(reversed, def)

		if cur == BaseType {
			break
		}
		if def.Parent == "" {
			cur = BaseType
		} else {
			cur = def.Parent
		}
	}

	chain := make([]Def, len(reversed))
	for i, def := range reversed {
		chain[len(reversed)-1-i] = def
	}
	return chain, nil
}

// mergeChain reduces the ancestor chain (root-most first) into one Hints
// value. Each hint keeps its own strategy:
//
//   - Classes: flatten root→leaf, dropping empties.
//   - TagName, SurfaceTag: first defined value wins (root-most).
//   - SyncAttrs: flatten and deduplicate, keeping first-occurrence order.
//   - Surfaces: most-derived entry wins, ancestors fill missing ids.
//   - Attrs: merged by name, most-derived definition wins, positioned
//     where the name first appeared.
func mergeChain(name string, chain []Def) *Hints {
	h := &Hints{Type: name, Surfaces: make(map[string]SurfaceConfig)}

	for _, def := range chain {
		for _, class := range def.Classes {
			if class != "" {
				h.Classes = append(h.Classes, class)
			}
		}
		if h.TagName == "" {
			h.TagName = def.TagName
		}
		if h.SurfaceTag == "" {
			h.SurfaceTag = def.SurfaceTag
		}
	}
	if h.TagName == "" {
		h.TagName = defaultTag
	}
	if h.SurfaceTag == "" {
		h.SurfaceTag = defaultTag
	}

	syncSeen := make(map[string]bool)
	for _, def := range chain {
		for _, attr := range def.SyncAttrs {
			if !syncSeen[attr] {
				syncSeen[attr] = true
				h.SyncAttrs = append(h.SyncAttrs, attr)
			}
		}
	}

	// Leaf-most first so derived configs win; ancestors only fill gaps.
	for i := len(chain) - 1; i >= 0; i-- {
		for id, cfg := range chain[i].Surfaces {
			if _, taken := h.Surfaces[id]; !taken {
				h.Surfaces[id] = cfg
			}
		}
	}

	attrPos := make(map[string]int)
	for _, def := range chain {
		for _, ad := range def.Attrs {
			if pos, seen := attrPos[ad.Name]; seen {
				h.Attrs[pos] = ad
			} else {
				attrPos[ad.Name] = len(h.Attrs)
				h.Attrs = append(h.Attrs, ad)
			}
		}
	}

	return h
}

// defaultTag is the fallback for root and surface elements when no type in
// the chain declares a tag.
const defaultTag = "div"

func baseDef() Def {
	return Def{
		Name:      BaseType,
		SyncAttrs: []string{AttrElementClasses},
		Attrs: []attrs.Def{
			{
				Name:     AttrID,
				InitOnly: true,
				ValueFn: func() any {
					return "quilt-" + uuid.NewString()
				},
			},
			{
				Name:      AttrElementClasses,
				Validator: validateClasses,
				Setter:    normalizeClasses,
			},
		},
	}
}

func validateClasses(v any) error {
	switch t := v.(type) {
	case nil, string, []string:
		return nil
	case []any:
		// Snapshot round-trips deliver string slices as []any.
		for _, item := range t {
			if _, ok := item.(string); !ok {
				return fmt.Errorf("want string elements, got %T", item)
			}
		}
		return nil
	}
	return fmt.Errorf("want string or []string, got %T", v)
}

// normalizeClasses stores elementClasses canonically as []string; a plain
// string is split on whitespace.
func normalizeClasses(v any) any {
	switch t := v.(type) {
	case nil:
		return []string(nil)
	case string:
		return strings.Fields(t)
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return v
}
