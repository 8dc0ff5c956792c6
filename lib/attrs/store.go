// Package attrs implements the named-attribute store consumed by the
// component engine: typed values with validators, setters, lazy defaults,
// and a single batched change event per update tick.
//
// The store is synchronous and single-owner. A "tick" is the outermost
// mutation in progress: a plain Set is its own tick, while SetAll and
// Batch coalesce any number of writes into one change event. Listeners
// therefore observe at most one event per tick no matter how many
// attributes changed, which is what lets the component engine re-render
// each affected surface at most once.
package attrs

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for attribute operations.
var (
	ErrUnknownAttr   = errors.New("attrs: attribute not defined")
	ErrDuplicateAttr = errors.New("attrs: attribute already defined")
	ErrInitOnly      = errors.New("attrs: init-only attribute set after seal")
	ErrInvalidValue  = errors.New("attrs: value rejected by validator")
)

// Def declares a single attribute.
type Def struct {
	Name string

	// Value is the initial value. Ignored when ValueFn is set.
	Value any

	// ValueFn lazily produces the default value on first read.
	ValueFn func() any

	// Validator rejects candidate values before they are stored.
	Validator func(any) error

	// Setter transforms an accepted value before it is stored.
	Setter func(any) any

	// InitOnly attributes may only be written before the store is sealed
	// (component construction time).
	InitOnly bool
}

// Change holds the new and previous value of one attribute within a batch.
type Change struct {
	New  any
	Prev any
}

// Batch maps attribute names to their changes for one update tick.
type Batch map[string]Change

type entry struct {
	def      Def
	value    any
	resolved bool // lazy default has been produced
}

// Store holds a component's attributes.
type Store struct {
	entries map[string]*entry
	order   []string
	sealed  bool

	listeners []*listener
	pending   Batch
	depth     int
}

type listener struct {
	fn      func(Batch)
	removed bool
}

// NewStore creates an empty attribute store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Define registers an attribute. Fails with ErrDuplicateAttr if the name is
// already taken.
func (s *Store) Define(def Def) error {
	if def.Name == "" {
		return fmt.Errorf("%w: empty name", ErrUnknownAttr)
	}
	if _, exists := s.entries[def.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateAttr, def.Name)
	}
	e := &entry{def: def}
	if def.ValueFn == nil {
		e.value = def.Value
		e.resolved = true
	}
	s.entries[def.Name] = e
	s.order = append(s.order, def.Name)
	return nil
}

// Seal ends the initialization phase. Init-only attributes reject writes
// from this point on.
func (s *Store) Seal() {
	s.sealed = true
}

// Has reports whether the attribute is defined.
func (s *Store) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Names returns the attribute names in definition order.
func (s *Store) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Get returns the attribute's current value. Lazy defaults are produced on
// first read and cached. The second return is false for undefined names.
func (s *Store) Get(name string) (any, bool) {
	e, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	return s.resolve(e), true
}

func (s *Store) resolve(e *entry) any {
	if !e.resolved {
		e.value = e.def.ValueFn()
		e.resolved = true
	}
	return e.value
}

// Set writes a single attribute, validating and transforming the value per
// its definition. Outside a Batch, listeners fire before Set returns.
func (s *Store) Set(name string, value any) error {
	s.depth++
	err := s.set(name, value)
	s.depth--
	s.flush()
	return err
}

// SetAll writes several attributes as one tick. All writes are attempted;
// errors are joined. Listeners observe a single batch for the tick.
func (s *Store) SetAll(values map[string]any) error {
	var errs []error
	s.depth++
	for name, value := range values {
		if err := s.set(name, value); err != nil {
			errs = append(errs, err)
		}
	}
	s.depth--
	s.flush()
	return errors.Join(errs...)
}

// Batch runs fn with change delivery suspended; all writes made inside fn
// coalesce into one change event delivered when the outermost Batch ends.
func (s *Store) Batch(fn func()) {
	s.depth++
	fn()
	s.depth--
	s.flush()
}

func (s *Store) set(name string, value any) error {
	e, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAttr, name)
	}
	if e.def.InitOnly && s.sealed {
		return fmt.Errorf("%w: %q", ErrInitOnly, name)
	}
	if e.def.Validator != nil {
		if err := e.def.Validator(value); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidValue, name, err)
		}
	}
	if e.def.Setter != nil {
		value = e.def.Setter(value)
	}

	prev := s.resolve(e)
	if reflect.DeepEqual(prev, value) {
		return nil
	}
	e.value = value

	if s.pending == nil {
		s.pending = make(Batch)
	}
	if existing, merged := s.pending[name]; merged {
		// Several writes in one tick: keep the original Prev.
		s.pending[name] = Change{New: value, Prev: existing.Prev}
	} else {
		s.pending[name] = Change{New: value, Prev: prev}
	}
	return nil
}

func (s *Store) flush() {
	if s.depth > 0 || len(s.pending) == 0 {
		return
	}
	batch := s.pending
	s.pending = nil
	for _, l := range s.listeners {
		if !l.removed {
			l.fn(batch)
		}
	}
}

// OnChange subscribes to batched change events. The returned function
// removes the subscription and is safe to call more than once.
func (s *Store) OnChange(fn func(Batch)) func() {
	l := &listener{fn: fn}
	s.listeners = append(s.listeners, l)
	return func() {
		l.removed = true
	}
}

// Snapshot returns the current value of every attribute, resolving lazy
// defaults. The map is a copy; mutating it does not touch the store.
func (s *Store) Snapshot() map[string]any {
	out := make(map[string]any, len(s.order))
	for _, name := range s.order {
		out[name] = s.resolve(s.entries[name])
	}
	return out
}
