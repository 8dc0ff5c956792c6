package dom

import "strings"

// Event carries a dispatched event to delegated handlers.
type Event struct {
	Type   string
	Target *Element // the element that matched the delegation selector
	Detail any

	stopped bool
}

// StopPropagation prevents delegations further up the tree from running.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// Delegation is a live delegated-event registration. Handlers fire when an
// event of the registered type is dispatched on any descendant of the root
// that matches the selector.
type Delegation struct {
	doc      *Document
	root     *Element
	event    string
	selector string
	fn       func(*Event)
	removed  bool
}

// Remove deactivates the delegation. Safe to call more than once.
func (dg *Delegation) Remove() {
	dg.removed = true
}

// Delegate registers a delegated event handler rooted at root.
//
// Selectors are deliberately minimal: "#id", ".class", a tag name, or ""
// to match any element under the root.
func (d *Document) Delegate(root *Element, event, selector string, fn func(*Event)) *Delegation {
	dg := &Delegation{doc: d, root: root, event: event, selector: selector, fn: fn}
	d.delegations = append(d.delegations, dg)
	return dg
}

// Dispatch fires an event at target and bubbles it toward the document
// root, invoking every live delegation whose selector matches a node on
// the path from target up to (but excluding) the delegation root.
func (d *Document) Dispatch(target *Element, event string, detail any) {
	if target == nil {
		return
	}
	ev := &Event{Type: event, Detail: detail}

	// Bubble: at each node on the path, run delegations for which this
	// node matches and the node sits below the delegation root.
	for el := target; el != nil && !ev.stopped; el = el.Parent() {
		for _, dg := range d.delegations {
			if dg.removed || dg.event != event {
				continue
			}
			if el == dg.root || !dg.root.Contains(el) {
				continue
			}
			if !matchSelector(el, dg.selector) {
				continue
			}
			ev.Target = el
			dg.fn(ev)
			if ev.stopped {
				return
			}
		}
	}
}

// compactDelegations drops removed registrations. Called opportunistically
// by owners that remove many handlers at once (component disposal).
func (d *Document) compactDelegations() {
	live := d.delegations[:0]
	for _, dg := range d.delegations {
		if !dg.removed {
			live = append(live, dg)
		}
	}
	d.delegations = live
}

// RemoveDelegations removes every delegation rooted at the given element.
func (d *Document) RemoveDelegations(root *Element) {
	for _, dg := range d.delegations {
		if dg.root == root {
			dg.removed = true
		}
	}
	d.compactDelegations()
}

func matchSelector(el *Element, selector string) bool {
	switch {
	case selector == "":
		return true
	case strings.HasPrefix(selector, "#"):
		return el.ID() == selector[1:]
	case strings.HasPrefix(selector, "."):
		return el.HasClass(selector[1:])
	default:
		return el.Tag() == selector
	}
}
