package dom

import "testing"

func delegationFixture(t *testing.T) (*Document, *Element, *Element) {
	t.Helper()
	doc := NewDocument()
	root := doc.CreateElement("div")
	doc.Body().AppendChild(root)
	if err := root.Append(`<ul><li id="item" class="row">x</li></ul>`); err != nil {
		t.Fatal(err)
	}
	return doc, root, doc.ByID("item")
}

func TestDelegateSelectors(t *testing.T) {
	tests := []struct {
		name     string
		selector string
		want     int
	}{
		{"by id", "#item", 1},
		{"by class", ".row", 1},
		{"by tag", "li", 1},
		{"any", "", 2}, // li and ul both sit on the bubble path
		{"no match", ".other", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, root, item := delegationFixture(t)

			fired := 0
			doc.Delegate(root, "click", tt.selector, func(*Event) { fired++ })
			doc.Dispatch(item, "click", nil)

			if fired != tt.want {
				t.Errorf("selector %q fired %d times, want %d", tt.selector, fired, tt.want)
			}
		})
	}
}

func TestDelegateEventTypeFilter(t *testing.T) {
	doc, root, item := delegationFixture(t)

	fired := 0
	doc.Delegate(root, "click", "li", func(*Event) { fired++ })
	doc.Dispatch(item, "change", nil)

	if fired != 0 {
		t.Errorf("handler for click fired on change (%d times)", fired)
	}
}

func TestDelegateTargetAndDetail(t *testing.T) {
	doc, root, item := delegationFixture(t)

	var got *Event
	doc.Delegate(root, "click", "li", func(ev *Event) { got = ev })
	doc.Dispatch(item, "click", "payload")

	if got == nil {
		t.Fatal("handler did not fire")
	}
	if got.Target != item {
		t.Error("Target should be the matching element")
	}
	if got.Detail != "payload" {
		t.Errorf("Detail = %v, want payload", got.Detail)
	}
}

func TestDelegateRootExcluded(t *testing.T) {
	doc, root, item := delegationFixture(t)

	fired := 0
	doc.Delegate(root, "click", "div", func(*Event) { fired++ })
	doc.Dispatch(item, "click", nil)

	if fired != 0 {
		t.Error("the delegation root itself must not match")
	}
}

func TestDelegationRemove(t *testing.T) {
	doc, root, item := delegationFixture(t)

	fired := 0
	dg := doc.Delegate(root, "click", "li", func(*Event) { fired++ })
	dg.Remove()
	dg.Remove() // safe twice
	doc.Dispatch(item, "click", nil)

	if fired != 0 {
		t.Errorf("removed delegation fired %d times", fired)
	}
}

func TestRemoveDelegationsByRoot(t *testing.T) {
	doc, root, item := delegationFixture(t)
	other := doc.CreateElement("div")
	doc.Body().AppendChild(other)

	rootFired, otherFired := 0, 0
	doc.Delegate(root, "click", "li", func(*Event) { rootFired++ })
	doc.Delegate(other, "click", "", func(*Event) { otherFired++ })

	doc.RemoveDelegations(root)
	doc.Dispatch(item, "click", nil)

	if rootFired != 0 {
		t.Error("delegations rooted at the removed root still fire")
	}

	// Delegations under other roots survive.
	child := doc.CreateElement("span")
	other.AppendChild(child)
	doc.Dispatch(child, "click", nil)
	if otherFired != 1 {
		t.Errorf("unrelated delegation fired %d times, want 1", otherFired)
	}
}

func TestStopPropagation(t *testing.T) {
	doc, root, item := delegationFixture(t)

	calls := 0
	doc.Delegate(root, "click", "li", func(ev *Event) {
		calls++
		ev.StopPropagation()
	})
	doc.Delegate(root, "click", "ul", func(*Event) { calls++ })
	doc.Dispatch(item, "click", nil)

	if calls != 1 {
		t.Errorf("propagation continued after stop: %d calls", calls)
	}
}
