package quilt

import "testing"

func TestTestBedIsolation(t *testing.T) {
	a := NewTestBed()
	b := NewTestBed()

	a.Registry.Define(Def{Name: "only-in-a"})
	if b.Registry.Defined("only-in-a") {
		t.Error("type definitions leaked between beds")
	}

	if err := a.SeedBodyHTML("<p>a</p>"); err != nil {
		t.Fatal(err)
	}
	if b.ContainsHTML("<p>a</p>") {
		t.Error("DOM state leaked between beds")
	}
	if !a.ContainsHTML("<p>a</p>") {
		t.Errorf("BodyHTML() = %q", a.BodyHTML())
	}
}

func TestSurfaceHTMLUnknownID(t *testing.T) {
	tb := cardBed(t)
	w := newCard(t, tb, Config{})
	if got := SurfaceHTML(w.Component, "ghost"); got != "" {
		t.Errorf("SurfaceHTML(ghost) = %q, want empty", got)
	}
}

func TestMutationProbe(t *testing.T) {
	tb := NewTestBed()
	el := tb.Doc.CreateElement("div")

	probe := ProbeMutations(el)
	if probe.Count() != 0 {
		t.Errorf("fresh probe Count() = %d", probe.Count())
	}

	_ = el.Append("x")
	if probe.Count() == 0 {
		t.Error("append not counted")
	}

	probe.Reset()
	if probe.Count() != 0 {
		t.Errorf("Count() after Reset = %d", probe.Count())
	}
}
