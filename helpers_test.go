package quilt

import (
	"context"
	"testing"
)

func TestRenderToString(t *testing.T) {
	got, err := RenderToString(context.Background(), staticContent("<p>hi</p>"))
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	if got != "<p>hi</p>" {
		t.Errorf("RenderToString() = %q, want <p>hi</p>", got)
	}
}

func TestRenderToStringError(t *testing.T) {
	if _, err := RenderToString(context.Background(), brokenContent{}); err == nil {
		t.Error("RenderToString() should propagate render errors")
	}
}
