package quilt

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelsDistinct(t *testing.T) {
	sentinels := []error{
		ErrAlreadyRendered,
		ErrDisposed,
		ErrUnknownType,
		ErrTypeCycle,
		ErrNoEncoder,
		ErrInvalidSnapshot,
		ErrSignatureInvalid,
		ErrDecryptFailed,
	}

	for i, a := range sentinels {
		if !strings.HasPrefix(a.Error(), "quilt: ") {
			t.Errorf("%v lacks the package prefix", a)
		}
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinels %v and %v overlap", a, b)
			}
		}
	}
}

func TestPredicatesMatchWrappedErrors(t *testing.T) {
	tests := []struct {
		name string
		pred func(error) bool
		err  error
	}{
		{"IsAlreadyRendered", IsAlreadyRendered, ErrAlreadyRendered},
		{"IsDisposed", IsDisposed, ErrDisposed},
		{"IsSnapshotError/format", IsSnapshotError, ErrInvalidSnapshot},
		{"IsSnapshotError/signature", IsSnapshotError, ErrSignatureInvalid},
		{"IsSnapshotError/decrypt", IsSnapshotError, ErrDecryptFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !tt.pred(wrapped) {
				t.Errorf("%s(%v) = false, want true", tt.name, wrapped)
			}
			if tt.pred(errors.New("other")) {
				t.Errorf("%s matched an unrelated error", tt.name)
			}
			if tt.pred(nil) {
				t.Errorf("%s(nil) = true", tt.name)
			}
		})
	}
}
