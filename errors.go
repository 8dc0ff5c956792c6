package quilt

import "errors"

// Sentinel errors for component operations.
var (
	ErrAlreadyRendered  = errors.New("quilt: component already rendered")
	ErrDisposed         = errors.New("quilt: component disposed")
	ErrUnknownType      = errors.New("quilt: component type not defined")
	ErrTypeCycle        = errors.New("quilt: component type parent cycle")
	ErrNoEncoder        = errors.New("quilt: no state encoder configured")
	ErrInvalidSnapshot  = errors.New("quilt: invalid state snapshot")
	ErrSignatureInvalid = errors.New("quilt: snapshot signature verification failed")
	ErrDecryptFailed    = errors.New("quilt: snapshot decryption failed")
)

// IsAlreadyRendered checks if err is the lifecycle-misuse error returned
// when Render or Decorate is called on an attached component.
func IsAlreadyRendered(err error) bool {
	return errors.Is(err, ErrAlreadyRendered)
}

// IsDisposed checks if err came from a lifecycle call on a disposed
// component.
func IsDisposed(err error) bool {
	return errors.Is(err, ErrDisposed)
}

// IsSnapshotError checks if err is any of the state-snapshot decode errors
// (bad format, bad signature, failed decryption).
func IsSnapshotError(err error) bool {
	return errors.Is(err, ErrInvalidSnapshot) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrDecryptFailed)
}
