package quilt

import (
	"errors"

	"github.com/quiltui/quilt/lib/attrs"
	"github.com/quiltui/quilt/lib/encoding"
)

// StateAttr is the root-element attribute carrying the encoded attribute
// snapshot for progressive enhancement.
const StateAttr = "data-quilt-state"

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates a snapshot encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// SaveState serializes the component's current attribute values into the
// root element's state attribute. Server-side rendering calls this after
// the initial Render so that the client-side Decorate can resume with the
// same state.
func (c *Component) SaveState() error {
	if c.encoder == nil {
		return ErrNoEncoder
	}
	encoded, err := c.encoder.Encode(c.store.Snapshot(), c.sensitive)
	if err != nil {
		return err
	}
	c.Element().SetAttr(StateAttr, encoded)
	return nil
}

// restoreState applies the snapshot found on the adopted root element, if
// any. Runs during Decorate, before surface caches are seeded.
//
// Init-only attributes (the id travels in the snapshot but is fixed at
// construction) and attributes this type no longer defines are skipped;
// a snapshot that fails verification or decryption is an error.
func (c *Component) restoreState() error {
	if c.encoder == nil || c.element == nil {
		return nil
	}
	encoded := c.element.Attr(StateAttr)
	if encoded == "" {
		return nil
	}

	snapshot, err := c.encoder.Decode(encoded, c.sensitive)
	if err != nil {
		return wrapEncodingError(err)
	}

	var errs []error
	c.store.Batch(func() {
		for name, value := range snapshot {
			err := c.store.Set(name, value)
			if err == nil ||
				errors.Is(err, attrs.ErrInitOnly) ||
				errors.Is(err, attrs.ErrUnknownAttr) {
				continue
			}
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// wrapEncodingError wraps encoding package errors with quilt sentinels.
func wrapEncodingError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, encoding.ErrInvalidFormat) {
		return ErrInvalidSnapshot
	}
	if errors.Is(err, encoding.ErrSignatureInvalid) {
		return ErrSignatureInvalid
	}
	if errors.Is(err, encoding.ErrDecryptFailed) {
		return ErrDecryptFailed
	}
	return err
}
