package encoding

import (
	"errors"
	"strings"
	"testing"
)

func newTestEncoder(t *testing.T) *Encoder {
	t.Helper()
	enc, err := NewEncoder([]byte("test-key"))
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	return enc
}

func TestSignedRoundTrip(t *testing.T) {
	enc := newTestEncoder(t)
	snapshot := map[string]any{"title": "hello", "count": int8(3)}

	encoded, err := enc.Encode(snapshot, false)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(encoded, ".") {
		t.Error("signed encoding should carry a signature part")
	}

	decoded, err := enc.Decode(encoded, false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded["title"] != "hello" {
		t.Errorf("decoded[title] = %v", decoded["title"])
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	enc := newTestEncoder(t)
	snapshot := map[string]any{"secret": "s3cret"}

	encoded, err := enc.Encode(snapshot, true)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if strings.Contains(encoded, "s3cret") {
		t.Error("encrypted snapshot leaks plaintext")
	}

	decoded, err := enc.Decode(encoded, true)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded["secret"] != "s3cret" {
		t.Errorf("decoded[secret] = %v", decoded["secret"])
	}
}

func TestTamperedSignature(t *testing.T) {
	enc := newTestEncoder(t)
	encoded, err := enc.Encode(map[string]any{"a": 1}, false)
	if err != nil {
		t.Fatal(err)
	}

	// Flip a character in the payload part.
	payload := []byte(encoded)
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}

	if _, err := enc.Decode(string(payload), false); !errors.Is(err, ErrSignatureInvalid) {
		t.Errorf("tampered Decode() error = %v, want ErrSignatureInvalid", err)
	}
}

func TestInvalidFormat(t *testing.T) {
	enc := newTestEncoder(t)

	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"missing signature", "YWJj"},
		{"bad base64 payload", "!!!!.sig"},
		{"bad base64 signature", "YWJj.!!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := enc.Decode(tt.encoded, false); !errors.Is(err, ErrInvalidFormat) {
				t.Errorf("Decode(%q) error = %v, want ErrInvalidFormat", tt.encoded, err)
			}
		})
	}
}

func TestDecryptWrongKey(t *testing.T) {
	enc := newTestEncoder(t)
	other, err := NewEncoder([]byte("a different key"))
	if err != nil {
		t.Fatal(err)
	}

	encoded, err := enc.Encode(map[string]any{"a": 1}, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Decode(encoded, true); !errors.Is(err, ErrDecryptFailed) {
		t.Errorf("wrong-key Decode() error = %v, want ErrDecryptFailed", err)
	}
}

func TestKeyStretching(t *testing.T) {
	// Short keys must be accepted (stretched to AES-256 length).
	if _, err := NewEncoder([]byte("k")); err != nil {
		t.Errorf("NewEncoder(short key) error = %v", err)
	}
}
