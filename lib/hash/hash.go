// Package hash provides the content fingerprinting primitives used by the
// surface cache: a deterministic string hash and a whitespace normalizer.
//
// Fingerprints are an equality proxy, not an integrity check. A collision
// costs at most one unnecessary re-render; it can never cause stale content
// to be kept, because a differing fingerprint always forces a re-render.
package hash

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint returns a deterministic non-negative hash of s.
//
// The sign bit is masked off so the result can never collide with the
// negative cache sentinels used by the surface registry.
func Fingerprint(s string) int64 {
	return int64(xxhash.Sum64String(s) & (1<<63 - 1))
}

// Normalize collapses consecutive whitespace runs into single spaces and
// trims leading and trailing whitespace.
//
// Server-rendered markup is typically indented; the differences are not
// visually significant, so they must not defeat cache seeding when a
// component decorates existing DOM.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizedFingerprint is shorthand for Fingerprint(Normalize(s)).
//
// Used when seeding surface caches from pre-rendered DOM so that a later
// render pass with logically identical content compares equal.
func NormalizedFingerprint(s string) int64 {
	return Fingerprint(Normalize(s))
}
