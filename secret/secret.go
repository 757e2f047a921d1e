// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package secret provides a fixed-length opaque byte type for key material.
// A Secret is always 32 bytes, compares in constant time, and is zeroised
// explicitly rather than left for the garbage collector.
package secret

import (
	"crypto/subtle"
	"errors"
)

// Size is the fixed length of every Secret in this module.
const Size = 32

var (
	// ErrLength is returned when FromBytes is given a slice of the wrong
	// length.
	ErrLength = errors.New("secret: input must be exactly 32 bytes")

	// Zero is the all-zero sentinel used to mean "no secret" (e.g. the
	// fingerprint slots of a local or PSK contact).
	Zero = Secret{}
)

// Secret is a 32-byte key. The zero value is the all-zero sentinel, not an
// invalid state, so Secret can be embedded in structs without a pointer.
type Secret [Size]byte

// FromBytes copies b into a new Secret. b must be exactly Size bytes.
func FromBytes(b []byte) (Secret, error) {
	var s Secret
	if len(b) != Size {
		return s, ErrLength
	}
	copy(s[:], b)
	return s, nil
}

// Bytes returns a copy of the secret's bytes. Callers that retain the
// returned slice are responsible for zeroising it themselves.
func (s Secret) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, s[:])
	return b
}

// Equal reports whether s and o hold the same bytes, in constant time.
func (s Secret) Equal(o Secret) bool {
	return subtle.ConstantTimeCompare(s[:], o[:]) == 1
}

// IsZero reports whether s is the all-zero sentinel.
func (s Secret) IsZero() bool {
	return s.Equal(Zero)
}

// Zeroise overwrites s with zero bytes in place. Call this as soon as a
// Secret is no longer needed; do not rely on garbage collection.
func (s *Secret) Zeroise() {
	for i := range s {
		s[i] = 0
	}
}

// String deliberately does not exist: Secret must never be rendered by
// fmt.Stringer, %v, %s, or any logger. Use an explicit printer (see the ui
// package) to surface a secret to a human.
