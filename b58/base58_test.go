// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package b58

import (
	"crypto/rand"
	"strings"
	"testing"
)

func randPayload(t *testing.T) [32]byte {
	var p [32]byte
	if _, err := rand.Read(p[:]); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRoundTrip(t *testing.T) {
	payload := randPayload(t)
	enc := Encode(VersionPublicKey, payload)

	got, err := Decode(enc, VersionPublicKey)
	if err != nil {
		t.Fatal(err)
	}
	if got != payload {
		t.Fatal("round trip altered payload")
	}
}

func TestWrongVersionRejected(t *testing.T) {
	payload := randPayload(t)
	enc := Encode(VersionLocalKey, payload)

	if _, err := Decode(enc, VersionPublicKey); err != ErrVersion {
		t.Fatalf("expected ErrVersion, got %v", err)
	}
}

func TestBitFlipFailsParse(t *testing.T) {
	payload := randPayload(t)
	enc := Encode(VersionPublicKey, payload)

	// Flip the case of a middle rune to perturb the encoded string
	// without producing an obviously invalid character.
	runes := []rune(enc)
	mid := len(runes) / 2
	if strings.ToUpper(string(runes[mid])) != string(runes[mid]) {
		runes[mid] = []rune(strings.ToUpper(string(runes[mid])))[0]
	} else {
		runes[mid] = []rune(strings.ToLower(string(runes[mid])))[0]
	}
	tampered := string(runes)

	if tampered == enc {
		t.Skip("could not perturb encoded string")
	}
	if _, err := Decode(tampered, VersionPublicKey); err == nil {
		t.Fatal("expected tampered string to fail to parse")
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode("not-base58-at-all!!", VersionPublicKey); err == nil {
		t.Fatal("expected garbage input to fail")
	}
}
