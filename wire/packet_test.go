// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/companyzero/txcore/secret"
)

func TestPublicKeyPacketRoundTrip(t *testing.T) {
	var pk secret.Secret
	copy(pk[:], bytes.Repeat([]byte{0x07}, 32))

	pkt := PublicKeyPacket(pk, "bob@ex", "alice@ex")
	if pkt[0] != PublicKeyPacketHeader {
		t.Fatal("wrong header byte")
	}

	gotPK, user, account, err := ParsePublicKeyPacket(pkt[1:])
	if err != nil {
		t.Fatal(err)
	}
	if gotPK != pk || user != "bob@ex" || account != "alice@ex" {
		t.Fatalf("round trip mismatch: %v %q %q", gotPK, user, account)
	}
}

func TestParsePublicKeyPacketMalformed(t *testing.T) {
	if _, _, _, err := ParsePublicKeyPacket([]byte("short")); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestX25519InstallPacketLayout(t *testing.T) {
	var txKey, txHek, rxKey, rxHek secret.Secret
	copy(txKey[:], bytes.Repeat([]byte{0x01}, 32))
	copy(txHek[:], bytes.Repeat([]byte{0x02}, 32))
	copy(rxKey[:], bytes.Repeat([]byte{0x03}, 32))
	copy(rxHek[:], bytes.Repeat([]byte{0x04}, 32))

	pkt := X25519InstallPacket(txKey, txHek, rxKey, rxHek, "alice@ex", "Alice")

	want := append([]byte{KeyExX25519Header}, txKey[:]...)
	want = append(want, txHek[:]...)
	want = append(want, rxKey[:]...)
	want = append(want, rxHek[:]...)
	want = append(want, []byte("alice@ex")...)
	want = append(want, USByte)
	want = append(want, []byte("Alice")...)

	if !bytes.Equal(pkt, want) {
		t.Fatal("packet layout did not match the wire format exactly")
	}
}

func TestPSKFileContentsRoundTrip(t *testing.T) {
	var salt secret.Secret
	copy(salt[:], bytes.Repeat([]byte{0x09}, 32))
	sealed := []byte("pretend-sealed-bytes")

	data := PSKFileContents(salt, sealed)
	gotSalt, gotSealed, err := ParsePSKFileContents(data)
	if err != nil {
		t.Fatal(err)
	}
	if gotSalt != salt || !bytes.Equal(gotSealed, sealed) {
		t.Fatal("PSK file round trip mismatch")
	}
}
