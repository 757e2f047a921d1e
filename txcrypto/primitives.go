// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txcrypto collects the cryptographic primitives shared by the
// key-establishment engines: a CSPRNG, authenticated symmetric encryption,
// a domain-separating KDF, X25519 key agreement, and an Argon2id password
// KDF. None of the engines roll their own crypto beyond calling these.
package txcrypto

import (
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/companyzero/txcore/secret"
)

const nonceSize = 24

var (
	// ErrDecrypt is returned when OpenAndVerify fails authentication.
	ErrDecrypt = errors.New("txcrypto: decrypt failure")

	// ErrShort is returned when OpenAndVerify is given a ciphertext too
	// short to contain a nonce.
	ErrShort = errors.New("txcrypto: ciphertext too short")

	// ErrZeroKey is returned by X25519Shared when the peer's public key
	// is the all-zero sentinel, which only an attacker (or a broken
	// peer) would ever send — a legitimate key is never all zero bytes.
	ErrZeroKey = errors.New("txcrypto: zero public key")
)

// CSPRNG draws 32 bytes from the operating system's secure randomness
// source. A failure here is fatal to the process: there is no degraded
// mode for a transmitter that cannot generate keys.
func CSPRNG() secret.Secret {
	var s secret.Secret
	if _, err := io.ReadFull(rand.Reader, s[:]); err != nil {
		panic("txcrypto: CSPRNG failure: " + err.Error())
	}
	return s
}

// EncryptAndSign authenticates and encrypts plaintext under key, returning
// nonce || secretbox(key, nonce, plaintext). The nonce is freshly random
// for every call.
func EncryptAndSign(plaintext []byte, key secret.Secret) []byte {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		panic("txcrypto: CSPRNG failure: " + err.Error())
	}
	var k [32]byte
	copy(k[:], key[:])

	sealed := secretbox.Seal(nil, plaintext, &nonce, &k)
	out := make([]byte, nonceSize+len(sealed))
	copy(out, nonce[:])
	copy(out[nonceSize:], sealed)
	return out
}

// OpenAndVerify reverses EncryptAndSign, returning ErrDecrypt if
// authentication fails.
func OpenAndVerify(ciphertext []byte, key secret.Secret) ([]byte, error) {
	if len(ciphertext) < nonceSize {
		return nil, ErrShort
	}
	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[:nonceSize])

	var k [32]byte
	copy(k[:], key[:])

	plaintext, ok := secretbox.Open(nil, ciphertext[nonceSize:], &nonce, &k)
	if !ok {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}

// HashChain is the domain-separating KDF. It is deterministic and
// preimage-resistant, and always returns exactly 32 bytes regardless of
// how many parts are concatenated. Callers supply the domain-separation
// context (e.g. []byte("message_key")) as one of the parts, by
// convention the last one.
func HashChain(parts ...[]byte) secret.Secret {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	sum := h.Sum(nil)
	var s secret.Secret
	copy(s[:], sum[:secret.Size])
	return s
}

// Argon2Params records the cost parameters used by a given Argon2KDF call,
// so they can travel alongside a derived key if ever needed for an audit
// trail. The spec fixes these via Settings; this module exposes sane
// interactive defaults and lets callers override time/memory.
type Argon2Params struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// DefaultArgon2Params mirrors a conservative interactive profile: enough
// memory-hardness to slow an offline attacker on a stolen PSK file without
// making removable-media key delivery impractical on modest hardware.
var DefaultArgon2Params = Argon2Params{
	Time:        3,
	MemoryKiB:   256 * 1024,
	Parallelism: 1,
}

// Argon2KDF derives a 32-byte key from password and salt using Argon2id.
// Only the derived key is consumed by callers in this module; params is
// returned so it can be recorded for future re-derivation.
func Argon2KDF(password []byte, salt secret.Secret, parallelism uint8) (secret.Secret, Argon2Params) {
	params := DefaultArgon2Params
	params.Parallelism = parallelism

	out := argon2.IDKey(password, salt[:], params.Time, params.MemoryKiB, params.Parallelism, secret.Size)
	var s secret.Secret
	copy(s[:], out)
	return s, params
}

// X25519KeyPair is an ephemeral Curve25519 scalar and its base-point
// multiple, generated fresh for a single key exchange.
type X25519KeyPair struct {
	Private secret.Secret
	Public  secret.Secret
}

// GenerateX25519KeyPair draws a fresh CSPRNG scalar and computes its
// public counterpart.
func GenerateX25519KeyPair() X25519KeyPair {
	priv := CSPRNG()
	var pub [32]byte
	var sk [32]byte
	copy(sk[:], priv[:])
	curve25519.ScalarBaseMult(&pub, &sk)

	var pubSecret secret.Secret
	copy(pubSecret[:], pub[:])
	return X25519KeyPair{Private: priv, Public: pubSecret}
}

// X25519Shared computes the scalar multiplication of ourPrivate and
// theirPublic. It rejects the all-zero public key as adversarial: such a
// key collapses the shared secret to a known constant, and some X25519
// implementations reject it outright, making it a reliable DoS/confusion
// vector rather than a legitimate contact key.
func X25519Shared(ourPrivate, theirPublic secret.Secret) (secret.Secret, error) {
	if theirPublic.IsZero() {
		return secret.Secret{}, ErrZeroKey
	}

	var sk, pk, out [32]byte
	copy(sk[:], ourPrivate[:])
	copy(pk[:], theirPublic[:])
	curve25519.ScalarMult(&out, &sk, &pk)

	var s secret.Secret
	copy(s[:], out[:])
	return s, nil
}
