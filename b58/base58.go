// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package b58 renders 32-byte secrets as Base58-check strings for manual
// transcription between TxM and RxM, and parses them back. Two distinct
// version bytes are used so a local-key decryption key can never be
// confused with a contact public key, even though both are 32 raw bytes.
package b58

import (
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58"
)

// Version bytes distinguish the alphabet a string was encoded under. They
// are not a cryptographic control, only a transcription safety net: typing
// a local-key decryption key into the public-key prompt (or vice versa)
// fails to parse instead of silently producing the wrong key.
const (
	VersionLocalKey byte = 0x90
	VersionPublicKey byte = 0x91

	checksumLen = 4
)

var (
	// ErrChecksum is returned when the trailing checksum bytes don't
	// match the computed double-SHA256 checksum.
	ErrChecksum = errors.New("b58: checksum mismatch")

	// ErrVersion is returned when the decoded version byte doesn't
	// match the version requested by the caller.
	ErrVersion = errors.New("b58: unexpected version byte")

	// ErrLength is returned when the decoded payload isn't exactly 32
	// bytes.
	ErrLength = errors.New("b58: payload must be 32 bytes")

	// ErrDecode is returned when the input string isn't valid Base58.
	ErrDecode = errors.New("b58: invalid base58 string")
)

// doubleSHA256 matches the checksum construction used throughout the
// Bitcoin-derived Base58Check family of encodings: take the first 4 bytes
// of SHA256(SHA256(version || payload)).
func checksum(versionAndPayload []byte) [checksumLen]byte {
	first := sha256.Sum256(versionAndPayload)
	second := sha256.Sum256(first[:])
	var out [checksumLen]byte
	copy(out[:], second[:checksumLen])
	return out
}

// Encode renders a 32-byte payload as version || payload || checksum,
// Base58 encoded.
func Encode(version byte, payload [32]byte) string {
	buf := make([]byte, 0, 1+32+checksumLen)
	buf = append(buf, version)
	buf = append(buf, payload[:]...)
	sum := checksum(buf)
	buf = append(buf, sum[:]...)
	return base58.Encode(buf)
}

// Decode parses s, verifies its checksum, and confirms the version byte
// equals wantVersion. The 32-byte payload is returned on success.
func Decode(s string, wantVersion byte) ([32]byte, error) {
	var out [32]byte

	raw, err := base58.Decode(s)
	if err != nil {
		return out, ErrDecode
	}
	if len(raw) != 1+32+checksumLen {
		return out, ErrLength
	}

	version := raw[0]
	payload := raw[1 : 1+32]
	wantSum := checksum(raw[:1+32])
	gotSum := raw[1+32:]

	for i := 0; i < checksumLen; i++ {
		if wantSum[i] != gotSum[i] {
			return out, ErrChecksum
		}
	}
	if version != wantVersion {
		return out, ErrVersion
	}

	copy(out[:], payload)
	return out, nil
}
