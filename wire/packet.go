// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"errors"

	"github.com/companyzero/txcore/secret"
)

// ErrMalformed is returned by the Parse* functions when a packet does not
// match its expected fixed-width shape.
var ErrMalformed = errors.New("wire: malformed packet")

// LocalKeyPacket builds the NH local-key packet:
// LocalKeyPacketHeader || encrypt_and_sign(key||hek||c_code, kek).
func LocalKeyPacket(sealed []byte) []byte {
	return append([]byte{LocalKeyPacketHeader}, sealed...)
}

// PublicKeyPacket builds the NH public-key packet:
// PublicKeyPacketHeader || tx_pk(32) || user || 0x1F || account.
func PublicKeyPacket(txPK secret.Secret, user, account string) []byte {
	buf := make([]byte, 0, 1+32+len(user)+1+len(account))
	buf = append(buf, PublicKeyPacketHeader)
	buf = append(buf, txPK[:]...)
	buf = append(buf, []byte(user)...)
	buf = append(buf, USByte)
	buf = append(buf, []byte(account)...)
	return buf
}

// ParsePublicKeyPacket splits a public-key packet (header already
// stripped) into its public key, user, and account fields.
func ParsePublicKeyPacket(body []byte) (pk secret.Secret, user, account string, err error) {
	if len(body) < 32+1 {
		return pk, "", "", ErrMalformed
	}
	copy(pk[:], body[:32])
	rest := body[32:]
	idx := bytes.IndexByte(rest, USByte)
	if idx < 0 {
		return pk, "", "", ErrMalformed
	}
	return pk, string(rest[:idx]), string(rest[idx+1:]), nil
}

// X25519InstallPacket builds the Command X25519 install packet:
// KeyExX25519Header || tx_key||tx_hek||rx_key||rx_hek || account || 0x1F || nick.
func X25519InstallPacket(txKey, txHek, rxKey, rxHek secret.Secret, account, nick string) []byte {
	buf := make([]byte, 0, 1+4*32+len(account)+1+len(nick))
	buf = append(buf, KeyExX25519Header)
	buf = append(buf, txKey[:]...)
	buf = append(buf, txHek[:]...)
	buf = append(buf, rxKey[:]...)
	buf = append(buf, rxHek[:]...)
	buf = append(buf, []byte(account)...)
	buf = append(buf, USByte)
	buf = append(buf, []byte(nick)...)
	return buf
}

// PSKTxInstallPacket builds the Command PSK install (TxM side) packet:
// KeyExPSKTxHeader || tx_key||tx_hek || account || 0x1F || nick.
func PSKTxInstallPacket(txKey, txHek secret.Secret, account, nick string) []byte {
	buf := make([]byte, 0, 1+2*32+len(account)+1+len(nick))
	buf = append(buf, KeyExPSKTxHeader)
	buf = append(buf, txKey[:]...)
	buf = append(buf, txHek[:]...)
	buf = append(buf, []byte(account)...)
	buf = append(buf, USByte)
	buf = append(buf, []byte(nick)...)
	return buf
}

// PSKRxLoadPacket builds the Command PSK load trigger packet:
// KeyExPSKRxHeader || peer_id.
func PSKRxLoadPacket(peerID string) []byte {
	buf := make([]byte, 0, 1+len(peerID))
	buf = append(buf, KeyExPSKRxHeader)
	buf = append(buf, []byte(peerID)...)
	return buf
}

// LocalKeyInstalledPacket builds the LOCAL_KEY_INSTALLED command: a bare
// header with no payload.
func LocalKeyInstalledPacket() []byte {
	return []byte{LocalKeyInstalledHeader}
}

// PSKFileContents builds the PSK file format: salt(32) ||
// AEAD(argon2id(password, salt), tx_key||tx_hek).
func PSKFileContents(salt secret.Secret, sealed []byte) []byte {
	return append(append([]byte{}, salt[:]...), sealed...)
}

// ParsePSKFileContents splits a PSK file's contents into its salt and the
// sealed key material.
func ParsePSKFileContents(data []byte) (salt secret.Secret, sealed []byte, err error) {
	if len(data) < 32 {
		return salt, nil, ErrMalformed
	}
	copy(salt[:], data[:32])
	return salt, data[32:], nil
}
