// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kx

import (
	"context"

	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/keydb"
	"github.com/companyzero/txcore/txcrypto"
	"github.com/companyzero/txcore/ui"
	"github.com/companyzero/txcore/wire"
)

// NewLocalKey runs the Tx-side local-key exchange protocol: it provisions
// the symmetric key that will encrypt every subsequent TxM->RxM command.
//
// The key is delivered to RxM inside a packet sealed with an ephemeral
// key-encryption key (kek). The kek itself is never sent over the NH
// queue: it is displayed for the user to transcribe onto RxM by hand, so
// that neither an eavesdropped ciphertext nor an eavesdropped kek alone is
// enough to recover the local key — only both together, and the one-byte
// confirmation code proves RxM actually received and decrypted the
// payload before TxM commits.
func NewLocalKey(ctx context.Context, settings Settings, queues Queues, db contact.DB, kdb keydb.DB, p ui.Prompter) error {
	if settings.SessionTrafficMasking() {
		return newError(Disabled, "command is disabled during traffic masking")
	}

	cCodeByte := txcrypto.CSPRNG()
	cCode := ConfirmationCode(cCodeByte[0])
	key := txcrypto.CSPRNG()
	hek := txcrypto.CSPRNG()
	kek := txcrypto.CSPRNG()

	sealed := txcrypto.EncryptAndSign(concatKeyMaterial(key, hek, cCode), kek)
	packet := wire.LocalKeyPacket(sealed)

	p.NHBypass(true)
	if err := queues.NH.Put(ctx, packet); err != nil {
		return newError(Abort, "local key setup aborted")
	}

	for {
		input, err := p.ShowLocalKeyDecryptionKey(ctx, kek)
		if err != nil {
			return newError(Abort, "local key setup aborted")
		}

		switch {
		case input == cCode.Hex():
			goto confirmed
		case input == wire.Resend:
			if err := queues.NH.Put(ctx, packet); err != nil {
				return newError(Abort, "local key setup aborted")
			}
		default:
			p.Notify("Incorrect confirmation code. If RxM did not receive the encrypted local key, resend it by typing 'resend'.")
		}
	}

confirmed:
	p.NHBypass(false)

	record := contact.Record{
		Account:       wire.LocalID,
		User:          wire.LocalID,
		Nick:          wire.LocalID,
		TxFingerprint: contact.ZeroFingerprint,
		RxFingerprint: contact.ZeroFingerprint,
		Logging:       false,
		AcceptFiles:   false,
		Notifications: false,
	}
	if err := db.AddContact(record); err != nil {
		return newError(Transient, "could not add local contact: "+err.Error())
	}

	entry := keydb.Entry{
		PeerID:       wire.LocalID,
		TxMessageKey: key,
		RxMessageKey: txcrypto.CSPRNG(), // unusable by design: TxM never decrypts in the Rx direction.
		TxHeaderKey:  hek,
		RxHeaderKey:  txcrypto.CSPRNG(),
	}
	if err := kdb.Add(entry); err != nil {
		return newError(Transient, "could not add local key entry: "+err.Error())
	}

	if err := queues.Command.Put(ctx, wire.LocalKeyInstalledPacket()); err != nil {
		return newError(Abort, "local key setup aborted")
	}

	p.Notify("Successfully added a new local key.")
	return nil
}

// concatKeyMaterial builds key || hek || c_code for sealing, without
// leaving an intermediate copy any longer than necessary.
func concatKeyMaterial(key, hek [32]byte, cCode ConfirmationCode) []byte {
	buf := make([]byte, 0, 32+32+1)
	buf = append(buf, key[:]...)
	buf = append(buf, hek[:]...)
	buf = append(buf, byte(cCode))
	return buf
}
