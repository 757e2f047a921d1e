// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kx

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/keydb"
	"github.com/companyzero/txcore/txcrypto"
	"github.com/companyzero/txcore/ui"
	"github.com/companyzero/txcore/wire"
)

// pskParallelism matches the source's choice of a single lane for PSK
// wrapping: the key only ever needs deriving once, interactively, while
// the user waits, so there is no benefit to spending more cores on it.
const pskParallelism = 1

// CreatePreSharedKey generates a new pre-shared key for out-of-band
// delivery (e.g. on removable media) instead of X25519 agreement, for
// contacts who cannot complete an interactive exchange. The key itself
// never touches the NH queue: only a password-wrapped copy is written to
// disk, and the Command queue only carries the plaintext key to the local
// RxM, which shares a physically isolated boundary with TxM.
func CreatePreSharedKey(ctx context.Context, account, user, nick string, settings Settings, queues Queues, db contact.DB, kdb keydb.DB, p ui.Prompter) error {
	txKey := txcrypto.CSPRNG()
	txHek := txcrypto.CSPRNG()
	salt := txcrypto.CSPRNG()

	password, err := p.AskPassword(ctx, "Enter a password for the PSK")
	if err != nil {
		return newError(Abort, "PSK generation aborted")
	}

	kek, _ := txcrypto.Argon2KDF([]byte(password), salt, pskParallelism)
	sealed := txcrypto.EncryptAndSign(append(append([]byte{}, txKey.Bytes()...), txHek.Bytes()...), kek)
	contents := wire.PSKFileContents(salt, sealed)

	for {
		dir, err := p.AskDirectory(ctx, "Select removable media for "+nick)
		if err != nil {
			return newError(Abort, "PSK generation aborted")
		}

		name := filepath.Join(dir, user+".psk - Give to "+account)
		writeErr := os.WriteFile(name, contents, 0o600)
		if writeErr == nil {
			break
		}
		if errors.Is(writeErr, os.ErrPermission) {
			p.Notify("Error: did not have permission to write to directory.")
			continue
		}
		return newError(Transient, "could not write PSK file: "+writeErr.Error())
	}

	record := contact.Record{
		Account:       account,
		User:          user,
		Nick:          nick,
		TxFingerprint: contact.ZeroFingerprint,
		RxFingerprint: contact.ZeroFingerprint,
		Logging:       settings.LogMessagesByDefault(),
		AcceptFiles:   settings.AcceptFilesByDefault(),
		Notifications: settings.ShowNotificationsByDefault(),
	}
	if err := db.AddContact(record); err != nil {
		return newError(Transient, "could not add contact: "+err.Error())
	}

	entry := keydb.Entry{
		PeerID:       account,
		TxMessageKey: txKey,
		RxMessageKey: txcrypto.CSPRNG(),
		TxHeaderKey:  txHek,
		RxHeaderKey:  txcrypto.CSPRNG(),
	}
	if err := kdb.Add(entry); err != nil {
		return newError(Transient, "could not add key entry: "+err.Error())
	}

	packet := wire.PSKTxInstallPacket(txKey, txHek, account, nick)
	if err := queues.Command.Put(ctx, packet); err != nil {
		return newError(Abort, "PSK generation aborted")
	}

	p.Notify("Successfully added " + nick + ".")
	return nil
}

// RxmLoadPSK enqueues a command telling RxM to load the PSK matching
// peerID from its own copy of the removable media. It is guarded against
// three conditions the source enforces before ever reaching the wire:
// traffic masking must be off, the selected window must name a single
// contact rather than a group, and that contact's current key must not
// already have come from an X25519 exchange (signalled by a non-zero
// TxFingerprint) — reloading a PSK over an X25519 session would silently
// downgrade its forward secrecy.
func RxmLoadPSK(ctx context.Context, peerID string, isGroupWindow bool, settings Settings, queues Queues, db contact.DB) error {
	if settings.SessionTrafficMasking() {
		return newError(Disabled, "command is disabled during traffic masking")
	}
	if isGroupWindow {
		return newError(InvalidInput, "group is selected")
	}

	record, ok := db.Get(peerID)
	if !ok {
		return newError(InvalidInput, "unknown contact")
	}
	if record.TxFingerprint != contact.ZeroFingerprint {
		return newError(InvalidInput, "current key was exchanged with X25519")
	}

	packet := wire.PSKRxLoadPacket(peerID)
	if err := queues.Command.Put(ctx, packet); err != nil {
		return newError(Abort, "PSK load aborted")
	}
	return nil
}
