// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kx

import (
	"context"

	"github.com/companyzero/txcore/b58"
	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/keydb"
	"github.com/companyzero/txcore/secret"
	"github.com/companyzero/txcore/txcrypto"
	"github.com/companyzero/txcore/ui"
	"github.com/companyzero/txcore/wire"
)

// StartKeyExchange runs the Tx-side X25519 key exchange with a contact.
// Both ends derive four session keys and two fingerprints from the same
// Diffie-Hellman shared secret, each domain-separated by a literal
// context tag and by whose public key is mixed in — so a party can never
// confuse its own derivation with its counterparty's even though both
// start from the same shared secret.
func StartKeyExchange(ctx context.Context, account, user, nick string, settings Settings, queues Queues, db contact.DB, kdb keydb.DB, p ui.Prompter) error {
	pair := txcrypto.GenerateX25519KeyPair()

	var rxPK secret.Secret
	for {
		packet := wire.PublicKeyPacket(pair.Public, user, account)
		if err := queues.NH.Put(ctx, packet); err != nil {
			return newError(Abort, "key exchange aborted")
		}

		input, err := p.AskPublicKey(ctx)
		if err != nil {
			return newError(Abort, "key exchange aborted")
		}
		if input == wire.Resend {
			continue
		}

		decoded, err := b58.Decode(input, b58.VersionPublicKey)
		if err != nil {
			p.Notify("Invalid public key. Type 'resend' to resend your own public key.")
			continue
		}
		rxPK = secret.Secret(decoded)
		break
	}

	if rxPK.IsZero() {
		p.Notify("Warning! Received a malicious public key from network. Aborting key exchange for your safety.")
		return newError(Adversarial, "zero public key")
	}

	dhSSK, err := txcrypto.X25519Shared(pair.Private, rxPK)
	if err != nil {
		p.Notify("Warning! Received a malicious public key from network. Aborting key exchange for your safety.")
		return newError(Adversarial, "zero public key")
	}

	txKey := txcrypto.HashChain(dhSSK.Bytes(), rxPK.Bytes(), []byte("message_key"))
	rxKey := txcrypto.HashChain(dhSSK.Bytes(), pair.Public.Bytes(), []byte("message_key"))
	txHek := txcrypto.HashChain(dhSSK.Bytes(), rxPK.Bytes(), []byte("header_key"))
	rxHek := txcrypto.HashChain(dhSSK.Bytes(), pair.Public.Bytes(), []byte("header_key"))
	txFP := txcrypto.HashChain(dhSSK.Bytes(), pair.Public.Bytes(), []byte("fingerprint"))
	rxFP := txcrypto.HashChain(dhSSK.Bytes(), rxPK.Bytes(), []byte("fingerprint"))

	ok, err := VerifyFingerprints(ctx, p, contact.Fingerprint(txFP.Bytes()), contact.Fingerprint(rxFP.Bytes()))
	if err != nil {
		return newError(Abort, "key exchange aborted")
	}
	if !ok {
		p.Notify("Warning! Possible man-in-the-middle attack detected. Aborting key exchange for your safety.")
		return newError(Adversarial, "fingerprint mismatch")
	}

	record := contact.Record{
		Account:       account,
		User:          user,
		Nick:          nick,
		TxFingerprint: contact.Fingerprint(txFP.Bytes()),
		RxFingerprint: contact.Fingerprint(rxFP.Bytes()),
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
		RxMessageKey: txcrypto.CSPRNG(), // unusable by design: prevents accidental use if ever read back.
		TxHeaderKey:  txHek,
		RxHeaderKey:  txcrypto.CSPRNG(),
	}
	if err := kdb.Add(entry); err != nil {
		return newError(Transient, "could not add key entry: "+err.Error())
	}

	packet := wire.X25519InstallPacket(txKey, txHek, rxKey, rxHek, account, nick)
	if err := queues.Command.Put(ctx, packet); err != nil {
		return newError(Abort, "key exchange aborted")
	}

	p.Notify("Successfully added " + nick + ".")
	return nil
}
