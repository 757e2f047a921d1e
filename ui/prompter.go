// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ui defines the narrow Prompter interface the key-exchange
// engines use for every human interaction, and a terminal implementation
// of it. The interactive input loop, window selection, and terminal
// output formatting are external collaborators; the engines never touch
// a terminal directly.
package ui

import (
	"context"

	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/secret"
)

// Prompter is everything a key-exchange engine needs from the outside
// world to talk to a human. All methods are blocking with cancellation on
// ctx: there are no timeouts on user input.
type Prompter interface {
	// ShowLocalKeyDecryptionKey displays kek (rendered as Base58-check)
	// so the user can transcribe it onto RxM, then prompts for a
	// confirmation code. The returned string is either the two lower-
	// case hex digits the user typed, or the literal wire.Resend.
	ShowLocalKeyDecryptionKey(ctx context.Context, kek secret.Secret) (string, error)

	// NHBypass signals the start (true) or stop (false) of the NH
	// bypass window during local-key setup.
	NHBypass(starting bool)

	// AskPublicKey prompts for a Base58-check-encoded 32-byte public
	// key, or the literal wire.Resend.
	AskPublicKey(ctx context.Context) (string, error)

	// VerifyFingerprints clears the screen, renders both fingerprints,
	// and asks a yes/no question over an out-of-band channel. Returning
	// true means the user asserted the fingerprints match.
	VerifyFingerprints(ctx context.Context, tx, rx contact.Fingerprint) (bool, error)

	// AskPassword obtains a password for PSK wrapping, with prompt as
	// context for what it's for.
	AskPassword(ctx context.Context, prompt string) (string, error)

	// AskDirectory prompts for a directory path to write a PSK file
	// into, with prompt as context (e.g. naming the recipient).
	AskDirectory(ctx context.Context, prompt string) (string, error)

	// Notify surfaces a short status message (e.g. "Successfully added
	// Alice.") that never contains secret material.
	Notify(message string)
}
