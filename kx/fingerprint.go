// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kx

import (
	"context"

	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/ui"
)

// VerifyFingerprints is the human-mediated out-of-band authentication
// step required by the X25519 engine. It performs no cryptographic
// operation itself: its only contract is that a true return means the
// user asserted the two fingerprints are equal, having compared them over
// an independent end-to-end-encrypted channel (e.g. a voice call).
func VerifyFingerprints(ctx context.Context, p ui.Prompter, txFP, rxFP contact.Fingerprint) (bool, error) {
	return p.VerifyFingerprints(ctx, txFP, rxFP)
}
