// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package contact defines the ContactRecord the key-exchange engines write
// on success, and the narrow DB collaborator interface they use to write
// it. The real contact database lives outside this module; this package
// only owns the shape engines depend on, passed in as an explicit
// collaborator rather than reached for as an ambient global.
package contact

import (
	"errors"

	"github.com/companyzero/txcore/wire"
)

// Fingerprint is a 32-byte derivative of a shared secret and a public key,
// rendered for human comparison by an external printer. The all-zero
// value means "no X25519 fingerprint exists" (PSK and local contacts).
type Fingerprint [wire.FingerprintLen]byte

// ZeroFingerprint is the sentinel meaning "no X25519 fingerprint exists".
var ZeroFingerprint Fingerprint

// Record is what an engine writes to the Contact DB at the end of a
// successful run.
type Record struct {
	Account       string
	User          string
	Nick          string
	TxFingerprint Fingerprint
	RxFingerprint Fingerprint
	Logging       bool
	AcceptFiles   bool
	Notifications bool
}

// ErrDuplicate is returned by an implementation of DB when Account already
// exists.
var ErrDuplicate = errors.New("contact: duplicate account")

// DB is the narrow collaborator interface an engine needs from the
// persistent contact database: add a record, and look one up again (used
// by the PSK reload guard to check whether a contact's current key came
// from X25519).
type DB interface {
	AddContact(r Record) error
	Get(account string) (Record, bool)
}
