// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keydb defines the KeyDBEntry record a key-exchange engine
// writes to the Key DB at the end of a successful run, and the narrow
// collaborator interface that accepts it. The persistent key database
// itself — disk-backed, shared with the rest of the transmitter — lives
// outside this module.
package keydb

import "github.com/companyzero/txcore/secret"

// Entry is the record an engine writes to the Key DB on success. On the
// transmitter, RxMessageKey and RxHeaderKey are always
// freshly drawn random bytes rather than the real Rx-direction keys: those
// keys are never used on TxM, and filling the slots with random material
// (rather than, say, leaving them zeroed) means an accidental use of the
// wrong direction cannot decrypt anything and cannot be distinguished from
// ordinary key material by an observer of the database.
type Entry struct {
	PeerID        string
	TxMessageKey  secret.Secret
	RxMessageKey  secret.Secret
	TxHeaderKey   secret.Secret
	RxHeaderKey   secret.Secret
}

// DB is the narrow collaborator interface an engine needs from the
// persistent key database: add one entry, keyed by peer ID.
type DB interface {
	Add(e Entry) error
}
