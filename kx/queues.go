// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kx

import "github.com/companyzero/txcore/queue"

// Queues bundles the two outbound queues a key-exchange engine writes to.
// A successful run also produces a KeyDBEntry, but that is applied to the
// Key DB directly through the keydb.DB collaborator, the same way its
// ContactRecord is applied to the Contact DB directly — both database
// writes must be visible before the Command packet below is emitted, and
// a queue hop in between would only reintroduce the ordering race that
// guarantee rules out. The Key-Management, Message, and File queues the
// wider system also has are not part of this bundle: no key-exchange
// operation publishes to them.
type Queues struct {
	NH      *queue.Queue[[]byte]
	Command *queue.Queue[[]byte]
}
