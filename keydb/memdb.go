// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keydb

import (
	"errors"
	"sync"
)

// ErrDuplicate is returned by MemDB.Add when PeerID already has an entry.
var ErrDuplicate = errors.New("keydb: duplicate peer id")

// MemDB is a minimal in-memory DB used by tests and cmd/txcore's demo
// wiring. A real deployment persists Entry to disk out of this module's
// scope.
type MemDB struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemDB returns an empty MemDB.
func NewMemDB() *MemDB {
	return &MemDB{entries: make(map[string]Entry)}
}

// Add implements DB.
func (m *MemDB) Add(e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[e.PeerID]; exists {
		return ErrDuplicate
	}
	m.entries[e.PeerID] = e
	return nil
}

// Get returns the entry for peerID, for tests that want to inspect what
// was written.
func (m *MemDB) Get(peerID string) (Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[peerID]
	return e, ok
}
