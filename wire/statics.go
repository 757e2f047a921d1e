// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire defines the stable wire constants and packet formats shared
// between the key-establishment engines and their NH/Command queues: one-
// byte packet headers, the field separator used inside composite packets,
// and the queue tag constants.
package wire

// Packet headers. Each is a single stable byte identifying the packet type
// that follows it on the NH or Command queue.
const (
	LocalKeyPacketHeader    byte = 0x01
	PublicKeyPacketHeader   byte = 0x02
	KeyExX25519Header       byte = 0x03
	KeyExPSKTxHeader        byte = 0x04
	KeyExPSKRxHeader        byte = 0x05
	LocalKeyInstalledHeader byte = 0x06
)

// USByte is the ASCII Unit Separator (0x1F), used as the field separator
// inside composite packets that carry two UTF-8 strings back to back.
const USByte byte = 0x1F

// QueueTag names the outbound queues of the wider split-endpoint system.
// A key-exchange engine only ever writes to NHPacketQueue and
// CommandPacketQueue: its KeyDBEntry is applied to the Key DB directly,
// the same way its ContactRecord is applied to the Contact DB directly,
// rather than queued. KeyManagementQueue, MessageQueue, and FileQueue are
// listed for completeness of the system's queue layout; no key-exchange
// operation publishes to them.
type QueueTag int

const (
	NHPacketQueue QueueTag = iota
	CommandPacketQueue
	KeyManagementQueue
	MessageQueue
	FileQueue
)

// FingerprintLen is the length in bytes of a Fingerprint, matching
// secret.Size; kept as a distinct named constant because a fingerprint and
// a key are not interchangeable even though both happen to be 32 bytes.
const FingerprintLen = 32

// LocalID is the reserved peer identifier for the TxM<->RxM local
// pseudo-contact. It can never collide with a real remote account because
// account identifiers are validated upstream to disallow it.
const LocalID = "LOCAL_ID"

// Resend is the literal sentinel a user types to request retransmission of
// the last packet in a confirmation loop, instead of entering a code or a
// key.
const Resend = "RESEND"
