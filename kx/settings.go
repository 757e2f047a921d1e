// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kx

// Settings is the narrow view of the program-wide settings the engines
// consult. It is satisfied by cmd/txcore's config type; tests use a
// plain struct literal.
type Settings interface {
	// SessionTrafficMasking reports whether traffic masking is
	// currently active. While true, NewLocalKey refuses to run: a
	// command sent during masking would stand out from the cover
	// traffic. This is the only condition that disables it — see
	// DESIGN.md's resolution of the source's accidental
	// "contact_list.has_local_contact" truthiness bug.
	SessionTrafficMasking() bool

	// LogMessagesByDefault, AcceptFilesByDefault, and
	// ShowNotificationsByDefault seed the corresponding flags on a new
	// ContactRecord created by the X25519 or PSK engine.
	LogMessagesByDefault() bool
	AcceptFilesByDefault() bool
	ShowNotificationsByDefault() bool
}

// StaticSettings is a plain-struct Settings implementation for tests and
// simple embedding.
type StaticSettings struct {
	Masking           bool
	LogByDefault      bool
	AcceptFiles       bool
	ShowNotifications bool
}

func (s StaticSettings) SessionTrafficMasking() bool      { return s.Masking }
func (s StaticSettings) LogMessagesByDefault() bool       { return s.LogByDefault }
func (s StaticSettings) AcceptFilesByDefault() bool       { return s.AcceptFiles }
func (s StaticSettings) ShowNotificationsByDefault() bool { return s.ShowNotifications }
