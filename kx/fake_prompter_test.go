// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kx

import (
	"context"

	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/secret"
)

// fakePrompter is a scriptable ui.Prompter for tests. Each field is
// consumed in order as the corresponding method is called; a nil queue or
// err forces the next call to fail with errAborted, modelling a user
// interrupt.
type fakePrompter struct {
	localKeyCodes   []string
	publicKeys      []string
	fingerprintOKs  []bool
	passwords       []string
	directories     []string
	notifications   []string
	nhBypassStarted []bool

	abortAfter int // if > 0, return an error starting from this call index (1-based)
	callCount  int
}

var errAborted = context.Canceled

func (f *fakePrompter) nextAborts() bool {
	f.callCount++
	return f.abortAfter > 0 && f.callCount >= f.abortAfter
}

func (f *fakePrompter) ShowLocalKeyDecryptionKey(ctx context.Context, kek secret.Secret) (string, error) {
	if f.nextAborts() {
		return "", errAborted
	}
	code := f.localKeyCodes[0]
	f.localKeyCodes = f.localKeyCodes[1:]
	return code, nil
}

func (f *fakePrompter) NHBypass(starting bool) {
	f.nhBypassStarted = append(f.nhBypassStarted, starting)
}

func (f *fakePrompter) AskPublicKey(ctx context.Context) (string, error) {
	if f.nextAborts() {
		return "", errAborted
	}
	key := f.publicKeys[0]
	f.publicKeys = f.publicKeys[1:]
	return key, nil
}

func (f *fakePrompter) VerifyFingerprints(ctx context.Context, tx, rx contact.Fingerprint) (bool, error) {
	if f.nextAborts() {
		return false, errAborted
	}
	ok := f.fingerprintOKs[0]
	f.fingerprintOKs = f.fingerprintOKs[1:]
	return ok, nil
}

func (f *fakePrompter) AskPassword(ctx context.Context, prompt string) (string, error) {
	if f.nextAborts() {
		return "", errAborted
	}
	pw := f.passwords[0]
	f.passwords = f.passwords[1:]
	return pw, nil
}

func (f *fakePrompter) AskDirectory(ctx context.Context, prompt string) (string, error) {
	if f.nextAborts() {
		return "", errAborted
	}
	dir := f.directories[0]
	f.directories = f.directories[1:]
	return dir, nil
}

func (f *fakePrompter) Notify(message string) {
	f.notifications = append(f.notifications, message)
}
