// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ui

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/companyzero/txcore/b58"
	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/secret"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	keyStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	fpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Terminal is the default Prompter, driving huh forms for input and
// lipgloss for styled, non-secret-leaking display of keys and
// fingerprints.
type Terminal struct{}

// NewTerminal returns a Terminal Prompter.
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) ShowLocalKeyDecryptionKey(ctx context.Context, kek secret.Secret) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	encoded := b58.Encode(b58.VersionLocalKey, [32]byte(kek))

	fmt.Println(headingStyle.Render("Local key setup"))
	fmt.Println("Type this on RxM as the local key decryption key:")
	fmt.Println(keyStyle.Render(encoded))

	var code string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Confirmation code (or 'resend')").
			Value(&code),
	)).Run()
	if err != nil {
		return "", err
	}
	return code, nil
}

func (t *Terminal) NHBypass(starting bool) {
	if starting {
		fmt.Println(warnStyle.Render("NH bypass: sending local key packet directly, bypassing the network host"))
	} else {
		fmt.Println(warnStyle.Render("NH bypass complete"))
	}
}

func (t *Terminal) AskPublicKey(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var key string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Contact's public key (Base58-check, or 'resend')").
			Value(&key),
	)).Run()
	if err != nil {
		return "", err
	}
	return key, nil
}

func (t *Terminal) VerifyFingerprints(ctx context.Context, tx, rx contact.Fingerprint) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Print("\033[H\033[2J") // clear_screen

	fmt.Println(headingStyle.Render("Verify fingerprints over an independent end-to-end encrypted voice channel."))
	fmt.Println(fpStyle.Render("         Your fingerprint (you read)         "))
	fmt.Println(fpStyle.Render(hex.EncodeToString(tx[:])))
	fmt.Println(fpStyle.Render("Purported fingerprint for contact (they read)"))
	fmt.Println(fpStyle.Render(hex.EncodeToString(rx[:])))

	var ok bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Is the contact's fingerprint correct?").
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	)).Run()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (t *Terminal) AskPassword(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var password string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(prompt).
			EchoMode(huh.EchoModePassword).
			Value(&password),
	)).Run()
	if err != nil {
		return "", err
	}
	return password, nil
}

func (t *Terminal) AskDirectory(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var dir string
	err := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(prompt).
			Value(&dir),
	)).Run()
	if err != nil {
		return "", err
	}
	return dir, nil
}

func (t *Terminal) Notify(message string) {
	fmt.Fprintln(os.Stdout, headingStyle.Render(message))
}
