// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command txcore is a demonstration CLI driving the key-establishment
// engines in package kx: local-key delivery to RxM, X25519 contact
// exchange, and pre-shared-key generation/loading. It wires the engines
// to in-memory contact/key databases and a terminal Prompter; a real
// deployment would replace those with persistent stores and the rest of
// the TxM/RxM split this module does not implement.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/companyzero/txcore/contact"
	"github.com/companyzero/txcore/keydb"
	"github.com/companyzero/txcore/kx"
	"github.com/companyzero/txcore/queue"
	"github.com/companyzero/txcore/txlog"
	"github.com/companyzero/txcore/ui"
	"github.com/companyzero/txcore/wire"
)

const (
	subsystemNH = iota
	subsystemCommand
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "txcore",
	Short: "Transmitter-side key-establishment engines",
}

// app bundles everything a kx engine needs, built once in
// cobra.OnInitialize and shared by every subcommand. The NH and Command
// drain loops run under an errgroup so a single cancel from shutdown
// stops both and Wait reports whichever, if either, returned an error.
type app struct {
	cfg    *config
	log    *txlog.Logger
	queues kx.Queues
	db     contact.DB
	kdb    keydb.DB
	ui     ui.Prompter

	cancel context.CancelFunc
	group  *errgroup.Group
}

var theApp *app

func buildApp() (*app, error) {
	cfg, err := loadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loadConfig: %v", err)
	}
	if err := os.MkdirAll(cfg.Root, 0700); err != nil {
		return nil, err
	}

	logger, err := txlog.New(cfg.LogFile, cfg.TimeFormat)
	if err != nil {
		return nil, fmt.Errorf("txlog.New: %v", err)
	}
	if cfg.Debug {
		logger.EnableDebug()
	}
	logger.Register(subsystemNH, "[NH ] ")
	logger.Register(subsystemCommand, "[CMD] ")

	queues := kx.Queues{
		NH:      queue.New[[]byte](int(wire.NHPacketQueue), 16),
		Command: queue.New[[]byte](int(wire.CommandPacketQueue), 16),
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)

	a := &app{
		cfg:    cfg,
		log:    logger,
		queues: queues,
		db:     contact.NewMemDB(),
		kdb:    keydb.NewMemDB(),
		ui:     ui.NewTerminal(),
		cancel: cancel,
		group:  g,
	}

	g.Go(func() error { return a.drainNH(gctx) })
	g.Go(func() error { return a.drainCommand(gctx) })

	return a, nil
}

// shutdown stops the drain loops and waits for them to exit, surfacing
// anything other than context cancellation.
func (a *app) shutdown() error {
	a.cancel()
	if err := a.group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// drainNH logs every packet that would have gone out over the network
// host, standing in for the real NH transport this module doesn't own.
func (a *app) drainNH(ctx context.Context) error {
	for {
		pkt, err := a.queues.NH.Get(ctx)
		if err != nil {
			return err
		}
		a.log.Info(subsystemNH, "packet header=0x%02x len=%d", pkt[0], len(pkt))
	}
}

// drainCommand logs every packet that would have gone to the local RxM
// over the serial link.
func (a *app) drainCommand(ctx context.Context) error {
	for {
		pkt, err := a.queues.Command.Get(ctx)
		if err != nil {
			return err
		}
		a.log.Info(subsystemCommand, "packet header=0x%02x len=%d", pkt[0], len(pkt))
	}
}

var localKeyCmd = &cobra.Command{
	Use:   "local-key",
	Short: "Provision a new TxM<->RxM local key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return kx.NewLocalKey(cmd.Context(), theApp.cfg, theApp.queues, theApp.db, theApp.kdb, theApp.ui)
	},
}

var x25519Cmd = &cobra.Command{
	Use:   "x25519 <account> <user> <nick>",
	Short: "Start an X25519 key exchange with a contact",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return kx.StartKeyExchange(cmd.Context(), args[0], args[1], args[2], theApp.cfg, theApp.queues, theApp.db, theApp.kdb, theApp.ui)
	},
}

var pskCreateCmd = &cobra.Command{
	Use:   "psk-create <account> <user> <nick>",
	Short: "Generate a pre-shared key for manual delivery",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return kx.CreatePreSharedKey(cmd.Context(), args[0], args[1], args[2], theApp.cfg, theApp.queues, theApp.db, theApp.kdb, theApp.ui)
	},
}

var pskLoadGroup bool

var pskLoadCmd = &cobra.Command{
	Use:   "psk-load <peer-id>",
	Short: "Tell RxM to load a contact's pre-shared key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return kx.RxmLoadPSK(cmd.Context(), args[0], pskLoadGroup, theApp.cfg, theApp.queues, theApp.db)
	},
}

func init() {
	defaultRoot, err := defaultRootPath()
	if err != nil {
		defaultRoot = "."
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "cfg", filepath.Join(defaultRoot, "txcore.ini"), "config file")

	pskLoadCmd.Flags().BoolVar(&pskLoadGroup, "group", false, "selected window is a group window")

	rootCmd.AddCommand(localKeyCmd, x25519Cmd, pskCreateCmd, pskLoadCmd)

	cobra.OnInitialize(func() {
		a, err := buildApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "txcore: %v\n", err)
			os.Exit(1)
		}
		theApp = a
	})
}

func main() {
	err := rootCmd.Execute()

	if theApp != nil {
		if shutdownErr := theApp.shutdown(); shutdownErr != nil {
			fmt.Fprintf(os.Stderr, "txcore: %v\n", shutdownErr)
		}
	}

	if err != nil {
		os.Exit(1)
	}
}
