// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/vaughan0/go-ini"
)

// ErrIniNotFound mirrors zkclient's sentinel for "key absent from this
// ini section", distinct from a real parse error.
var ErrIniNotFound = errors.New("not found")

// config holds everything cmd/txcore reads from its ini file. It
// implements kx.Settings directly so the engines can be driven from it
// without an adapter.
type config struct {
	Root       string
	LogFile    string
	TimeFormat string
	Debug      bool

	Masking           bool
	LogByDefault      bool
	AcceptFiles       bool
	ShowNotifications bool
}

func (c *config) SessionTrafficMasking() bool      { return c.Masking }
func (c *config) LogMessagesByDefault() bool       { return c.LogByDefault }
func (c *config) AcceptFilesByDefault() bool       { return c.AcceptFiles }
func (c *config) ShowNotificationsByDefault() bool { return c.ShowNotifications }

// defaultRootPath mirrors zkutil.DefaultClientRootPath, adapted to this
// program's own directory name.
func defaultRootPath() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("user.Current: %v", err)
	}
	return filepath.Join(usr.HomeDir, ".txcore"), nil
}

const defaultConfigFileContent = `; txcore configuration file
[default]
; root=~/.txcore

[log]
; logfile=~/.txcore/txcore.log
; timeformat=15:04:05
; debug=no

[session]
; masking=no
; logbydefault=no
; acceptfiles=no
; shownotifications=no
`

func loadConfig(filename string) (*config, error) {
	root, err := defaultRootPath()
	if err != nil {
		return nil, err
	}

	c := &config{
		Root:       root,
		LogFile:    filepath.Join(root, "txcore.log"),
		TimeFormat: "15:04:05",
	}

	fi, err := os.Stat(filename)
	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(filename), 0700); err != nil {
				return nil, err
			}
			if err := os.WriteFile(filename, []byte(defaultConfigFileContent), 0600); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	} else if fi.IsDir() {
		return nil, fmt.Errorf("not a valid configuration file: %v", filename)
	}

	cfg, err := ini.LoadFile(filename)
	if err != nil {
		return nil, err
	}

	if v, ok := cfg.Get("default", "root"); ok {
		expanded, err := homedir.Expand(v)
		if err != nil {
			return nil, err
		}
		c.Root = expanded
	}

	if v, ok := cfg.Get("log", "logfile"); ok {
		expanded, err := homedir.Expand(v)
		if err != nil {
			return nil, err
		}
		c.LogFile = expanded
	} else {
		c.LogFile = filepath.Join(c.Root, "txcore.log")
	}

	if v, ok := cfg.Get("log", "timeformat"); ok {
		c.TimeFormat = v
	}

	if err := iniBool(cfg, &c.Debug, "log", "debug"); err != nil && !errors.Is(err, ErrIniNotFound) {
		return nil, err
	}
	if err := iniBool(cfg, &c.Masking, "session", "masking"); err != nil && !errors.Is(err, ErrIniNotFound) {
		return nil, err
	}
	if err := iniBool(cfg, &c.LogByDefault, "session", "logbydefault"); err != nil && !errors.Is(err, ErrIniNotFound) {
		return nil, err
	}
	if err := iniBool(cfg, &c.AcceptFiles, "session", "acceptfiles"); err != nil && !errors.Is(err, ErrIniNotFound) {
		return nil, err
	}
	if err := iniBool(cfg, &c.ShowNotifications, "session", "shownotifications"); err != nil && !errors.Is(err, ErrIniNotFound) {
		return nil, err
	}

	return c, nil
}

func iniBool(cfg ini.File, p *bool, section, key string) error {
	v, ok := cfg.Get(section, key)
	if !ok {
		return ErrIniNotFound
	}
	switch strings.ToLower(v) {
	case "yes":
		*p = true
		return nil
	case "no":
		*p = false
		return nil
	default:
		return fmt.Errorf("[%v]%v must be yes or no", section, key)
	}
}
