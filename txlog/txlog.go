// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txlog is a small subsystem-tagged file logger, adapted from
// zkc's debug.Debug. Every key-exchange engine logs through here;
// none of them ever pass a secret.Secret or a raw key byte slice as a
// format argument, which this package does nothing to enforce beyond the
// type system — callers must simply never do it.
package txlog

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrDuplicateSubsystem is returned by Register when id is already taken.
var ErrDuplicateSubsystem = errors.New("txlog: duplicate subsystem")

// Logger writes prefixed, timestamped lines to a single log file, masked
// by an enable flag for debug-level output.
type Logger struct {
	mu         sync.Mutex
	filename   string
	format     string
	subsystems map[int]string
	debug      bool
}

// New opens (creating if necessary) filename for append, verifying it is
// writable before returning.
func New(filename, timeFormat string) (*Logger, error) {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}
	f.Close()

	return &Logger{
		filename:   filename,
		format:     timeFormat,
		subsystems: make(map[int]string),
	}, nil
}

// Register names subsystem id for use in subsequent log lines.
func (l *Logger) Register(id int, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, found := l.subsystems[id]; found {
		return ErrDuplicateSubsystem
	}
	l.subsystems[id] = name
	return nil
}

// EnableDebug turns on Dbg-level output.
func (l *Logger) EnableDebug() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = true
}

// Info logs an informational line.
func (l *Logger) Info(id int, format string, args ...interface{}) {
	l.log(id, "[INF] ", format, args...)
}

// Warn logs a warning line.
func (l *Logger) Warn(id int, format string, args ...interface{}) {
	l.log(id, "[WAR] ", format, args...)
}

// Error logs an error line.
func (l *Logger) Error(id int, format string, args ...interface{}) {
	l.log(id, "[ERR] ", format, args...)
}

// Dbg logs a debug line, only if EnableDebug was called.
func (l *Logger) Dbg(id int, format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.log(id, "[DBG] ", format, args...)
}

func (l *Logger) log(id int, prefix, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name, found := l.subsystems[id]
	if !found {
		name = "[UNK]"
	}

	f, err := os.OpenFile(l.filename, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "txlog: %v\n", err)
		return
	}
	defer f.Close()

	ts := time.Now().Format(l.format)
	fmt.Fprintf(f, ts+" "+name+prefix+format+"\n", args...)
}
