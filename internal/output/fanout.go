// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package output delivers encoded NMEA 0183 sentences to every configured
// destination.
package output

import (
	"errors"
	"log"
	"sync"

	"github.com/relabs-tech/n2kconvert/internal/nav"
	"github.com/relabs-tech/n2kconvert/internal/nmea0183"
)

// Dest is one place sentences are written to. Send receives a full line
// including the trailing CRLF.
type Dest interface {
	Send(line []byte) error
	Close() error
}

type namedDest struct {
	name string
	dest Dest
}

// Fanout is a nav.Sink that encodes each record once and hands the line to
// every destination. A failing destination is logged and skipped.
type Fanout struct {
	enc nmea0183.Encoder

	mu    sync.Mutex
	dests []namedDest
	sent  uint64
	fails uint64
}

// NewFanout returns a Fanout with no destinations.
func NewFanout(enc nmea0183.Encoder) *Fanout {
	return &Fanout{enc: enc}
}

// Add registers a destination under a name used in log messages.
func (f *Fanout) Add(name string, d Dest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dests = append(f.dests, namedDest{name: name, dest: d})
}

// Emit implements nav.Sink.
func (f *Fanout) Emit(r nav.Record) {
	s, err := f.enc.Encode(r)
	if err != nil {
		log.Printf("output: encode %s: %v", r.Sentence(), err)
		return
	}
	line := []byte(s + "\r\n")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent++
	for _, d := range f.dests {
		if err := d.dest.Send(line); err != nil {
			f.fails++
			log.Printf("output: %s write error: %v", d.name, err)
		}
	}
}

// Stats returns the number of encoded sentences and failed writes.
func (f *Fanout) Stats() (sent, fails uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent, f.fails
}

// Close closes every destination.
func (f *Fanout) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var errs []error
	for _, d := range f.dests {
		if err := d.dest.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	f.dests = nil
	return errors.Join(errs...)
}
