// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/relabs-tech/n2kconvert/internal/n2k"
	"github.com/relabs-tech/n2kconvert/internal/nav"
	"github.com/relabs-tech/n2kconvert/internal/nmea0183"
)

// loop owns the engine. Every engine call happens on the goroutine running
// loop.run.
type loop struct {
	engine *nav.Engine
	status *Status

	// outputStats reports encoded sentences and failed writes. Optional.
	outputStats func() (sent, fails uint64)
}

// run serializes primary frames, auxiliary lines and ticks onto the engine
// until ctx is done or the primary channel is closed.
func (l *loop) run(ctx context.Context, primary <-chan []byte, aux <-chan string, tick <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-primary:
			if !ok {
				log.Printf("app: primary source closed")
				l.refresh()
				return nil
			}
			l.handlePrimary(frame)
		case line, ok := <-aux:
			if !ok {
				log.Printf("app: aux source closed")
				aux = nil
				continue
			}
			l.handleAux(line)
		case <-tick:
			l.engine.Tick()
			l.refresh()
		}
	}
}

func (l *loop) handlePrimary(frame []byte) {
	msg, err := n2k.Decode(frame)
	switch {
	case errors.Is(err, n2k.ErrUnsupportedPGN):
		l.status.count(func(c *Counters) { c.PrimaryUnsupported++ })
	case err != nil:
		log.Printf("app: primary decode error: %v", err)
		l.status.count(func(c *Counters) { c.PrimaryErrors++ })
	default:
		l.engine.HandlePrimary(msg)
		l.status.count(func(c *Counters) { c.PrimaryFrames++ })
	}
}

func (l *loop) handleAux(line string) {
	msg, err := nmea0183.ParseAux(line)
	switch {
	case errors.Is(err, nmea0183.ErrUnsupportedSentence):
		l.status.count(func(c *Counters) { c.AuxIgnored++ })
	case err != nil:
		log.Printf("app: aux parse error: %v (line: %q)", err, line)
		l.status.count(func(c *Counters) { c.AuxErrors++ })
	default:
		l.engine.HandleAuxiliary(msg)
		l.status.count(func(c *Counters) { c.AuxSentences++ })
	}
}

// refresh publishes output counters and then the snapshot, so a reader that
// sees the snapshot also sees current counters.
func (l *loop) refresh() {
	if l.outputStats != nil {
		sent, fails := l.outputStats()
		l.status.count(func(c *Counters) {
			c.SentencesOut = sent
			c.WriteErrors = fails
		})
	}
	l.status.setSnapshot(l.engine.Snapshot())
}
