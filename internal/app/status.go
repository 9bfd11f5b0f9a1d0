// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"sync"
	"time"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

// Counters tracks input and output traffic since startup.
type Counters struct {
	PrimaryFrames      uint64 `json:"primary_frames"`
	PrimaryUnsupported uint64 `json:"primary_unsupported"`
	PrimaryErrors      uint64 `json:"primary_errors"`
	AuxSentences       uint64 `json:"aux_sentences"`
	AuxIgnored         uint64 `json:"aux_ignored"`
	AuxErrors          uint64 `json:"aux_errors"`
	SentencesOut       uint64 `json:"sentences_out"`
	WriteErrors        uint64 `json:"write_errors"`
}

// StatusReport is what the web server hands out.
type StatusReport struct {
	Started  time.Time    `json:"started"`
	Snapshot nav.Snapshot `json:"snapshot"`
	Counters Counters     `json:"counters"`
}

// Status holds the latest engine snapshot. The event loop writes it, the
// web server reads it.
type Status struct {
	mu       sync.RWMutex
	started  time.Time
	snap     nav.Snapshot
	haveSnap bool
	counters Counters
}

func NewStatus() *Status {
	return &Status{started: time.Now()}
}

func (s *Status) setSnapshot(snap nav.Snapshot) {
	s.mu.Lock()
	s.snap = snap
	s.haveSnap = true
	s.mu.Unlock()
}

func (s *Status) count(f func(c *Counters)) {
	s.mu.Lock()
	f(&s.counters)
	s.mu.Unlock()
}

// Report returns a copy of the current status. ok is false until the first
// snapshot has been taken.
func (s *Status) Report() (r StatusReport, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return StatusReport{
		Started:  s.started,
		Snapshot: s.snap,
		Counters: s.counters,
	}, s.haveSnap
}
