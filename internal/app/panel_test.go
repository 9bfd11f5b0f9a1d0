// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"testing"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

func TestPanelLines(t *testing.T) {
	snap := nav.Snapshot{
		HeadingTrue:       nav.Of(nav.DegToRad(85.7)),
		HeadingMagnetic:   nav.Of(nav.DegToRad(98.3)),
		COGTrue:           nav.Of(nav.DegToRad(5)),
		SOG:               nav.Of(2.572),
		WindDirectionTrue: nav.NA(),
		WindSpeedTrue:     nav.NA(),
		Latitude:          nav.Of(47.60621),
		Longitude:         nav.Of(-122.33207),
	}
	want := []string{
		"HDG 086T 098M",
		"COG 005 SOG  5.0",
		"TWD --- TWS --.-",
		"47.606N 122.332W",
	}

	got := PanelLines(snap, true)
	if len(got) != len(want) {
		t.Fatalf("lines=%q want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d=%q want %q", i, got[i], want[i])
		}
	}
}

func TestPanelLines_Waiting(t *testing.T) {
	got := PanelLines(nav.Snapshot{}, false)
	if len(got) != 2 || got[1] != "Waiting..." {
		t.Fatalf("lines=%q", got)
	}
}

func TestRenderPanel_DrawsPixels(t *testing.T) {
	img := RenderPanel(nav.Snapshot{}, false)
	lit := 0
	for _, p := range img.Pix {
		if p != 0 {
			lit++
		}
	}
	if lit == 0 {
		t.Fatalf("panel is blank")
	}
}
