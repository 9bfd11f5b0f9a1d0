// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

import (
	"encoding/json"
	"math"
	"testing"
)

func TestWrapAngle_RangeAndIdempotent(t *testing.T) {
	inputs := []float64{0, 1, -1, math.Pi, twoPi, -twoPi, 3 * twoPi, -7.5, 100.25, -1e-17, 1e6, -1e6}
	for _, in := range inputs {
		w := WrapAngle(in)
		if w < 0 || w >= twoPi {
			t.Fatalf("WrapAngle(%v)=%v outside [0, 2π)", in, w)
		}
		if ww := WrapAngle(w); ww != w {
			t.Fatalf("WrapAngle not idempotent for %v: %v then %v", in, w, ww)
		}
	}
}

func TestValue_NAIsDistinctFromZero(t *testing.T) {
	if NA().Valid() {
		t.Fatalf("NA() is valid")
	}
	if !Of(0).Valid() {
		t.Fatalf("Of(0) is not valid")
	}
	if Of(math.NaN()).Valid() || Of(math.Inf(1)).Valid() {
		t.Fatalf("NaN/Inf must not be valid")
	}
	if got := NA().Or(7); got != 7 {
		t.Fatalf("Or=%v want 7", got)
	}
}

func TestValue_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A Value `json:"a"`
		B Value `json:"b"`
	}{A: Of(1.5), B: NA()})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(b) != `{"a":1.5,"b":null}` {
		t.Fatalf("json=%s", b)
	}

	var out struct {
		A Value `json:"a"`
		B Value `json:"b"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	requireValue(t, "a", out.A, 1.5)
	requireNA(t, "b", out.B)
}

func TestTrueWind_Cases(t *testing.T) {
	dir, speed := TrueWind(Of(0), Of(math.Pi/2), Of(10), Of(0), Of(5))
	requireValue(t, "speed", speed, math.Sqrt(125))
	requireValue(t, "dir", dir, WrapAngle(math.Atan2(10, -5)))

	// Stationary boat: true wind equals apparent wind rotated by heading.
	dir, speed = TrueWind(Of(1), Of(0.5), Of(8), Of(0), Of(0))
	requireValue(t, "speed", speed, 8)
	requireValue(t, "dir", dir, 1.5)

	dir, speed = TrueWind(NA(), Of(0.5), Of(8), Of(0), Of(0))
	requireNA(t, "dir", dir)
	requireNA(t, "speed", speed)
}

func TestKelvinToCelsius(t *testing.T) {
	if got := KelvinToCelsius(273.15); math.Abs(got) > 1e-6 {
		t.Fatalf("KelvinToCelsius(273.15)=%v want 0", got)
	}
	if got := KelvinToCelsius(300.65); math.Abs(got-27.5) > 1e-6 {
		t.Fatalf("KelvinToCelsius(300.65)=%v want 27.5", got)
	}
}
