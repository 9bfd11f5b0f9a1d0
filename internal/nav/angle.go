// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

import "math"

const twoPi = 2 * math.Pi

// WrapAngle normalizes an angle in radians into [0, 2π).
func WrapAngle(a float64) float64 {
	w := math.Mod(a, twoPi)
	if w < 0 {
		w += twoPi
	}
	// A tiny negative remainder rounds up to 2π when shifted.
	if w >= twoPi {
		w = 0
	}
	return w
}

// RadToDeg converts radians to degrees.
func RadToDeg(r float64) float64 { return r * 180.0 / math.Pi }

// DegToRad converts degrees to radians.
func DegToRad(d float64) float64 { return d * math.Pi / 180.0 }
