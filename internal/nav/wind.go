// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

import "math"

// TrueWind derives true wind direction and speed from apparent wind and the
// vessel's motion. Vectors are in north/east components. Every input must be
// available, otherwise both results are not available.
func TrueWind(trueHeading, apparentAngle, apparentSpeed, cog, sog Value) (direction, speed Value) {
	if !trueHeading.ok || !apparentAngle.ok || !apparentSpeed.ok || !cog.ok || !sog.ok {
		return NA(), NA()
	}
	bearing := trueHeading.v + apparentAngle.v
	appN := apparentSpeed.v * math.Cos(bearing)
	appE := apparentSpeed.v * math.Sin(bearing)
	boatN := sog.v * math.Cos(cog.v)
	boatE := sog.v * math.Sin(cog.v)

	n := appN - boatN
	e := appE - boatE
	return Of(WrapAngle(math.Atan2(e, n))), Of(math.Hypot(n, e))
}
