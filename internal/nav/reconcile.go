// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

// Tick runs the periodic reconciler: emits the rate-limited RMC record and
// expires stale quantities. Expiry never emits anything by itself.
func (e *Engine) Tick() {
	now := e.now()
	s := &e.s

	if !now.Before(s.nextRMC) && s.nav.latitude.Valid() {
		e.emit(RMC{
			SecondsSinceMidnight: s.clock.secondsSinceMidnight,
			Latitude:             s.nav.latitude,
			Longitude:            s.nav.longitude,
			COG:                  s.course.cog,
			SOG:                  s.course.sog,
			DaysSince1970:        s.clock.daysSince1970,
			Variation:            s.heading.variation,
		})
		s.nextRMC = now.Add(RMCPeriod)
	}

	if age(now, s.heading.lastMag) >= HeadingTimeout {
		s.heading.magSensor = NA()
		s.heading.updateFromMagnetic()
	}
	if age(now, s.heading.lastTrue) >= HeadingTimeout {
		s.heading.trueSensor = NA()
		s.heading.updateFromTrue()
	}
	if age(now, s.course.lastUpdate) >= COGSOGTimeout {
		s.course.cog = NA()
		s.course.sog = NA()
	}
	if age(now, s.nav.lastUpdate) >= PositionTimeout {
		s.nav.latitude = NA()
		s.nav.longitude = NA()
	}
	if age(now, s.wind.lastUpdate) >= WindTimeout {
		s.wind = windState{lastUpdate: s.wind.lastUpdate}
	}
}
