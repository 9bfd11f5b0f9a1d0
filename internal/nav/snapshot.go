// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

import "time"

// Snapshot is a copy of the fusion store for status reporting.
type Snapshot struct {
	Time time.Time `json:"time"`

	HeadingMagneticSensor Value `json:"heading_magnetic_sensor"`
	HeadingMagnetic       Value `json:"heading_magnetic"`
	HeadingTrue           Value `json:"heading_true"`
	HeadingTrueSensor     Value `json:"heading_true_sensor"`
	Variation             Value `json:"variation"`
	Deviation             Value `json:"deviation"`

	Latitude  Value `json:"lat"`
	Longitude Value `json:"lon"`
	Altitude  Value `json:"alt"`

	COGTrue     Value `json:"cog_true"`
	COGMagnetic Value `json:"cog_magnetic"`
	SOG         Value `json:"sog"`

	WindSpeedApparent Value `json:"wind_speed_apparent"`
	WindAngleApparent Value `json:"wind_angle_apparent"`
	WindSpeedTrue     Value `json:"wind_speed_true"`
	WindDirectionTrue Value `json:"wind_direction_true"`

	DepthOffset          Value `json:"depth_offset"`
	DaysSince1970        Value `json:"days_since_1970"`
	SecondsSinceMidnight Value `json:"seconds_since_midnight"`

	GNSSMethod GNSSMethod `json:"gnss_method"`
	Satellites Value      `json:"satellites"`
	HDOP       Value      `json:"hdop"`

	Ages Ages `json:"ages"`
}

// Ages is the time since each group was last refreshed.
type Ages struct {
	HeadingMagnetic time.Duration `json:"heading_magnetic"`
	HeadingTrue     time.Duration `json:"heading_true"`
	Course          time.Duration `json:"course"`
	Position        time.Duration `json:"position"`
	Wind            time.Duration `json:"wind"`
}

// Snapshot copies the current store.
func (e *Engine) Snapshot() Snapshot {
	now := e.now()
	s := &e.s
	return Snapshot{
		Time: now,

		HeadingMagneticSensor: s.heading.magSensor,
		HeadingMagnetic:       s.heading.magnetic,
		HeadingTrue:           s.heading.trueHeading,
		HeadingTrueSensor:     s.heading.trueSensor,
		Variation:             s.heading.variation,
		Deviation:             s.heading.deviation,

		Latitude:  s.nav.latitude,
		Longitude: s.nav.longitude,
		Altitude:  s.nav.altitude,

		COGTrue:     s.course.cog,
		COGMagnetic: s.magneticCOG(),
		SOG:         s.course.sog,

		WindSpeedApparent: s.wind.speedApparent,
		WindAngleApparent: s.wind.angleApparent,
		WindSpeedTrue:     s.wind.speedTrue,
		WindDirectionTrue: s.wind.dirTrue,

		DepthOffset:          s.depthOffset,
		DaysSince1970:        s.clock.daysSince1970,
		SecondsSinceMidnight: s.clock.secondsSinceMidnight,

		GNSSMethod: s.fix.method,
		Satellites: s.fix.satellites,
		HDOP:       s.fix.hdop,

		Ages: Ages{
			HeadingMagnetic: age(now, s.heading.lastMag),
			HeadingTrue:     age(now, s.heading.lastTrue),
			Course:          age(now, s.course.lastUpdate),
			Position:        age(now, s.nav.lastUpdate),
			Wind:            age(now, s.wind.lastUpdate),
		},
	}
}
