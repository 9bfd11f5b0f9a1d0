// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

import "time"

type headingState struct {
	magSensor   Value
	magnetic    Value
	trueHeading Value
	trueSensor  Value
	variation   Value
	deviation   Value
	lastMag     time.Time
	lastTrue    time.Time
}

type navigationState struct {
	latitude   Value
	longitude  Value
	altitude   Value
	lastUpdate time.Time
}

// courseState keeps true COG only; magnetic COG is derived on demand.
type courseState struct {
	cog        Value
	sog        Value
	lastUpdate time.Time
}

type windState struct {
	speedApparent Value
	angleApparent Value
	speedTrue     Value
	dirTrue       Value
	lastUpdate    time.Time
}

type clockState struct {
	daysSince1970        Value
	secondsSinceMidnight Value
}

type fixState struct {
	method     GNSSMethod
	satellites Value
	hdop       Value
}

// store is the latest value of every tracked quantity plus the time each
// group was last refreshed. Everything starts not available.
type store struct {
	heading     headingState
	nav         navigationState
	course      courseState
	wind        windState
	clock       clockState
	fix         fixState
	depthOffset Value
	nextRMC     time.Time
}

func newStore(now time.Time, depthOffset Value) store {
	return store{
		heading:     headingState{lastMag: now, lastTrue: now},
		nav:         navigationState{lastUpdate: now},
		course:      courseState{lastUpdate: now},
		wind:        windState{lastUpdate: now},
		depthOffset: depthOffset,
		nextRMC:     now.Add(RMCPeriod),
	}
}

// magneticCOG derives magnetic course from true course and variation.
func (s *store) magneticCOG() Value {
	cog, ok := s.course.cog.Get()
	if !ok {
		return NA()
	}
	v, ok := s.heading.variation.Get()
	if !ok {
		return NA()
	}
	return Of(WrapAngle(cog - v))
}

// age returns how long ago last was, relative to now.
func age(now, last time.Time) time.Duration {
	return now.Sub(last)
}
