// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package nav fuses navigation readings from a primary NMEA 2000 feed and an
// auxiliary NMEA 0183 feed into one store, derives the values that are not
// measured directly and emits NMEA 0183 output records.
//
// An Engine is not safe for concurrent use. Callers serialize HandlePrimary,
// HandleAuxiliary and Tick onto one goroutine.
package nav

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Timing of the periodic reconciler.
const (
	RMCPeriod         = 1000 * time.Millisecond
	HeadingTimeout    = 2000 * time.Millisecond
	COGSOGTimeout     = 2000 * time.Millisecond
	PositionTimeout   = 4000 * time.Millisecond
	WindTimeout       = 2000 * time.Millisecond
	DefaultTickPeriod = 100 * time.Millisecond
)

// Engine owns the fusion store and emits records to a Sink.
type Engine struct {
	sink Sink
	now  func() time.Time
	s    store
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now. The clock must be monotonic.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithDepthOffset sets the offset in metres added to the transducer offset
// of every depth reading.
func WithDepthOffset(metres Value) Option {
	return func(e *Engine) { e.s.depthOffset = metres }
}

// New creates an engine with every quantity not available.
func New(sink Sink, opts ...Option) *Engine {
	if sink == nil {
		sink = SinkFunc(func(Record) {})
	}
	e := &Engine{sink: sink, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	e.s = newStore(e.now(), e.s.depthOffset)
	return e
}

func (e *Engine) emit(r Record) { e.sink.Emit(r) }

// HandlePrimary applies one record from the primary bus feed. Exactly one
// handler runs per record; unknown record types are ignored.
func (e *Engine) HandlePrimary(m PrimaryMessage) {
	switch m := m.(type) {
	case Heading:
		e.handleHeading(m)
	case Variation:
		e.handleVariation(m)
	case BoatSpeed:
		e.handleBoatSpeed(m)
	case WaterDepth:
		e.handleDepth(m)
	case Position:
		e.handlePosition(m)
	case COGSOG:
		e.handleCOGSOG(m)
	case GNSS:
		e.handleGNSS(m)
	case Wind:
		e.handleWind(m)
	case Environmental:
		e.handleEnvironmental(m)
	}
}

// HandleAuxiliary applies one record from the auxiliary serial feed.
func (e *Engine) HandleAuxiliary(m AuxMessage) {
	switch m := m.(type) {
	case AuxHeading:
		e.handleMagneticHeading(m.Heading, m.Deviation, m.Variation)
	}
}

func (e *Engine) handleHeading(m Heading) {
	switch m.Reference {
	case ReferenceMagnetic:
		e.handleMagneticHeading(m.Heading, m.Deviation, m.Variation)
	case ReferenceTrue:
		e.handleTrueHeading(m.Heading)
	}
}

func (e *Engine) handleMagneticHeading(heading, deviation, variation Value) {
	if !anyValid(heading, deviation, variation) {
		return
	}
	h := &e.s.heading
	if heading.Valid() {
		h.magSensor = heading
		h.lastMag = e.now()
	}
	h.variation = keep(h.variation, variation)
	h.deviation = keep(h.deviation, deviation)
	h.updateFromMagnetic()

	if h.magSensor.Valid() {
		e.emit(HDG{Heading: h.magSensor, Deviation: h.deviation, Variation: h.variation})
	}
	if h.trueHeading.Valid() {
		e.emit(HDT{Heading: h.trueHeading})
	}
}

func (e *Engine) handleTrueHeading(heading Value) {
	if !heading.Valid() {
		return
	}
	h := &e.s.heading
	h.trueSensor = heading
	h.lastTrue = e.now()
	h.updateFromTrue()
	e.emit(HDT{Heading: h.trueHeading})
}

func (e *Engine) handleVariation(m Variation) {
	e.s.heading.variation = keep(e.s.heading.variation, m.Variation)
}

func (e *Engine) handleBoatSpeed(m BoatSpeed) {
	if !m.WaterReferenced.Valid() {
		return
	}
	e.emit(VHW{
		TrueHeading:     e.s.heading.trueHeading,
		MagneticHeading: e.s.heading.magnetic,
		WaterSpeed:      m.WaterReferenced,
	})
}

func (e *Engine) handleDepth(m WaterDepth) {
	if !m.DepthBelowTransducer.Valid() {
		return
	}
	offset := m.Offset
	if cfg, ok := e.s.depthOffset.Get(); ok {
		offset = Of(offset.Or(0) + cfg)
	}
	e.emit(DPT{Depth: m.DepthBelowTransducer, Offset: offset, Range: m.Range})
	e.emit(DBT{Depth: m.DepthBelowTransducer})
}

func (e *Engine) handlePosition(m Position) {
	if !m.Latitude.Valid() || !m.Longitude.Valid() {
		return
	}
	n := &e.s.nav
	n.latitude = m.Latitude
	n.longitude = m.Longitude
	n.lastUpdate = e.now()
	e.emit(GLL{
		SecondsSinceMidnight: e.s.clock.secondsSinceMidnight,
		Latitude:             n.latitude,
		Longitude:            n.longitude,
	})
}

func (e *Engine) handleGNSS(m GNSS) {
	if !anyValid(m.Latitude, m.Longitude, m.Altitude, m.DaysSince1970, m.SecondsSinceMidnight) {
		return
	}
	n := &e.s.nav
	if m.Latitude.Valid() && m.Longitude.Valid() {
		n.latitude = m.Latitude
		n.longitude = m.Longitude
		n.lastUpdate = e.now()
	}
	n.altitude = keep(n.altitude, m.Altitude)

	c := &e.s.clock
	c.daysSince1970 = keep(c.daysSince1970, m.DaysSince1970)
	c.secondsSinceMidnight = keep(c.secondsSinceMidnight, m.SecondsSinceMidnight)

	e.s.fix = fixState{method: m.Method, satellites: m.Satellites, hdop: m.HDOP}

	// The RMC composite goes out from Tick; time is sent right away.
	if c.secondsSinceMidnight.Valid() && c.daysSince1970.Valid() {
		e.emit(ZDA{SecondsSinceMidnight: c.secondsSinceMidnight, DaysSince1970: c.daysSince1970})
	}
}

func (e *Engine) handleCOGSOG(m COGSOG) {
	if !anyValid(m.COG, m.SOG) {
		return
	}
	c := &e.s.course
	variation := e.s.heading.variation
	var magnetic Value
	if m.Reference == ReferenceMagnetic {
		magnetic = m.COG
		c.cog = wrapped(m.COG, variation)
	} else {
		c.cog = m.COG
		magnetic = e.s.magneticCOG()
	}
	c.sog = m.SOG
	c.lastUpdate = e.now()
	e.emit(VTG{TrueCourse: c.cog, MagneticCourse: magnetic, Speed: c.sog})
}

func (e *Engine) handleWind(m Wind) {
	if m.Reference != WindApparent || !anyValid(m.Speed, m.Angle) {
		return
	}
	w := &e.s.wind
	w.speedApparent = m.Speed
	w.angleApparent = m.Angle
	w.lastUpdate = e.now()
	e.emit(MWV{Angle: w.angleApparent, Speed: w.speedApparent, Apparent: true})

	w.dirTrue, w.speedTrue = TrueWind(e.s.heading.trueHeading, w.angleApparent, w.speedApparent, e.s.course.cog, e.s.course.sog)
	if w.dirTrue.Valid() && w.speedTrue.Valid() {
		magnetic := NA()
		if v, ok := e.s.heading.variation.Get(); ok {
			magnetic = Of(WrapAngle(w.dirTrue.v - v))
		}
		e.emit(MWD{TrueDirection: w.dirTrue, MagneticDirection: magnetic, Speed: w.speedTrue})
	}
}

func (e *Engine) handleEnvironmental(m Environmental) {
	if m.TempSource != TempSeaTemperature {
		return
	}
	k, ok := m.Temperature.Get()
	if !ok {
		return
	}
	e.emit(MTW{Temperature: Of(KelvinToCelsius(k))})
}

// KelvinToCelsius converts an absolute temperature to degrees Celsius.
func KelvinToCelsius(k float64) float64 {
	t := physic.Temperature(k * float64(physic.Kelvin))
	return float64(t-physic.ZeroCelsius) / float64(physic.Celsius)
}
