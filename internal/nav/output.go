// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

// Record is an output record ready to be encoded by a transport.
type Record interface {
	// Sentence returns the NMEA 0183 sentence type the record maps to.
	Sentence() string
}

// Sink receives output records. Emit must not block for long; the engine
// calls it inline from handlers and Tick.
type Sink interface {
	Emit(Record)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Record)

func (f SinkFunc) Emit(r Record) { f(r) }

// HDG is heading, deviation and variation (magnetic sensor reading).
type HDG struct {
	Heading   Value
	Deviation Value
	Variation Value
}

// HDT is true heading.
type HDT struct {
	Heading Value
}

// VHW is water speed and heading.
type VHW struct {
	TrueHeading     Value
	MagneticHeading Value
	WaterSpeed      Value
}

// DPT is depth with transducer offset.
type DPT struct {
	Depth  Value
	Offset Value
	Range  Value
}

// DBT is depth below transducer.
type DBT struct {
	Depth Value
}

// GLL is geographic position.
type GLL struct {
	SecondsSinceMidnight Value
	Latitude             Value
	Longitude            Value
}

// ZDA is time and date.
type ZDA struct {
	SecondsSinceMidnight Value
	DaysSince1970        Value
}

// VTG is course and speed over ground.
type VTG struct {
	TrueCourse     Value
	MagneticCourse Value
	Speed          Value
}

// MWV is wind speed and angle relative to the bow.
type MWV struct {
	Angle    Value
	Speed    Value
	Apparent bool
}

// MWD is true wind direction and speed.
type MWD struct {
	TrueDirection     Value
	MagneticDirection Value
	Speed             Value
}

// MTW is water temperature in degrees Celsius.
type MTW struct {
	Temperature Value
}

// RMC is the recommended minimum navigation record.
type RMC struct {
	SecondsSinceMidnight Value
	Latitude             Value
	Longitude            Value
	COG                  Value
	SOG                  Value
	DaysSince1970        Value
	Variation            Value
}

func (HDG) Sentence() string { return "HDG" }
func (HDT) Sentence() string { return "HDT" }
func (VHW) Sentence() string { return "VHW" }
func (DPT) Sentence() string { return "DPT" }
func (DBT) Sentence() string { return "DBT" }
func (GLL) Sentence() string { return "GLL" }
func (ZDA) Sentence() string { return "ZDA" }
func (VTG) Sentence() string { return "VTG" }
func (MWV) Sentence() string { return "MWV" }
func (MWD) Sentence() string { return "MWD" }
func (MTW) Sentence() string { return "MTW" }
func (RMC) Sentence() string { return "RMC" }
