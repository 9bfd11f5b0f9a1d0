// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

// NMEA 2000 parameter group numbers handled by the engine.
const (
	PGNHeading       uint32 = 127250
	PGNVariation     uint32 = 127258
	PGNBoatSpeed     uint32 = 128259
	PGNWaterDepth    uint32 = 128267
	PGNPosition      uint32 = 129025
	PGNCOGSOG        uint32 = 129026
	PGNGNSS          uint32 = 129029
	PGNWind          uint32 = 130306
	PGNEnvironmental uint32 = 130311
)

// HeadingReference tells whether an angle is relative to true or magnetic north.
type HeadingReference int

const (
	ReferenceTrue HeadingReference = iota
	ReferenceMagnetic
	ReferenceError
	ReferenceNA
)

// WindReference is the reference frame of a wind reading.
type WindReference int

const (
	WindTrueNorth WindReference = iota
	WindMagneticNorth
	WindApparent
	WindTrueBoat
	WindTrueWater
)

// TempSource identifies what an environmental temperature measures.
type TempSource int

const (
	TempSeaTemperature TempSource = iota
	TempOutsideTemperature
	TempInsideTemperature
	TempEngineRoomTemperature
	TempMainCabinTemperature
)

// GNSSMethod is the fix method reported by a GNSS receiver.
type GNSSMethod int

const (
	GNSSNoFix GNSSMethod = iota
	GNSSFix
	GNSSDGNSS
	GNSSPreciseGNSS
	GNSSRTKFixed
	GNSSRTKFloat
)

// PrimaryMessage is a decoded record from the primary bus feed.
type PrimaryMessage interface {
	PGN() uint32
}

// AuxMessage is a decoded record from the auxiliary serial feed.
type AuxMessage interface {
	auxiliary()
}

// Heading is a vessel heading reading. Angles in radians.
type Heading struct {
	Heading   Value
	Deviation Value
	Variation Value
	Reference HeadingReference
}

// Variation is a magnetic variation reading in radians.
type Variation struct {
	Variation Value
}

// BoatSpeed carries speed through water and over ground in m/s.
type BoatSpeed struct {
	WaterReferenced  Value
	GroundReferenced Value
}

// WaterDepth is a depth reading in metres. Offset is the distance from the
// transducer to the surface (positive) or keel (negative).
type WaterDepth struct {
	DepthBelowTransducer Value
	Offset               Value
	Range                Value
}

// Position is a rapid latitude/longitude update in decimal degrees.
type Position struct {
	Latitude  Value
	Longitude Value
}

// COGSOG is a rapid course and speed over ground update.
type COGSOG struct {
	Reference HeadingReference
	COG       Value
	SOG       Value
}

// GNSS is a full position fix with date and time.
type GNSS struct {
	DaysSince1970        Value
	SecondsSinceMidnight Value
	Latitude             Value
	Longitude            Value
	Altitude             Value
	Method               GNSSMethod
	Satellites           Value
	HDOP                 Value
}

// Wind is a wind speed (m/s) and angle (radians) reading.
type Wind struct {
	Speed     Value
	Angle     Value
	Reference WindReference
}

// Environmental carries temperature (Kelvin), humidity (%) and pressure (Pa).
type Environmental struct {
	TempSource  TempSource
	Temperature Value
	Humidity    Value
	Pressure    Value
}

func (Heading) PGN() uint32       { return PGNHeading }
func (Variation) PGN() uint32     { return PGNVariation }
func (BoatSpeed) PGN() uint32     { return PGNBoatSpeed }
func (WaterDepth) PGN() uint32    { return PGNWaterDepth }
func (Position) PGN() uint32      { return PGNPosition }
func (COGSOG) PGN() uint32        { return PGNCOGSOG }
func (GNSS) PGN() uint32          { return PGNGNSS }
func (Wind) PGN() uint32          { return PGNWind }
func (Environmental) PGN() uint32 { return PGNEnvironmental }

// AuxHeading is a magnetic heading sentence (HDG) from the auxiliary feed.
type AuxHeading struct {
	Heading   Value
	Deviation Value
	Variation Value
}

func (AuxHeading) auxiliary() {}
