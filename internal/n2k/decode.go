// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package n2k decodes NMEA 2000 records that a bus gateway has already
// turned into JSON, in the layout of the canboat analyzer:
//
//	{"timestamp":"...","prio":2,"src":1,"dst":255,"pgn":127250,
//	 "fields":{"Heading":183.4,"Deviation":0.0,"Variation":7.5,"Reference":"Magnetic"}}
//
// Angles are in degrees, speeds in m/s, distances in metres and temperatures
// in Kelvin. Missing or null fields decode as not available.
package n2k

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

var (
	ErrUnsupportedPGN = errors.New("n2k: unsupported pgn")
	ErrMalformed      = errors.New("n2k: malformed record")
)

// SupportedPGNs lists the parameter groups Decode understands.
var SupportedPGNs = []uint32{
	nav.PGNHeading,
	nav.PGNVariation,
	nav.PGNBoatSpeed,
	nav.PGNWaterDepth,
	nav.PGNPosition,
	nav.PGNCOGSOG,
	nav.PGNGNSS,
	nav.PGNWind,
	nav.PGNEnvironmental,
}

// Decode turns one JSON record into a primary engine message.
func Decode(data []byte) (nav.PrimaryMessage, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	rec := gjson.ParseBytes(data)
	pgn := rec.Get("pgn")
	if pgn.Type != gjson.Number {
		return nil, fmt.Errorf("%w: missing pgn", ErrMalformed)
	}
	f := fields{rec.Get("fields")}

	switch uint32(pgn.Uint()) {
	case nav.PGNHeading:
		return nav.Heading{
			Heading:   f.angle("Heading"),
			Deviation: f.angle("Deviation"),
			Variation: f.angle("Variation"),
			Reference: f.headingReference("Reference"),
		}, nil
	case nav.PGNVariation:
		return nav.Variation{Variation: f.angle("Variation")}, nil
	case nav.PGNBoatSpeed:
		return nav.BoatSpeed{
			WaterReferenced:  f.number("Speed Water Referenced"),
			GroundReferenced: f.number("Speed Ground Referenced"),
		}, nil
	case nav.PGNWaterDepth:
		return nav.WaterDepth{
			DepthBelowTransducer: f.number("Depth"),
			Offset:               f.number("Offset"),
			Range:                f.number("Range"),
		}, nil
	case nav.PGNPosition:
		return nav.Position{
			Latitude:  f.number("Latitude"),
			Longitude: f.number("Longitude"),
		}, nil
	case nav.PGNCOGSOG:
		return nav.COGSOG{
			Reference: f.headingReference("COG Reference"),
			COG:       f.angle("COG"),
			SOG:       f.number("SOG"),
		}, nil
	case nav.PGNGNSS:
		return nav.GNSS{
			DaysSince1970:        f.days("Date"),
			SecondsSinceMidnight: f.seconds("Time"),
			Latitude:             f.number("Latitude"),
			Longitude:            f.number("Longitude"),
			Altitude:             f.number("Altitude"),
			Method:               f.gnssMethod("Method"),
			Satellites:           f.number("Number of SVs"),
			HDOP:                 f.number("HDOP"),
		}, nil
	case nav.PGNWind:
		return nav.Wind{
			Speed:     f.number("Wind Speed"),
			Angle:     f.angle("Wind Angle"),
			Reference: f.windReference("Reference"),
		}, nil
	case nav.PGNEnvironmental:
		return nav.Environmental{
			TempSource:  f.tempSource("Temperature Source"),
			Temperature: f.number("Temperature"),
			Humidity:    f.number("Humidity"),
			Pressure:    f.number("Atmospheric Pressure"),
		}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnsupportedPGN, pgn.Uint())
}

type fields struct{ r gjson.Result }

func (f fields) get(name string) gjson.Result {
	return f.r.Get(name)
}

func (f fields) number(name string) nav.Value {
	v := f.get(name)
	if v.Type != gjson.Number {
		return nav.NA()
	}
	return nav.Of(v.Float())
}

func (f fields) angle(name string) nav.Value {
	d, ok := f.number(name).Get()
	if !ok {
		return nav.NA()
	}
	return nav.Of(nav.DegToRad(d))
}

// enum returns the lookup name of an enumerated field, or its numeric code.
func (f fields) enum(name string) (string, int64, bool) {
	v := f.get(name)
	switch v.Type {
	case gjson.String:
		return strings.ToLower(v.String()), -1, true
	case gjson.Number:
		return "", v.Int(), true
	}
	return "", -1, false
}

func (f fields) headingReference(name string) nav.HeadingReference {
	s, code, ok := f.enum(name)
	switch {
	case !ok:
		return nav.ReferenceNA
	case s == "true" || (s == "" && code == 0):
		return nav.ReferenceTrue
	case s == "magnetic" || (s == "" && code == 1):
		return nav.ReferenceMagnetic
	case s == "error" || (s == "" && code == 2):
		return nav.ReferenceError
	}
	return nav.ReferenceNA
}

func (f fields) windReference(name string) nav.WindReference {
	s, code, ok := f.enum(name)
	if !ok {
		return nav.WindReference(-1)
	}
	if s == "" {
		return nav.WindReference(code)
	}
	switch {
	case s == "apparent":
		return nav.WindApparent
	case strings.Contains(s, "boat referenced"):
		return nav.WindTrueBoat
	case strings.Contains(s, "water referenced"):
		return nav.WindTrueWater
	case strings.HasPrefix(s, "magnetic"):
		return nav.WindMagneticNorth
	case strings.HasPrefix(s, "true"):
		return nav.WindTrueNorth
	}
	return nav.WindReference(-1)
}

var tempSources = map[string]nav.TempSource{
	"sea temperature":         nav.TempSeaTemperature,
	"outside temperature":     nav.TempOutsideTemperature,
	"inside temperature":      nav.TempInsideTemperature,
	"engine room temperature": nav.TempEngineRoomTemperature,
	"main cabin temperature":  nav.TempMainCabinTemperature,
}

func (f fields) tempSource(name string) nav.TempSource {
	s, code, ok := f.enum(name)
	if !ok {
		return nav.TempSource(-1)
	}
	if s == "" {
		return nav.TempSource(code)
	}
	if src, ok := tempSources[s]; ok {
		return src
	}
	return nav.TempSource(-1)
}

var gnssMethods = map[string]nav.GNSSMethod{
	"no gnss":           nav.GNSSNoFix,
	"gnss fix":          nav.GNSSFix,
	"dgnss fix":         nav.GNSSDGNSS,
	"precise gnss":      nav.GNSSPreciseGNSS,
	"rtk fixed integer": nav.GNSSRTKFixed,
	"rtk float":         nav.GNSSRTKFloat,
}

func (f fields) gnssMethod(name string) nav.GNSSMethod {
	s, code, ok := f.enum(name)
	if !ok {
		return nav.GNSSNoFix
	}
	if s == "" {
		return nav.GNSSMethod(code)
	}
	return gnssMethods[s]
}

var dateLayouts = []string{"2006.01.02", "2006-01-02"}

// days accepts "YYYY.MM.DD" or a number of days since 1970-01-01.
func (f fields) days(name string) nav.Value {
	v := f.get(name)
	switch v.Type {
	case gjson.Number:
		return nav.Of(v.Float())
	case gjson.String:
		for _, layout := range dateLayouts {
			if d, err := time.Parse(layout, v.String()); err == nil {
				return nav.Of(float64(d.Unix() / 86400))
			}
		}
	}
	return nav.NA()
}

// seconds accepts "hh:mm:ss[.fff]" or a number of seconds since midnight.
func (f fields) seconds(name string) nav.Value {
	v := f.get(name)
	switch v.Type {
	case gjson.Number:
		return nav.Of(v.Float())
	case gjson.String:
		t, err := time.Parse("15:04:05", v.String())
		if err != nil {
			return nav.NA()
		}
		midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return nav.Of(t.Sub(midnight).Seconds())
	}
	return nav.NA()
}
