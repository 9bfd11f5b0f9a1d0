// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package nmea0183 encodes engine output records as NMEA 0183 sentences and
// decodes the sentences accepted on the auxiliary input.
package nmea0183

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

// DefaultTalker is the integrated instrumentation talker ID.
const DefaultTalker = "II"

const (
	msToKnots = 3600.0 / 1852.0
	msToKmh   = 3.6
	mToFeet   = 3.2808398950131
	mToFathom = 0.546806649
)

var ErrUnsupportedRecord = errors.New("nmea0183: unsupported record")

// Encoder turns records into sentences with a fixed talker ID.
type Encoder struct {
	Talker string
}

// Encode returns one sentence, "$" through checksum, without line ending.
func (e Encoder) Encode(r nav.Record) (string, error) {
	var fields []string
	switch r := r.(type) {
	case nav.HDG:
		dev, devDir := signedDegrees(r.Deviation)
		v, vDir := signedDegrees(r.Variation)
		fields = []string{degrees(r.Heading), dev, devDir, v, vDir}
	case nav.HDT:
		fields = []string{degrees(r.Heading), "T"}
	case nav.VHW:
		fields = []string{
			degrees(r.TrueHeading), "T",
			degrees(r.MagneticHeading), "M",
			scaled(r.WaterSpeed, msToKnots, 1), "N",
			scaled(r.WaterSpeed, msToKmh, 1), "K",
		}
	case nav.DPT:
		fields = []string{scaled(r.Depth, 1, 1), scaled(r.Offset, 1, 1), scaled(r.Range, 1, 0)}
	case nav.DBT:
		fields = []string{
			scaled(r.Depth, mToFeet, 1), "f",
			scaled(r.Depth, 1, 1), "M",
			scaled(r.Depth, mToFathom, 1), "F",
		}
	case nav.GLL:
		lat, ns := latitude(r.Latitude)
		lon, ew := longitude(r.Longitude)
		fields = []string{lat, ns, lon, ew, clock(r.SecondsSinceMidnight), "A", "A"}
	case nav.ZDA:
		day, month, year := date(r.DaysSince1970)
		fields = []string{clock(r.SecondsSinceMidnight), day, month, year, "00", "00"}
	case nav.VTG:
		fields = []string{
			degrees(r.TrueCourse), "T",
			degrees(r.MagneticCourse), "M",
			scaled(r.Speed, msToKnots, 1), "N",
			scaled(r.Speed, msToKmh, 1), "K",
			"A",
		}
	case nav.MWV:
		ref := "T"
		if r.Apparent {
			ref = "R"
		}
		status := "A"
		if !r.Angle.Valid() || !r.Speed.Valid() {
			status = "V"
		}
		fields = []string{degrees(r.Angle), ref, scaled(r.Speed, 1, 1), "M", status}
	case nav.MWD:
		fields = []string{
			degrees(r.TrueDirection), "T",
			degrees(r.MagneticDirection), "M",
			scaled(r.Speed, msToKnots, 1), "N",
			scaled(r.Speed, 1, 1), "M",
		}
	case nav.MTW:
		fields = []string{scaled(r.Temperature, 1, 1), "C"}
	case nav.RMC:
		status := "A"
		if !r.Latitude.Valid() || !r.Longitude.Valid() {
			status = "V"
		}
		lat, ns := latitude(r.Latitude)
		lon, ew := longitude(r.Longitude)
		v, vDir := signedDegrees(r.Variation)
		fields = []string{
			clock(r.SecondsSinceMidnight), status,
			lat, ns, lon, ew,
			scaled(r.SOG, msToKnots, 1),
			degrees(r.COG),
			rmcDate(r.DaysSince1970),
			v, vDir,
			"A",
		}
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedRecord, r)
	}

	talker := e.Talker
	if talker == "" {
		talker = DefaultTalker
	}
	body := talker + r.Sentence() + "," + strings.Join(fields, ",")
	return "$" + body + "*" + nmea.Checksum(body), nil
}

func scaled(v nav.Value, factor float64, prec int) string {
	x, ok := v.Get()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(x*factor, 'f', prec, 64)
}

func degrees(v nav.Value) string {
	r, ok := v.Get()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(nav.RadToDeg(nav.WrapAngle(r)), 'f', 1, 64)
}

// signedDegrees splits a signed angle into magnitude and E/W. East is positive.
func signedDegrees(v nav.Value) (string, string) {
	r, ok := v.Get()
	if !ok {
		return "", ""
	}
	d := nav.RadToDeg(r)
	dir := nmea.East
	if d < 0 {
		dir = nmea.West
		d = -d
	}
	return strconv.FormatFloat(d, 'f', 1, 64), dir
}

func latitude(v nav.Value) (string, string) {
	d, ok := v.Get()
	if !ok {
		return "", ""
	}
	hemi := nmea.North
	if d < 0 {
		hemi = nmea.South
		d = -d
	}
	return degMin(d, 2), hemi
}

func longitude(v nav.Value) (string, string) {
	d, ok := v.Get()
	if !ok {
		return "", ""
	}
	hemi := nmea.East
	if d < 0 {
		hemi = nmea.West
		d = -d
	}
	return degMin(d, 3), hemi
}

// degMin formats decimal degrees as d..dmm.mmmm.
func degMin(d float64, width int) string {
	deg := math.Floor(d)
	mins := (d - deg) * 60
	if math.Round(mins*1e4) >= 60e4 {
		deg++
		mins = 0
	}
	return fmt.Sprintf("%0*d%07.4f", width, int(deg), mins)
}

func clock(v nav.Value) string {
	s, ok := v.Get()
	if !ok {
		return ""
	}
	// Clamped to 23:59:59.99; the date does not roll over here.
	cs := min(int64(math.Round(s*100)), 24*360000-1)
	h := cs / 360000
	m := cs / 6000 % 60
	sec := cs / 100 % 60
	return fmt.Sprintf("%02d%02d%02d.%02d", h%24, m, sec, cs%100)
}

func dayTime(v nav.Value) (time.Time, bool) {
	d, ok := v.Get()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(d)*86400, 0).UTC(), true
}

func date(v nav.Value) (string, string, string) {
	t, ok := dayTime(v)
	if !ok {
		return "", "", ""
	}
	return fmt.Sprintf("%02d", t.Day()), fmt.Sprintf("%02d", int(t.Month())), fmt.Sprintf("%04d", t.Year())
}

func rmcDate(v nav.Value) string {
	t, ok := dayTime(v)
	if !ok {
		return ""
	}
	return t.Format("020106")
}
