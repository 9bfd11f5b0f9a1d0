// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package n2k

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

func mustDecode(t *testing.T, s string) nav.PrimaryMessage {
	t.Helper()
	m, err := Decode([]byte(s))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	return m
}

func near(v nav.Value, want float64) bool {
	got, ok := v.Get()
	return ok && math.Abs(got-want) < 1e-9
}

func TestDecode_Heading(t *testing.T) {
	m := mustDecode(t, `{"pgn":127250,"src":3,"fields":{"SID":1,"Heading":90.0,"Deviation":null,"Variation":-2.5,"Reference":"Magnetic"}}`)
	h, ok := m.(nav.Heading)
	if !ok {
		t.Fatalf("type=%T want nav.Heading", m)
	}
	if h.Reference != nav.ReferenceMagnetic {
		t.Fatalf("reference=%v want magnetic", h.Reference)
	}
	if !near(h.Heading, math.Pi/2) {
		t.Fatalf("heading=%v want π/2", h.Heading)
	}
	if h.Deviation.Valid() {
		t.Fatalf("deviation=%v want NA", h.Deviation)
	}
	if !near(h.Variation, nav.DegToRad(-2.5)) {
		t.Fatalf("variation=%v", h.Variation)
	}
}

func TestDecode_NumericEnums(t *testing.T) {
	m := mustDecode(t, `{"pgn":129026,"fields":{"COG Reference":1,"COG":180,"SOG":2.5}}`)
	c := m.(nav.COGSOG)
	if c.Reference != nav.ReferenceMagnetic {
		t.Fatalf("reference=%v want magnetic", c.Reference)
	}
	if !near(c.COG, math.Pi) || !near(c.SOG, 2.5) {
		t.Fatalf("cogsog=%+v", c)
	}
}

func TestDecode_GNSSDateTime(t *testing.T) {
	m := mustDecode(t, `{"pgn":129029,"fields":{"Date":"1970.01.03","Time":"01:00:30.5","Latitude":60.5,"Longitude":-24.25,"Altitude":3.0,"Method":"DGNSS fix","Number of SVs":11,"HDOP":0.9}}`)
	g := m.(nav.GNSS)
	if !near(g.DaysSince1970, 2) {
		t.Fatalf("days=%v want 2", g.DaysSince1970)
	}
	if !near(g.SecondsSinceMidnight, 3630.5) {
		t.Fatalf("seconds=%v want 3630.5", g.SecondsSinceMidnight)
	}
	if g.Method != nav.GNSSDGNSS {
		t.Fatalf("method=%v want DGNSS", g.Method)
	}
	if !near(g.Satellites, 11) || !near(g.Latitude, 60.5) || !near(g.Longitude, -24.25) {
		t.Fatalf("gnss=%+v", g)
	}
}

func TestDecode_WindReferences(t *testing.T) {
	cases := []struct {
		ref  string
		want nav.WindReference
	}{
		{`"Apparent"`, nav.WindApparent},
		{`"True (ground referenced to North)"`, nav.WindTrueNorth},
		{`"Magnetic (ground referenced to Magnetic North)"`, nav.WindMagneticNorth},
		{`"True (boat referenced)"`, nav.WindTrueBoat},
		{`"True (water referenced)"`, nav.WindTrueWater},
		{`2`, nav.WindApparent},
	}
	for _, tc := range cases {
		t.Run(tc.ref, func(t *testing.T) {
			m := mustDecode(t, `{"pgn":130306,"fields":{"Wind Speed":5.1,"Wind Angle":45,"Reference":`+tc.ref+`}}`)
			if got := m.(nav.Wind).Reference; got != tc.want {
				t.Fatalf("reference=%v want %v", got, tc.want)
			}
		})
	}
}

func TestDecode_Environmental(t *testing.T) {
	m := mustDecode(t, `{"pgn":130311,"fields":{"Temperature Source":"Sea Temperature","Temperature":288.15,"Humidity":null}}`)
	env := m.(nav.Environmental)
	if env.TempSource != nav.TempSeaTemperature {
		t.Fatalf("source=%v want sea", env.TempSource)
	}
	if !near(env.Temperature, 288.15) || env.Humidity.Valid() {
		t.Fatalf("env=%+v", env)
	}
}

func TestDecode_EveryPGNHasAType(t *testing.T) {
	for _, pgn := range SupportedPGNs {
		m, err := Decode([]byte(`{"pgn":` + strconv.FormatUint(uint64(pgn), 10) + `,"fields":{}}`))
		if err != nil {
			t.Fatalf("Decode(%d) error: %v", pgn, err)
		}
		if m.PGN() != pgn {
			t.Fatalf("PGN()=%d want %d", m.PGN(), pgn)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"NotJSON", `{pgn:`, ErrMalformed},
		{"NoPGN", `{"fields":{}}`, ErrMalformed},
		{"Unsupported", `{"pgn":126992,"fields":{}}`, ErrUnsupportedPGN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.in))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want %v", err, tc.want)
			}
		})
	}
}
