// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea0183

import (
	"errors"
	"testing"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

func sentence(body string) string {
	return "$" + body + "*" + nmea.Checksum(body)
}

func TestParseAux_HDG(t *testing.T) {
	m, err := ParseAux(sentence("HCHDG,98.3,0.5,E,4.1,W") + "\r\n")
	if err != nil {
		t.Fatalf("ParseAux() error: %v", err)
	}
	h, ok := m.(nav.AuxHeading)
	if !ok {
		t.Fatalf("type=%T want nav.AuxHeading", m)
	}
	approx(t, "heading", h.Heading.Or(-1), nav.DegToRad(98.3), 1e-9)
	approx(t, "deviation", h.Deviation.Or(-1), nav.DegToRad(0.5), 1e-9)
	approx(t, "variation", h.Variation.Or(-1), nav.DegToRad(-4.1), 1e-9)
}

func TestParseAux_EmptyFieldsStayNA(t *testing.T) {
	m, err := ParseAux(sentence("HCHDG,98.3,,,,"))
	if err != nil {
		t.Fatalf("ParseAux() error: %v", err)
	}
	h := m.(nav.AuxHeading)
	if !h.Heading.Valid() {
		t.Fatalf("heading NA")
	}
	if h.Deviation.Valid() || h.Variation.Valid() {
		t.Fatalf("deviation=%v variation=%v want NA", h.Deviation, h.Variation)
	}
}

func TestParseAux_HDM(t *testing.T) {
	m, err := ParseAux(sentence("HCHDM,12.0,M"))
	if err != nil {
		t.Fatalf("ParseAux() error: %v", err)
	}
	h := m.(nav.AuxHeading)
	approx(t, "heading", h.Heading.Or(-1), nav.DegToRad(12), 1e-9)
	approx(t, "deviation", h.Deviation.Or(-1), 0, 0)
}

func TestParseAux_Errors(t *testing.T) {
	if _, err := ParseAux(sentence("IIHDT,12.0,T")); !errors.Is(err, ErrUnsupportedSentence) {
		t.Fatalf("err=%v want ErrUnsupportedSentence", err)
	}
	if _, err := ParseAux("$HCHDG,98.3,,,,*00"); err == nil {
		t.Fatalf("expected checksum error")
	}
}
