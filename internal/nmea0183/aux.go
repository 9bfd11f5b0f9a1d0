// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nmea0183

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

var ErrUnsupportedSentence = errors.New("nmea0183: unsupported sentence")

// ParseAux decodes one auxiliary input line. HDG and HDM are accepted.
func ParseAux(line string) (nav.AuxMessage, error) {
	line = strings.TrimSpace(line)
	s, err := nmea.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", line, err)
	}

	switch s.DataType() {
	case nmea.TypeHDG:
		m := s.(nmea.HDG)
		return nav.AuxHeading{
			Heading:   angleField(m.Fields, 0, ""),
			Deviation: angleField(m.Fields, 1, m.DeviationDirection),
			Variation: angleField(m.Fields, 3, m.VariationDirection),
		}, nil
	case nmea.TypeHDM:
		m := s.(nmea.HDM)
		// HDM is already deviation corrected.
		return nav.AuxHeading{Heading: angleField(m.Fields, 0, ""), Deviation: nav.Of(0)}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedSentence, s.DataType())
}

// angleField reads degrees from a raw field so that an empty field stays
// not available instead of becoming 0. West makes the angle negative.
func angleField(fields []string, i int, dir string) nav.Value {
	if i >= len(fields) || fields[i] == "" {
		return nav.NA()
	}
	d, err := strconv.ParseFloat(fields[i], 64)
	if err != nil {
		return nav.NA()
	}
	if dir == nmea.West {
		d = -d
	}
	return nav.Of(nav.DegToRad(d))
}
