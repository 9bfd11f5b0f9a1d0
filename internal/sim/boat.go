// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package sim generates decoded NMEA 2000 frames for a boat sailing a slow
// circle, for bench testing without a bus.
package sim

import (
	"context"
	"encoding/json"
	"math"
	"time"
)

const (
	turnRate       = 3.0  // degrees per second
	speed          = 3.0  // m/s through the water
	variation      = -2.5 // degrees, west
	metresPerDeg   = 111320.0
	trueWindFrom   = 270.0 // degrees
	trueWindSpeed  = 6.0   // m/s
	waterTempK     = 288.15
	transducerDeep = 0.5 // metres below the waterline
)

// Default circle centre.
const (
	DefaultLatitude  = 47.6062
	DefaultLongitude = -122.3321
)

// Boat holds the simulated track. Values change smoothly with elapsed time.
type Boat struct {
	start    time.Time
	lat, lon float64
}

// NewBoat creates a boat whose circle is centred on lat, lon.
func NewBoat(start time.Time, lat, lon float64) *Boat {
	return &Boat{start: start, lat: lat, lon: lon}
}

type frame struct {
	PGN    uint32         `json:"pgn"`
	Src    int            `json:"src"`
	Fields map[string]any `json:"fields"`
}

// Frames returns one JSON frame per simulated sensor at time now.
func (b *Boat) Frames(now time.Time) [][]byte {
	elapsed := now.Sub(b.start).Seconds()

	headingTrue := math.Mod(elapsed*turnRate, 360)
	headingMag := math.Mod(headingTrue-variation+360, 360)

	// Circle radius for the given speed and turn rate.
	r := speed / (turnRate * math.Pi / 180)
	theta := headingTrue * math.Pi / 180
	lat := b.lat - r*math.Cos(theta)/metresPerDeg
	lon := b.lon + r*math.Sin(theta)/(metresPerDeg*math.Cos(b.lat*math.Pi/180))

	awa, aws := apparentWind(headingTrue, speed)
	utc := now.UTC()

	frames := []frame{
		{PGN: 127250, Src: 3, Fields: map[string]any{
			"Heading":   round(headingMag, 1),
			"Variation": variation,
			"Reference": "Magnetic",
		}},
		{PGN: 128259, Src: 35, Fields: map[string]any{
			"Speed Water Referenced": speed,
		}},
		{PGN: 128267, Src: 35, Fields: map[string]any{
			"Depth":  round(12+2*math.Sin(elapsed*0.1), 2),
			"Offset": transducerDeep,
		}},
		{PGN: 129025, Src: 5, Fields: map[string]any{
			"Latitude":  round(lat, 7),
			"Longitude": round(lon, 7),
		}},
		{PGN: 129026, Src: 5, Fields: map[string]any{
			"COG Reference": "True",
			"COG":           round(headingTrue, 1),
			"SOG":           speed,
		}},
		{PGN: 129029, Src: 5, Fields: map[string]any{
			"Date":          utc.Format("2006.01.02"),
			"Time":          utc.Format("15:04:05.000"),
			"Latitude":      round(lat, 7),
			"Longitude":     round(lon, 7),
			"Altitude":      2.0,
			"Method":        "GNSS fix",
			"Number of SVs": 9,
			"HDOP":          0.9,
		}},
		{PGN: 130306, Src: 105, Fields: map[string]any{
			"Wind Speed": round(aws, 2),
			"Wind Angle": round(awa, 1),
			"Reference":  "Apparent",
		}},
		{PGN: 130311, Src: 35, Fields: map[string]any{
			"Temperature Source": "Sea Temperature",
			"Temperature":        waterTempK,
		}},
	}

	out := make([][]byte, 0, len(frames))
	for _, f := range frames {
		data, err := json.Marshal(f)
		if err != nil {
			continue
		}
		out = append(out, data)
	}
	return out
}

// apparentWind returns the apparent wind angle (degrees, relative to the
// bow) and speed for a boat on headingTrue at sog.
func apparentWind(headingTrue, sog float64) (angle, spd float64) {
	// Wind velocity in the boat frame: x forward, y starboard.
	rel := (trueWindFrom - headingTrue) * math.Pi / 180
	x := trueWindSpeed*math.Cos(rel) + sog
	y := trueWindSpeed * math.Sin(rel)
	angle = math.Mod(math.Atan2(y, x)*180/math.Pi+360, 360)
	return angle, math.Hypot(x, y)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Run sends the boat's frames to out every period until ctx is done.
func Run(ctx context.Context, b *Boat, period time.Duration, out chan<- []byte) error {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			for _, f := range b.Frames(now) {
				select {
				case out <- f:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}
