// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/relabs-tech/n2kconvert/internal/nav"
)

// Panel geometry matches a 128x64 monochrome OLED.
const (
	PanelWidth  = 128
	PanelHeight = 64
	lineHeight  = 13
)

const msToKnots = 3600.0 / 1852.0

// PanelLines formats the snapshot as four instrument lines.
func PanelLines(snap nav.Snapshot, haveData bool) []string {
	if !haveData {
		return []string{"n2kconvert", "Waiting..."}
	}
	return []string{
		fmt.Sprintf("HDG %s %s", panelAngle(snap.HeadingTrue, "T"), panelAngle(snap.HeadingMagnetic, "M")),
		fmt.Sprintf("COG %s SOG %s", panelAngle(snap.COGTrue, ""), panelSpeed(snap.SOG)),
		fmt.Sprintf("TWD %s TWS %s", panelAngle(snap.WindDirectionTrue, ""), panelSpeed(snap.WindSpeedTrue)),
		panelPosition(snap.Latitude, snap.Longitude),
	}
}

// RenderPanel draws the snapshot onto a grayscale image.
func RenderPanel(snap nav.Snapshot, haveData bool) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, PanelWidth, PanelHeight))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}

	for i, line := range PanelLines(snap, haveData) {
		drawer.Dot = fixed.P(0, lineHeight*(i+1))
		drawer.DrawString(line)
	}
	return img
}

func panelAngle(v nav.Value, suffix string) string {
	r, ok := v.Get()
	if !ok {
		return "---" + suffix
	}
	return fmt.Sprintf("%03.0f%s", nav.RadToDeg(r), suffix)
}

func panelSpeed(v nav.Value) string {
	ms, ok := v.Get()
	if !ok {
		return "--.-"
	}
	return fmt.Sprintf("%4.1f", ms*msToKnots)
}

func panelPosition(lat, lon nav.Value) string {
	la, okLat := lat.Get()
	lo, okLon := lon.Get()
	if !okLat || !okLon {
		return "No position"
	}
	latDir := "N"
	if la < 0 {
		latDir = "S"
		la = -la
	}
	lonDir := "E"
	if lo < 0 {
		lonDir = "W"
		lo = -lo
	}
	return fmt.Sprintf("%.3f%s %.3f%s", la, latDir, lo, lonDir)
}
