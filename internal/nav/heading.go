// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

// correctedMagnetic is the magnetic sensor reading with deviation applied.
func (h *headingState) correctedMagnetic() Value {
	m, ok := h.magSensor.Get()
	if !ok {
		return NA()
	}
	if d, ok := h.deviation.Get(); ok {
		m += d
	}
	return Of(WrapAngle(m))
}

// trueFromSensor is the true sensor reading, wrapped.
func (h *headingState) trueFromSensor() Value {
	t, ok := h.trueSensor.Get()
	if !ok {
		return NA()
	}
	return Of(WrapAngle(t))
}

// updateFromMagnetic recomputes magnetic and true heading with the magnetic
// sensor as the controlling source. When the magnetic sensor is gone both
// values fall back to the true sensor, or become unavailable.
func (h *headingState) updateFromMagnetic() {
	if !h.magSensor.Valid() {
		h.fallBackToTrue()
		return
	}
	h.magnetic = h.correctedMagnetic()
	switch {
	case h.variation.Valid():
		h.trueHeading = wrapped(h.magnetic, h.variation)
	case h.trueSensor.Valid():
		h.trueHeading = h.trueFromSensor()
	default:
		h.trueHeading = NA()
	}
}

// updateFromTrue is the mirror of updateFromMagnetic with the true sensor
// controlling.
func (h *headingState) updateFromTrue() {
	if !h.trueSensor.Valid() {
		h.fallBackToMagnetic()
		return
	}
	h.trueHeading = h.trueFromSensor()
	switch {
	case h.variation.Valid():
		h.magnetic = Of(WrapAngle(h.trueHeading.v - h.variation.v))
	case h.magSensor.Valid():
		h.magnetic = h.correctedMagnetic()
	default:
		h.magnetic = NA()
	}
}

func (h *headingState) fallBackToTrue() {
	if !h.trueSensor.Valid() {
		h.magnetic = NA()
		h.trueHeading = NA()
		return
	}
	h.trueHeading = h.trueFromSensor()
	if v, ok := h.variation.Get(); ok {
		h.magnetic = Of(WrapAngle(h.trueHeading.v - v))
	} else {
		h.magnetic = NA()
	}
}

func (h *headingState) fallBackToMagnetic() {
	if !h.magSensor.Valid() {
		h.magnetic = NA()
		h.trueHeading = NA()
		return
	}
	h.magnetic = h.correctedMagnetic()
	h.trueHeading = wrapped(h.magnetic, h.variation)
}
