// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package nav

import (
	"math"
	"strconv"
)

// Value is an optional reading. The zero Value is not available, which is
// distinct from a reading of 0.
type Value struct {
	v  float64
	ok bool
}

// Of returns an available Value. NaN and infinities are treated as not
// available so they never leak into output.
func Of(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// NA returns a Value that is not available.
func NA() Value { return Value{} }

// Get returns the reading and whether it is available.
func (x Value) Get() (float64, bool) { return x.v, x.ok }

// Valid reports whether the reading is available.
func (x Value) Valid() bool { return x.ok }

// Or returns the reading, or def when not available.
func (x Value) Or(def float64) float64 {
	if !x.ok {
		return def
	}
	return x.v
}

func (x Value) String() string {
	if !x.ok {
		return "NA"
	}
	return strconv.FormatFloat(x.v, 'f', -1, 64)
}

// MarshalJSON encodes an unavailable Value as null.
func (x Value) MarshalJSON() ([]byte, error) {
	if !x.ok {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, x.v, 'g', -1, 64), nil
}

// UnmarshalJSON accepts a number or null.
func (x *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*x = Value{}
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*x = Of(f)
	return nil
}

// wrapped returns wrap(a + b) if both are available.
func wrapped(a, b Value) Value {
	if !a.ok || !b.ok {
		return Value{}
	}
	return Of(WrapAngle(a.v + b.v))
}

// anyValid reports whether at least one of vs is available.
func anyValid(vs ...Value) bool {
	for _, v := range vs {
		if v.ok {
			return true
		}
	}
	return false
}

// keep returns next when available, otherwise cur.
func keep(cur, next Value) Value {
	if next.ok {
		return next
	}
	return cur
}
