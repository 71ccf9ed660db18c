package layout

import (
	"math"
	"strconv"
	"strings"
)

// This file defines unit-safe types and helpers for lengths coming from
// external controls, config files and scripts.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like factors
	UnitPX               // canvas pixels
	UnitPT               // points
	UnitMM               // millimeters
	UnitEM               // multiples of the current font size
)

// Conversion constants between pt, mm and px (CSS reference pixel, 96dpi).
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
	PxToPt = 0.75
	PtToPx = 1.0 / PxToPt
	PxToMm = 25.4 / 96
)

// DefaultBaseline is the fixed top-of-line to baseline factor. It is an
// approximation of a typical font ascent; a renderer with real font metrics
// may supply Typography.Baseline instead.
const DefaultBaseline = 0.85

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitPX:
		return "px"
	case UnitPT:
		return "pt"
	case UnitMM:
		return "mm"
	case UnitEM:
		return "em"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

func (l Length) IsZero() bool { return l.Value == 0 }

// PX converts this length to canvas pixels. em lengths are resolved against
// fontSize (px); unit-less values are taken as px.
func (l Length) PX(fontSize float64) float64 {
	switch l.Unit {
	case UnitPT:
		return l.Value * PtToPx
	case UnitMM:
		return l.Value * MmToPt * PtToPx
	case UnitEM:
		return l.Value * fontSize
	default:
		return l.Value
	}
}

// ParseLength parses a length string such as "60", "45pt", "12mm" or "0.1em".
// A value that does not parse, or parses to NaN/Inf, yields fallback.
func ParseLength(value string, fallback Length) Length {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return fallback
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"px", UnitPX}, {"pt", UnitPT}, {"mm", UnitMM}, {"em", UnitEM}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || !isFinite(f) {
		return fallback
	}
	return Length{Value: f, Unit: unit}
}

// ParseNumber parses a plain number from an external control. Anything that
// is not a finite number falls back to last, the last known-good value.
func ParseNumber(raw string, last float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !isFinite(f) {
		return last
	}
	return f
}

// Finite reports whether v is neither NaN nor ±Inf.
func Finite(v float64) bool { return isFinite(v) }

// OrLast returns v when finite, otherwise last.
func OrLast(v, last float64) float64 {
	if !isFinite(v) {
		return last
	}
	return v
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
