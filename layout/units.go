package layout

import (
	"strconv"
	"strings"

	"github.com/ByLCY/truescale/model"
)

// This file defines the calibration-driven unit conversion and the
// unit-preserving Length type used when parsing document descriptions.

// Unit represents the original unit of a length value.
type Unit int

const (
	UnitNone Unit = iota // unit-less numbers like tracking or column counts
	UnitMM               // millimeters
	UnitCM               // centimeters
	UnitIN               // inches
	UnitPT               // points
	UnitPX               // device pixels, only meaningful with a calibration
)

// Physical constants.
const (
	MmPerInch = 25.4
	PtPerInch = 72.0
	PtToMm    = MmPerInch / PtPerInch
	MmToPt    = PtPerInch / MmPerInch
)

// PixelsPerMillimeter returns the calibrated device pixels per millimeter.
func PixelsPerMillimeter(cal model.CalibrationConfig) float64 {
	return cal.PixelsPerInch / MmPerInch
}

// PixelsPerPoint returns the calibrated device pixels per point.
func PixelsPerPoint(cal model.CalibrationConfig) float64 {
	return cal.PixelsPerInch / PtPerInch
}

// MillimetersToPixels converts mm to pixels. Zero and negative values pass
// through arithmetically.
func MillimetersToPixels(mm float64, cal model.CalibrationConfig) float64 {
	return mm * PixelsPerMillimeter(cal)
}

// PointsToPixels converts pt to pixels.
func PointsToPixels(pt float64, cal model.CalibrationConfig) float64 {
	return pt * PixelsPerPoint(cal)
}

// PixelsToMillimeters is the inverse of MillimetersToPixels.
func PixelsToMillimeters(px float64, cal model.CalibrationConfig) float64 {
	return px / PixelsPerMillimeter(cal)
}

// PixelsToPoints is the inverse of PointsToPixels.
func PixelsToPoints(px float64, cal model.CalibrationConfig) float64 {
	return px / PixelsPerPoint(cal)
}

// TrackingToEm converts tracking in thousandths of an em to fractional ems.
func TrackingToEm(tracking int) float64 {
	return float64(tracking) / 1000
}

// UnitToString returns a short string for a Unit value.
func UnitToString(u Unit) string {
	switch u {
	case UnitMM:
		return "mm"
	case UnitCM:
		return "cm"
	case UnitIN:
		return "in"
	case UnitPT:
		return "pt"
	case UnitPX:
		return "px"
	default:
		return ""
	}
}

// Length preserves a numeric value with its unit.
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// WithDefault returns l with UnitNone replaced by u.
func (l Length) WithDefault(u Unit) Length {
	if l.Unit == UnitNone {
		l.Unit = u
	}
	return l
}

// ToMM converts a physical length to millimeters. Pixel and unit-less
// values are returned as-is; use ToMMAt for pixels.
func (l Length) ToMM() float64 {
	switch l.Unit {
	case UnitCM:
		return l.Value * 10
	case UnitIN:
		return l.Value * MmPerInch
	case UnitPT:
		return l.Value * PtToMm
	default:
		return l.Value
	}
}

// ToPT converts a physical length to points.
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitPT, UnitNone, UnitPX:
		return l.Value
	default:
		return l.ToMM() * MmToPt
	}
}

// ToPixels converts any length to device pixels through the calibration.
func (l Length) ToPixels(cal model.CalibrationConfig) float64 {
	switch l.Unit {
	case UnitPX, UnitNone:
		return l.Value
	case UnitPT:
		return PointsToPixels(l.Value, cal)
	default:
		return MillimetersToPixels(l.ToMM(), cal)
	}
}

// ToMMAt is ToMM that also understands pixel lengths.
func (l Length) ToMMAt(cal model.CalibrationConfig) float64 {
	if l.Unit == UnitPX {
		return PixelsToMillimeters(l.Value, cal)
	}
	return l.ToMM()
}

// ToPTAt is ToPT that also understands pixel lengths.
func (l Length) ToPTAt(cal model.CalibrationConfig) float64 {
	if l.Unit == UnitPX {
		return PixelsToPoints(l.Value, cal)
	}
	return l.ToPT()
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + UnitToString(l.Unit)
}

// ParseRawLengthStr parses a length string preserving its unit. Invalid
// numbers yield ok == false.
func ParseRawLengthStr(value string) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, false
	}
	unit := UnitNone
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}, {"px", UnitPX}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f, Unit: unit}, true
}
