package layout

import (
	"math"
	"testing"

	"github.com/ByLCY/truescale/model"
)

func cal(ppi float64) model.CalibrationConfig { return model.CalibrationConfig{PixelsPerInch: ppi} }

// TestMillimetersLinearity 验证 mm→px 的线性：mm2px(mm)/mm2px(1) == mm。
func TestMillimetersLinearity(t *testing.T) {
	for _, ppi := range []float64{72, 96, 128, 220.5, 300} {
		c := cal(ppi)
		unit := MillimetersToPixels(1, c)
		for _, mm := range []float64{0, 0.5, 1, 10, 85.6, 160, 220} {
			got := MillimetersToPixels(mm, c) / unit
			if diff := math.Abs(got - mm); diff > 1e-9 {
				t.Fatalf("ppi=%g mm=%g 线性误差过大: got=%g", ppi, mm, got)
			}
		}
	}
}

// TestPointsAndMillimetersAgree 验证 72pt 与 25.4mm 都是一英寸。
func TestPointsAndMillimetersAgree(t *testing.T) {
	for _, ppi := range []float64{72, 96, 128, 300} {
		c := cal(ppi)
		pt := PointsToPixels(72, c)
		mm := MillimetersToPixels(25.4, c)
		if diff := math.Abs(pt - mm); diff > 1e-9 {
			t.Fatalf("ppi=%g: 72pt=%gpx 25.4mm=%gpx", ppi, pt, mm)
		}
		if diff := math.Abs(pt - ppi); diff > 1e-9 {
			t.Fatalf("ppi=%g: 一英寸应为 %gpx，实际 %g", ppi, ppi, pt)
		}
	}
}

func TestTrackingToEm(t *testing.T) {
	if got := TrackingToEm(1000); got != 1.0 {
		t.Fatalf("TrackingToEm(1000) = %g", got)
	}
	if got := TrackingToEm(-500); got != -0.5 {
		t.Fatalf("TrackingToEm(-500) = %g", got)
	}
	if got := TrackingToEm(0); got != 0 {
		t.Fatalf("TrackingToEm(0) = %g", got)
	}
}

// TestNegativeAndZeroPassThrough 负值与零按算术直接换算，不做保护。
func TestNegativeAndZeroPassThrough(t *testing.T) {
	c := cal(96)
	if got := MillimetersToPixels(0, c); got != 0 {
		t.Fatalf("0mm 应为 0px，实际 %g", got)
	}
	if got := MillimetersToPixels(-25.4, c); math.Abs(got+96) > 1e-9 {
		t.Fatalf("-25.4mm 应为 -96px，实际 %g", got)
	}
	if got := PointsToPixels(-72, c); math.Abs(got+96) > 1e-9 {
		t.Fatalf("-72pt 应为 -96px，实际 %g", got)
	}
}

// TestPixelRoundTrip mm→px→mm 与 pt→px→pt 往返精度。
func TestPixelRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, ppi := range []float64{72, 96, 128, 300} {
		c := cal(ppi)
		for _, v := range samples {
			if back := PixelsToMillimeters(MillimetersToPixels(v, c), c); math.Abs(back-v) > 1e-9 {
				t.Fatalf("mm 往返误差过大: in=%g back=%g", v, back)
			}
			if back := PixelsToPoints(PointsToPixels(v, c), c); math.Abs(back-v) > 1e-9 {
				t.Fatalf("pt 往返误差过大: in=%g back=%g", v, back)
			}
		}
	}
}

func TestLengthConversions(t *testing.T) {
	in := Length{Value: 1, Unit: UnitIN}
	if got := in.ToMM(); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("1in 转 mm 期望 25.4，实际 %g", got)
	}
	cm := Length{Value: 2.54, Unit: UnitCM}
	if got := cm.ToPT(); math.Abs(got-72) > 1e-9 {
		t.Fatalf("2.54cm 转 pt 期望 72，实际 %g", got)
	}
	pt := Length{Value: 72, Unit: UnitPT}
	if got := pt.ToPixels(cal(96)); math.Abs(got-96) > 1e-9 {
		t.Fatalf("72pt 在 96ppi 下期望 96px，实际 %g", got)
	}
	px := Length{Value: 96, Unit: UnitPX}
	if got := px.ToMMAt(cal(96)); math.Abs(got-25.4) > 1e-9 {
		t.Fatalf("96px 在 96ppi 下期望 25.4mm，实际 %g", got)
	}
}

func TestParseRawLengthStr(t *testing.T) {
	cases := []struct {
		in   string
		want Length
		ok   bool
	}{
		{"10mm", Length{10, UnitMM}, true},
		{" 14.4PT ", Length{14.4, UnitPT}, true},
		{"-2cm", Length{-2, UnitCM}, true},
		{"7", Length{7, UnitNone}, true},
		{"3px", Length{3, UnitPX}, true},
		{"mm", Length{}, false},
		{"", Length{}, false},
	}
	for _, c := range cases {
		got, ok := ParseRawLengthStr(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("ParseRawLengthStr(%q) = %+v,%v，期望 %+v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
