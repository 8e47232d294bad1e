package calibration

import (
	"math"
	"testing"

	"github.com/ByLCY/truescale/model"
	"github.com/ByLCY/truescale/store"
)

func TestSnap(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{96, 96},
		{96.2, 96},
		{96.3, 96.5},
		{10, 72},
		{1000, 300},
		{299.9, 300},
		{math.NaN(), 72},
	}
	for _, c := range cases {
		if got := Snap(c.in); got != c.want {
			t.Fatalf("Snap(%g) = %g，期望 %g", c.in, got, c.want)
		}
	}
}

func TestReferencesAt96PPI(t *testing.T) {
	doc := model.Default()
	s := References(doc.Page, model.CalibrationConfig{PixelsPerInch: 96})
	if math.Abs(s.Card.Box.Width-85.6*96/25.4) > 1e-9 || math.Abs(s.Card.Box.Height-53.98*96/25.4) > 1e-9 {
		t.Fatalf("银行卡尺寸错误: %+v", s.Card.Box)
	}
	if math.Abs(s.Card.Box.Width-323.53) > 0.01 {
		t.Fatalf("96ppi 下银行卡约 323.53px，实际 %g", s.Card.Box.Width)
	}
	if math.Abs(s.Strip.Box.Width-604.72) > 0.01 {
		t.Fatalf("参照条宽度应为页面宽度，实际 %g", s.Strip.Box.Width)
	}
	// 220mm 在 96ppi 下约 831px，被封顶
	if s.Strip.Box.Height != StripMaxHeightPx {
		t.Fatalf("参照条高度应封顶 400，实际 %g", s.Strip.Box.Height)
	}
	if s.Card.Label != "85.6mm" || s.Strip.Label != "160mm" || s.ScaleLabel != "96 px/in" {
		t.Fatalf("标注错误: %q %q %q", s.Card.Label, s.Strip.Label, s.ScaleLabel)
	}
	if len(s.Presets) != 4 || s.Presets[2].PixelsPerInch != 220 {
		t.Fatalf("预设错误: %+v", s.Presets)
	}
}

func TestStripHeightBelowCap(t *testing.T) {
	page := model.Default().Page
	page.HeightMm = 50
	s := References(page, model.CalibrationConfig{PixelsPerInch: 72})
	if math.Abs(s.Strip.Box.Height-50*72/25.4) > 1e-9 {
		t.Fatalf("未超过上限时使用实际高度，实际 %g", s.Strip.Box.Height)
	}
}

func TestScaleLabelRounds(t *testing.T) {
	s := References(model.Default().Page, model.CalibrationConfig{PixelsPerInch: 220.5})
	if s.ScaleLabel != "221 px/in" {
		t.Fatalf("标注应四舍五入，实际 %q", s.ScaleLabel)
	}
}

func TestWorkflow(t *testing.T) {
	st := store.New(model.Default())
	w := NewWorkflow(st)
	if w.IsOpen() {
		t.Fatalf("初始应关闭")
	}
	w.Open()
	if !w.IsOpen() {
		t.Fatalf("Open 后应打开")
	}
	sheet := w.SetPixelsPerInch(110.2)
	if sheet.PixelsPerInch != 110 || st.Document().Calibration.PixelsPerInch != 110 {
		t.Fatalf("控件取值应立即生效: %g", sheet.PixelsPerInch)
	}
	sheet = w.Adjust(3)
	if sheet.PixelsPerInch != 111.5 {
		t.Fatalf("步进后期望 111.5，实际 %g", sheet.PixelsPerInch)
	}
	w.Close()
	if w.IsOpen() || st.Document().Calibration.PixelsPerInch != 111.5 {
		t.Fatalf("关闭不应重置校准值")
	}
	if got := w.SetPixelsPerInch(5000).PixelsPerInch; got != MaxPPI {
		t.Fatalf("超出范围应被限制，实际 %g", got)
	}
}
