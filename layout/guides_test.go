package layout

import (
	"testing"

	"github.com/ByLCY/truescale/model"
)

func geometryForGuides() Geometry {
	// 72pt 行距在 25.4ppi 下是 25.4px
	return Compute(unitPage(720, 1020, 7), model.FrameStyle{}, model.FrameStyle{FontSizePt: 10, Leading: model.FixedLeading(72)}, cal(25.4))
}

func TestGuidesSuppressedWhenAllTogglesOff(t *testing.T) {
	g := Compute(model.Default().Page, model.Default().Frame1, model.Default().Frame2, cal(96))
	guides := BuildGuides(g, model.ViewConfig{GuideColor: "#00FFFF"})
	if guides.Visible || guides.Margins != nil || guides.Columns != nil || guides.Baselines != nil {
		t.Fatalf("三个开关都关闭时不应生成任何图元: %+v", guides)
	}
}

func TestMarginRules(t *testing.T) {
	c := cal(25.4)
	g := Compute(unitPage(720, 1020, 7), model.FrameStyle{}, model.FrameStyle{}, c)
	guides := BuildGuides(g, model.ViewConfig{ShowMargins: true, GuideColor: "#FF0000"})
	if !guides.Visible || guides.Color != "#FF0000" {
		t.Fatalf("参考线应可见且使用指定颜色: %+v", guides)
	}
	if len(guides.Margins) != 4 || guides.Columns != nil || guides.Baselines != nil {
		t.Fatalf("只应生成边距线: %+v", guides)
	}
	want := map[string]Box{
		"top":    {X: 0, Y: 10, Width: 720, Height: 1},
		"bottom": {X: 0, Y: 1020 - 10 - 1, Width: 720, Height: 1},
		"left":   {X: 10, Y: 0, Width: 1, Height: 1020},
		"right":  {X: 720 - 10 - 1, Y: 0, Width: 1, Height: 1020},
	}
	for _, r := range guides.Margins {
		w, ok := want[r.Name]
		if !ok {
			t.Fatalf("未知边距线 %q", r.Name)
		}
		if r.Box != w {
			t.Fatalf("%s 边距线期望 %+v，实际 %+v", r.Name, w, r.Box)
		}
	}
	if guides.Opacity.Margins != 0.5 {
		t.Fatalf("边距线透明度期望 0.5，实际 %g", guides.Opacity.Margins)
	}
}

func TestColumnBandsSpanMargins(t *testing.T) {
	c := cal(25.4)
	p := unitPage(720, 1020, 7)
	p.MarginBottomMm = 30
	g := Compute(p, model.FrameStyle{}, model.FrameStyle{}, c)
	guides := BuildGuides(g, model.ViewConfig{ShowColumns: true})
	if len(guides.Columns) != 7 {
		t.Fatalf("期望 7 个栏带，实际 %d", len(guides.Columns))
	}
	for i, b := range guides.Columns {
		if b.Y != 10 || b.Height != 1020-30-10 {
			t.Fatalf("第 %d 栏带纵向范围错误: %+v", i, b)
		}
		if b.X != g.Columns[i].X || b.Width != g.Columns[i].Width {
			t.Fatalf("第 %d 栏带应与栏几何一致: %+v vs %+v", i, b, g.Columns[i])
		}
	}
}

func TestBaselineRulesStartAtTopMargin(t *testing.T) {
	g := geometryForGuides()
	guides := BuildGuides(g, model.ViewConfig{ShowBaseline: true})
	if len(guides.Baselines) == 0 {
		t.Fatalf("应生成基线")
	}
	if !near(guides.Baselines[0].Box.Y, g.BaselinePhase, eps) {
		t.Fatalf("第一条基线应与上边距重合: %g vs %g", guides.Baselines[0].Box.Y, g.BaselinePhase)
	}
	for i := 1; i < len(guides.Baselines); i++ {
		d := guides.Baselines[i].Box.Y - guides.Baselines[i-1].Box.Y
		if !near(d, g.BaselinePitch, 1e-6) {
			t.Fatalf("基线间距期望 %g，实际 %g", g.BaselinePitch, d)
		}
	}
	last := guides.Baselines[len(guides.Baselines)-1].Box.Y
	if last >= g.Page.Height || last+g.BaselinePitch < g.Page.Height {
		t.Fatalf("基线应覆盖到页面底部: last=%g pitch=%g height=%g", last, g.BaselinePitch, g.Page.Height)
	}
}

func TestBaselineRulesNonPositivePitch(t *testing.T) {
	g := geometryForGuides()
	g.BaselinePitch = 0
	if rules := baselineRules(g); rules != nil {
		t.Fatalf("间距为 0 时不应生成基线")
	}
}
