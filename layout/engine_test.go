package layout

import (
	"math"
	"testing"

	"github.com/ByLCY/truescale/model"
)

const eps = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func heightMm(v float64) *float64 { return &v }

// unitPage 在 25.4ppi 下 1mm == 1px，方便直接断言像素值。
func unitPage(widthMm, heightMmV float64, columns int) model.PageConfig {
	return model.PageConfig{
		WidthMm:        widthMm,
		HeightMm:       heightMmV,
		MarginTopMm:    10,
		MarginRightMm:  10,
		MarginBottomMm: 10,
		MarginLeftMm:   10,
		Columns:        columns,
	}
}

func TestColumnsFillContentWidth(t *testing.T) {
	c := cal(25.4)
	g := Compute(unitPage(720, 300, 7), model.FrameStyle{}, model.FrameStyle{FontSizePt: 12, Leading: model.AutoLeading()}, c)
	if !near(g.Content.Width, 700, eps) {
		t.Fatalf("内容宽度期望 700，实际 %g", g.Content.Width)
	}
	if len(g.Columns) != 7 {
		t.Fatalf("期望 7 栏，实际 %d", len(g.Columns))
	}
	sum := 0.0
	for i, col := range g.Columns {
		if !near(col.Width, 100, eps) {
			t.Fatalf("第 %d 栏宽度期望 100，实际 %g", i, col.Width)
		}
		if !near(col.Left, float64(i)*100, eps) || !near(col.X, 10+float64(i)*100, eps) {
			t.Fatalf("第 %d 栏位置错误: %+v", i, col)
		}
		sum += col.Width
	}
	if !near(sum, 700, eps) {
		t.Fatalf("栏宽之和期望 700，实际 %g", sum)
	}
}

func TestColumnsWithGutter(t *testing.T) {
	c := cal(25.4)
	p := unitPage(720, 300, 3)
	p.GutterMm = 20
	g := Compute(p, model.FrameStyle{}, model.FrameStyle{}, c)
	// (700 - 2*20) / 3 = 220
	if !near(g.ColumnWidth, 220, eps) {
		t.Fatalf("栏宽期望 220，实际 %g", g.ColumnWidth)
	}
	last := g.Columns[2]
	if !near(last.X+last.Width, g.Content.Right(), eps) {
		t.Fatalf("最后一栏应与内容区右边缘对齐: %g vs %g", last.X+last.Width, g.Content.Right())
	}
	if !near(g.Columns[1].X-(g.Columns[0].X+g.Columns[0].Width), 20, eps) {
		t.Fatalf("栏间距期望 20")
	}
}

func TestColumnsDegenerateNotRejected(t *testing.T) {
	c := cal(25.4)
	p := unitPage(720, 300, 8)
	p.GutterMm = 200
	g := Compute(p, model.FrameStyle{}, model.FrameStyle{}, c)
	if g.ColumnWidth >= 0 {
		t.Fatalf("栏间距超出内容宽度时栏宽应为负，实际 %g", g.ColumnWidth)
	}
	if len(g.Columns) != 8 {
		t.Fatalf("退化配置仍应生成 8 栏，实际 %d", len(g.Columns))
	}
	if len(Warnings(g)) == 0 {
		t.Fatalf("负栏宽应产生警告")
	}
}

func TestZeroColumnsDoesNotPanic(t *testing.T) {
	g := Compute(unitPage(720, 300, 0), model.FrameStyle{}, model.FrameStyle{}, cal(25.4))
	if len(g.Columns) != 0 || g.ColumnWidth != 0 {
		t.Fatalf("0 栏应不生成栏: %+v", g.Columns)
	}
}

func TestFramePartition(t *testing.T) {
	c := cal(25.4)
	page := unitPage(720, 1020, 1) // 内容高度 1000
	body := model.FrameStyle{FontSizePt: 12, Leading: model.FixedLeading(14.4)}

	g := Compute(page, model.FrameStyle{HeightMm: heightMm(250)}, body, c)
	if !near(g.Content.Height, 1000, eps) {
		t.Fatalf("内容高度期望 1000，实际 %g", g.Content.Height)
	}
	if !near(g.Frame1.Height, 250, eps) || !near(g.Frame2.Height, 750, eps) {
		t.Fatalf("期望 250/750，实际 %g/%g", g.Frame1.Height, g.Frame2.Height)
	}
	if !near(g.Frame2.Y, g.Frame1.Bottom(), eps) {
		t.Fatalf("正文应紧接页眉: %g vs %g", g.Frame2.Y, g.Frame1.Bottom())
	}
	if !near(g.Frame1.Y, g.Content.Y, eps) || g.Frame1.Width != g.Content.Width {
		t.Fatalf("页眉应位于内容区顶部并占满宽度: %+v", g.Frame1)
	}

	g = Compute(page, model.FrameStyle{HeightMm: heightMm(1200)}, body, c)
	if !near(g.Frame2.Height, -200, eps) {
		t.Fatalf("正文高度不应被截断，期望 -200，实际 %g", g.Frame2.Height)
	}

	g = Compute(page, model.FrameStyle{}, body, c)
	if g.Frame1.Height != 0 || !near(g.Frame2.Height, 1000, eps) {
		t.Fatalf("未设置页眉高度时正文应占满内容区: %g/%g", g.Frame1.Height, g.Frame2.Height)
	}
}

func TestBaselinePhaseAndPitch(t *testing.T) {
	c := cal(96)
	page := model.Default().Page
	g := Compute(page, model.Default().Frame1, model.Default().Frame2, c)
	if g.BaselinePhase != MillimetersToPixels(10, c) {
		t.Fatalf("基线相位应等于上边距像素值，实际 %g", g.BaselinePhase)
	}
	if !near(g.BaselinePitch, 14.4*96/72, eps) {
		t.Fatalf("基线间距期望 %g，实际 %g", 14.4*96/72, g.BaselinePitch)
	}

	auto := model.FrameStyle{FontSizePt: 10, Leading: model.AutoLeading()}
	g = Compute(page, model.FrameStyle{}, auto, c)
	if !near(g.BaselinePitch, PointsToPixels(12, c), eps) {
		t.Fatalf("auto 行距的基线间距应为 12pt，实际 %gpx", g.BaselinePitch)
	}
}

// TestDefaultDocumentAt96PPI 默认文档在 96ppi 下的端到端几何。
func TestDefaultDocumentAt96PPI(t *testing.T) {
	doc := model.Default()
	c := cal(96)
	g := Compute(doc.Page, doc.Frame1, doc.Frame2, c)
	ppmm := 96 / 25.4
	if !near(g.PixelsPerMillimeter, ppmm, eps) {
		t.Fatalf("px/mm 期望 %g，实际 %g", ppmm, g.PixelsPerMillimeter)
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"pageWidth", g.Page.Width, 160 * ppmm},
		{"pageHeight", g.Page.Height, 220 * ppmm},
		{"marginLeft", g.Margins.Left, 10 * ppmm},
		{"contentWidth", g.Content.Width, 140 * ppmm},
		{"columnWidth", g.ColumnWidth, 20 * ppmm},
		{"frame1Height", g.Frame1.Height, 25 * ppmm},
		{"frame2Height", g.Frame2.Height, 175 * ppmm},
	}
	for _, ck := range checks {
		if !near(ck.got, ck.want, 1e-6) {
			t.Fatalf("%s 期望 %g，实际 %g", ck.name, ck.want, ck.got)
		}
	}
	if !near(g.Page.Width, 604.72, 0.01) || !near(g.Content.Width, 529.13, 0.01) || !near(g.ColumnWidth, 75.59, 0.01) {
		t.Fatalf("近似值不符: page=%g content=%g column=%g", g.Page.Width, g.Content.Width, g.ColumnWidth)
	}
	if len(Warnings(g)) != 0 {
		t.Fatalf("默认文档不应有警告: %v", Warnings(g))
	}
}

// TestCalibrationRescalesProportionally 只改变 PPI 时，像素值按比例缩放，源值不变。
func TestCalibrationRescalesProportionally(t *testing.T) {
	doc := model.Default()
	a := Compute(doc.Page, doc.Frame1, doc.Frame2, cal(96))
	b := Compute(doc.Page, doc.Frame1, doc.Frame2, cal(192))
	pairs := [][2]float64{
		{a.Page.Width, b.Page.Width},
		{a.Content.Height, b.Content.Height},
		{a.ColumnWidth, b.ColumnWidth},
		{a.Frame2.Y, b.Frame2.Y},
		{a.BaselinePitch, b.BaselinePitch},
	}
	for i, p := range pairs {
		if !near(p[1], 2*p[0], 1e-9) {
			t.Fatalf("第 %d 项未按比例缩放: %g -> %g", i, p[0], p[1])
		}
	}
	if doc.Page.WidthMm != 160 || doc.Frame1.Height() != 25 {
		t.Fatalf("源值被修改")
	}
	if back := PixelsToMillimeters(b.Page.Width, cal(192)); !near(back, 160, 1e-9) {
		t.Fatalf("px→mm 往返期望 160，实际 %g", back)
	}
}
