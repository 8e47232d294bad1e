package layout

import (
	"fmt"

	"github.com/ByLCY/truescale/model"
)

// Compute 根据页面、两个文本框样式与校准值推导全部像素几何。
// 不做任何截断：负的内容尺寸、负的正文高度都会原样传递。
// 栏数 <= 0 属于调用方应当拦截的输入错误，这里不产生栏而不是除以零。
func Compute(page model.PageConfig, frame1, frame2 model.FrameStyle, cal model.CalibrationConfig) Geometry {
	g := Geometry{
		PixelsPerMillimeter: PixelsPerMillimeter(cal),
		PixelsPerPoint:      PixelsPerPoint(cal),
	}

	// 1. 页面
	g.Page = Box{
		Width:  MillimetersToPixels(page.WidthMm, cal),
		Height: MillimetersToPixels(page.HeightMm, cal),
	}

	// 2. 边距
	g.Margins = Insets{
		Top:    MillimetersToPixels(page.MarginTopMm, cal),
		Right:  MillimetersToPixels(page.MarginRightMm, cal),
		Bottom: MillimetersToPixels(page.MarginBottomMm, cal),
		Left:   MillimetersToPixels(page.MarginLeftMm, cal),
	}

	// 3. 内容区
	g.Content = Box{
		X:      g.Margins.Left,
		Y:      g.Margins.Top,
		Width:  g.Page.Width - g.Margins.Left - g.Margins.Right,
		Height: g.Page.Height - g.Margins.Top - g.Margins.Bottom,
	}

	// 4. 分栏
	g.Gutter = MillimetersToPixels(page.GutterMm, cal)
	g.ColumnWidth, g.Columns = columnBands(g.Content, g.Gutter, page.Columns)

	// 5. 两个文本框纵向划分内容区
	frame1Height := MillimetersToPixels(frame1.Height(), cal)
	g.Frame1 = Box{
		X:      g.Content.X,
		Y:      g.Content.Y,
		Width:  g.Content.Width,
		Height: frame1Height,
	}
	g.Frame2 = Box{
		X:      g.Content.X,
		Y:      g.Content.Y + frame1Height,
		Width:  g.Content.Width,
		Height: g.Content.Height - frame1Height,
	}

	// 6. 基线网格：以正文行距为间距，从上边距开始
	g.BaselinePitch = PointsToPixels(BaseLeadingPt(frame2), cal)
	g.BaselinePhase = g.Margins.Top
	return g
}

// BaseLeadingPt 返回基线网格使用的行距（pt）：正文为 auto 时取字号的 1.2 倍。
func BaseLeadingPt(body model.FrameStyle) float64 {
	return body.Leading.Points(body.FontSizePt)
}

func columnBands(content Box, gutter float64, columns int) (float64, []ColumnBand) {
	if columns <= 0 {
		return 0, nil
	}
	totalGutter := gutter * float64(columns-1)
	width := (content.Width - totalGutter) / float64(columns)
	bands := make([]ColumnBand, columns)
	for i := range bands {
		left := float64(i) * (width + gutter)
		bands[i] = ColumnBand{
			Index: i,
			Left:  left,
			X:     content.X + left,
			Width: width,
		}
	}
	return width, bands
}

// Warnings 列出退化但仍会渲染的配置，不影响几何本身。
func Warnings(g Geometry) []string {
	var out []string
	if g.Content.Width < 0 {
		out = append(out, fmt.Sprintf("内容宽度为负（%.2fpx），左右边距超过页面宽度", g.Content.Width))
	}
	if g.Content.Height < 0 {
		out = append(out, fmt.Sprintf("内容高度为负（%.2fpx），上下边距超过页面高度", g.Content.Height))
	}
	if len(g.Columns) == 0 {
		out = append(out, "栏数小于 1，未生成分栏")
	} else if g.ColumnWidth < 0 {
		out = append(out, fmt.Sprintf("栏宽为负（%.2fpx），栏间距总和超过内容宽度", g.ColumnWidth))
	}
	if g.Frame2.Height < 0 {
		out = append(out, fmt.Sprintf("正文高度为负（%.2fpx），页眉高度超过内容高度", g.Frame2.Height))
	}
	return out
}
