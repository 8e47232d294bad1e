package layout

import "github.com/ByLCY/truescale/model"

// 参考线的透明度与线宽（px）。
const (
	GuideLineWidth       = 1.0
	MarginGuideOpacity   = 0.5
	ColumnGuideOpacity   = 0.1
	BaselineGuideOpacity = 0.3

	maxBaselineRules = 10000
)

// Orientation 区分水平线与竖直线。
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// Rule 是一条 1px 的参考线，Box 为它覆盖的像素区域。
type Rule struct {
	Name        string      `json:"name,omitempty"`
	Orientation Orientation `json:"orientation"`
	Box         Box         `json:"box"`
}

// Guides 是参考线叠加层的绘制图元。三个开关都关闭时 Visible 为 false 且没有任何图元。
type Guides struct {
	Visible   bool    `json:"visible"`
	Color     string  `json:"color,omitempty"`
	Margins   []Rule  `json:"margins,omitempty"`
	Columns   []Box   `json:"columns,omitempty"`
	Baselines []Rule  `json:"baselines,omitempty"`
	Opacity   Opacity `json:"opacity"`
}

// Opacity 为每类参考线的不透明度。
type Opacity struct {
	Margins  float64 `json:"margins"`
	Columns  float64 `json:"columns"`
	Baseline float64 `json:"baseline"`
}

// BuildGuides 把几何与视图开关转换为参考线图元。
func BuildGuides(g Geometry, view model.ViewConfig) Guides {
	if !view.ShowMargins && !view.ShowColumns && !view.ShowBaseline {
		return Guides{}
	}
	out := Guides{
		Visible: true,
		Color:   view.GuideColor,
		Opacity: Opacity{
			Margins:  MarginGuideOpacity,
			Columns:  ColumnGuideOpacity,
			Baseline: BaselineGuideOpacity,
		},
	}
	if view.ShowMargins {
		out.Margins = marginRules(g)
	}
	if view.ShowColumns {
		out.Columns = columnRects(g)
	}
	if view.ShowBaseline {
		out.Baselines = baselineRules(g)
	}
	return out
}

// marginRules 上/左线位于边距处，下/右线从页面边缘向内量边距，线宽向内占 1px。
func marginRules(g Geometry) []Rule {
	w, h := g.Page.Width, g.Page.Height
	return []Rule{
		{Name: "top", Orientation: Horizontal, Box: Box{X: 0, Y: g.Margins.Top, Width: w, Height: GuideLineWidth}},
		{Name: "bottom", Orientation: Horizontal, Box: Box{X: 0, Y: h - g.Margins.Bottom - GuideLineWidth, Width: w, Height: GuideLineWidth}},
		{Name: "left", Orientation: Vertical, Box: Box{X: g.Margins.Left, Y: 0, Width: GuideLineWidth, Height: h}},
		{Name: "right", Orientation: Vertical, Box: Box{X: w - g.Margins.Right - GuideLineWidth, Y: 0, Width: GuideLineWidth, Height: h}},
	}
}

func columnRects(g Geometry) []Box {
	if len(g.Columns) == 0 {
		return nil
	}
	top := g.Margins.Top
	height := g.Page.Height - g.Margins.Bottom - top
	rects := make([]Box, len(g.Columns))
	for i, c := range g.Columns {
		rects[i] = Box{X: c.X, Y: top, Width: c.Width, Height: height}
	}
	return rects
}

// baselineRules 第一条线与上边距重合，之后每隔一个行距向下重复直到页面底部。
func baselineRules(g Geometry) []Rule {
	if g.BaselinePitch <= 0 {
		return nil
	}
	var rules []Rule
	for k := 0; k < maxBaselineRules; k++ {
		y := g.BaselinePhase + float64(k)*g.BaselinePitch
		if y >= g.Page.Height {
			break
		}
		rules = append(rules, Rule{
			Orientation: Horizontal,
			Box:         Box{X: 0, Y: y, Width: g.Page.Width, Height: GuideLineWidth},
		})
	}
	return rules
}
