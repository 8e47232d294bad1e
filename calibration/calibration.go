// Package calibration 提供屏幕校准流程：参照物尺寸、像素密度控件的取值范围与预设。
package calibration

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ByLCY/truescale/layout"
	"github.com/ByLCY/truescale/model"
)

// ISO 7810 ID-1（银行卡）尺寸。
const (
	CardWidthMm  = 85.6
	CardHeightMm = 53.98
)

// 控件范围。
const (
	MinPPI = 72.0
	MaxPPI = 300.0
	Step   = 0.5

	// StripMaxHeightPx 限制页面宽度参照条的显示高度。
	StripMaxHeightPx = 400.0
)

// Preset 是控件下方的参考刻度。
type Preset struct {
	Label         string  `json:"label"`
	PixelsPerInch float64 `json:"pixelsPerInch"`
}

// Presets 依次为低分、标准、Retina 与高密度屏幕。
var Presets = []Preset{
	{Label: "Low Res (72)", PixelsPerInch: 72},
	{Label: "Standard (96)", PixelsPerInch: 96},
	{Label: "Retina (~220)", PixelsPerInch: 220},
	{Label: "High Density (300)", PixelsPerInch: 300},
}

// Reference 是一个参照物：像素矩形与其标注。
type Reference struct {
	Name  string     `json:"name"`
	Box   layout.Box `json:"box"`
	Label string     `json:"label"`
}

// Sheet 是校准界面的全部绘制内容。Card 与 Strip 都通过与预览相同的 mm→px 换算得到。
type Sheet struct {
	PixelsPerInch float64   `json:"pixelsPerInch"`
	Card          Reference `json:"card"`
	Strip         Reference `json:"strip"`
	ScaleLabel    string    `json:"scaleLabel"`
	Presets       []Preset  `json:"presets"`
	Min           float64   `json:"min"`
	Max           float64   `json:"max"`
	Step          float64   `json:"step"`
}

// Snap 把控件输入限制在 [72, 300] 并取最近的 0.5 步进。
func Snap(ppi float64) float64 {
	if math.IsNaN(ppi) {
		return MinPPI
	}
	v := math.Round(ppi/Step) * Step
	return math.Max(MinPPI, math.Min(MaxPPI, v))
}

// References 计算给定页面与校准下的参照物。参照条宽度为页面宽度，高度封顶 400px。
func References(page model.PageConfig, cal model.CalibrationConfig) Sheet {
	stripHeight := math.Min(layout.MillimetersToPixels(page.HeightMm, cal), StripMaxHeightPx)
	return Sheet{
		PixelsPerInch: cal.PixelsPerInch,
		Card: Reference{
			Name: "card",
			Box: layout.Box{
				Width:  layout.MillimetersToPixels(CardWidthMm, cal),
				Height: layout.MillimetersToPixels(CardHeightMm, cal),
			},
			Label: formatMm(CardWidthMm),
		},
		Strip: Reference{
			Name: "page-width",
			Box: layout.Box{
				Width:  layout.MillimetersToPixels(page.WidthMm, cal),
				Height: stripHeight,
			},
			Label: formatMm(page.WidthMm),
		},
		ScaleLabel: fmt.Sprintf("%d px/in", int(math.Round(cal.PixelsPerInch))),
		Presets:    Presets,
		Min:        MinPPI,
		Max:        MaxPPI,
		Step:       Step,
	}
}

func formatMm(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "mm"
}
