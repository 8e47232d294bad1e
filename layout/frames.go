package layout

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ByLCY/truescale/model"
)

// OverflowHidden 表示超出文本框的内容被裁掉，不重排也不缩放。
const OverflowHidden = "hidden"

// LineHeight 是行高：固定像素或无单位倍数，二者只有一个非零。
// auto 行距用倍数表达，使行高随实际渲染字号缩放，而不是固定的像素距离。
type LineHeight struct {
	Pixels     float64 `json:"pixels,omitempty"`
	Multiplier float64 `json:"multiplier,omitempty"`
}

// IsMultiplier 报告行高是否为倍数形式。
func (l LineHeight) IsMultiplier() bool { return l.Multiplier != 0 }

// Resolve 返回给定渲染字号下的行高（px）。
func (l LineHeight) Resolve(fontSizePx float64) float64 {
	if l.IsMultiplier() {
		return fontSizePx * l.Multiplier
	}
	return l.Pixels
}

// TextStyle 是交给文本引擎的样式描述。
type TextStyle struct {
	FontFamily      model.FontFamily `json:"fontFamily"`
	FontWeight      model.FontWeight `json:"fontWeight"`
	FontStyle       model.FontStyle  `json:"fontStyle"`
	FontSizePx      float64          `json:"fontSizePx"`
	LineHeight      LineHeight       `json:"lineHeight"`
	LetterSpacingEm float64          `json:"letterSpacingEm"`
	Transform       model.TextCase   `json:"textTransform"`
	Align           model.TextAlign  `json:"textAlign"`
	Box             Box              `json:"box"`
	Overflow        string           `json:"overflow"`
}

// LetterSpacingPx 返回字距的像素值。
func (s TextStyle) LetterSpacingPx() float64 {
	return s.LetterSpacingEm * s.FontSizePx
}

// ResolveTextStyle 把文本框样式与单位换算组合为渲染样式。
func ResolveTextStyle(style model.FrameStyle, box Box, cal model.CalibrationConfig) TextStyle {
	lh := LineHeight{Multiplier: model.AutoLeadingFactor}
	if pt, ok := style.Leading.Fixed(); ok {
		lh = LineHeight{Pixels: PointsToPixels(pt, cal)}
	}
	return TextStyle{
		FontFamily:      style.FontFamily,
		FontWeight:      style.FontWeight,
		FontStyle:       style.FontStyle,
		FontSizePx:      PointsToPixels(style.FontSizePt, cal),
		LineHeight:      lh,
		LetterSpacingEm: TrackingToEm(style.Tracking),
		Transform:       style.TextCase,
		Align:           style.Alignment,
		Box:             box,
		Overflow:        OverflowHidden,
	}
}

// ApplyCase 执行大小写变换。capitalize 只大写每个词的首字母，不改动其余字母。
func ApplyCase(text string, c model.TextCase) string {
	switch c {
	case model.CaseUppercase:
		return cases.Upper(language.Und).String(text)
	case model.CaseLowercase:
		return cases.Lower(language.Und).String(text)
	case model.CaseTitle:
		return cases.Title(language.Und, cases.NoLower).String(text)
	default:
		return text
	}
}
