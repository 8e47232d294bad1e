package model

// 该文件定义文档的领域模型：页面、文本框样式、校准与视图配置。
// 所有长度以毫米（mm）保存，字号与行距以点（pt）保存，像素只在布局阶段出现。

// FontFamily 是可选的三种字体家族。
type FontFamily string

const (
	FontMonumentGrotesk FontFamily = "ABC Monument Grotesk"
	FontMarist          FontFamily = "ABC Marist"
	FontMaristBook      FontFamily = "ABC Marist Book"
)

// FontWeight 是字重的数字记号，只允许 "400" 与 "500"。
type FontWeight string

const (
	WeightRegular FontWeight = "400"
	WeightMedium  FontWeight = "500"
)

// FontStyle 为 normal 或 italic。
type FontStyle string

const (
	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"
)

// TextCase 对应文本大小写变换。TitleCase 的取值沿用导出格式中的 "capitalize"。
type TextCase string

const (
	CaseNormal    TextCase = "normal"
	CaseUppercase TextCase = "uppercase"
	CaseLowercase TextCase = "lowercase"
	CaseTitle     TextCase = "capitalize"
)

// TextAlign 为水平对齐方式。
type TextAlign string

const (
	AlignLeft    TextAlign = "left"
	AlignCenter  TextAlign = "center"
	AlignRight   TextAlign = "right"
	AlignJustify TextAlign = "justify"
)

// FrameStyle 描述一个文本框的排版样式。
// HeightMm 只对第一个（页眉）文本框生效；正文文本框占据剩余高度。
type FrameStyle struct {
	FontFamily FontFamily `json:"fontFamily"`
	FontWeight FontWeight `json:"fontWeight"`
	FontStyle  FontStyle  `json:"fontStyle"`
	FontSizePt float64    `json:"fontSizePt"`
	Leading    Leading    `json:"leadingPt"`
	Tracking   int        `json:"tracking"` // 1/1000 em，可为负
	TextCase   TextCase   `json:"textCase"`
	Alignment  TextAlign  `json:"alignment"`
	HeightMm   *float64   `json:"heightMm,omitempty"`
}

// Height 返回固定高度（mm），未设置时为 0。
func (s FrameStyle) Height() float64 {
	if s.HeightMm == nil {
		return 0
	}
	return *s.HeightMm
}

// PageConfig 描述页面的物理尺寸（mm）。
type PageConfig struct {
	WidthMm        float64 `json:"widthMm"`
	HeightMm       float64 `json:"heightMm"`
	MarginTopMm    float64 `json:"marginTopMm"`
	MarginRightMm  float64 `json:"marginRightMm"`
	MarginBottomMm float64 `json:"marginBottomMm"`
	MarginLeftMm   float64 `json:"marginLeftMm"`
	Columns        int     `json:"columns"`
	GutterMm       float64 `json:"gutterMm"`
}

// Validate 只检查栏数：布局引擎需要用它做除数。
// 负的内容尺寸不是错误，预览会直接显示退化的结果。
func (p PageConfig) Validate() error {
	if p.Columns < 1 {
		return ErrInvalidColumns
	}
	return nil
}

// CalibrationConfig 保存屏幕的每英寸像素数（CSS 像素）。
// 72–300 的范围只由校准控件限制，这里不做检查。
type CalibrationConfig struct {
	PixelsPerInch float64 `json:"pixelsPerInch"`
}

// ViewConfig 是纯展示状态。
type ViewConfig struct {
	Rotated         bool   `json:"rotated"`
	ShowMargins     bool   `json:"showMargins"`
	ShowColumns     bool   `json:"showColumns"`
	ShowBaseline    bool   `json:"showBaseline"`
	GuideColor      string `json:"guideColor"`
	BackgroundColor string `json:"backgroundColor"`
}

// Document 是当前会话中唯一的文档：一页、两个文本框及其内容。
type Document struct {
	Page        PageConfig        `json:"page"`
	Frame1      FrameStyle        `json:"frame1"`
	Frame2      FrameStyle        `json:"frame2"`
	Content1    string            `json:"content1"`
	Content2    string            `json:"content2"`
	Calibration CalibrationConfig `json:"calibration"`
	View        ViewConfig        `json:"view"`
}
