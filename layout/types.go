package layout

import "github.com/ByLCY/truescale/model"

// 该文件定义布局结果，供渲染、调试 JSON 与 HTTP 接口共用。所有坐标都是像素，
// 原点为页面左上角。

// Box 是一个矩形区域（px）。宽高可以为负，表示退化的配置。
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom 返回下边缘的 y 坐标。
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Right 返回右边缘的 x 坐标。
func (b Box) Right() float64 { return b.X + b.Width }

// Insets 记录四个方向的边距（px）。
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// ColumnBand 是一栏的水平范围。Left 相对内容区左边缘，X 为页面坐标。
type ColumnBand struct {
	Index int     `json:"index"`
	Left  float64 `json:"left"`
	X     float64 `json:"x"`
	Width float64 `json:"width"`
}

// Geometry 是布局引擎的输出。
type Geometry struct {
	PixelsPerMillimeter float64      `json:"pixelsPerMillimeter"`
	PixelsPerPoint      float64      `json:"pixelsPerPoint"`
	Page                Box          `json:"page"`
	Margins             Insets       `json:"margins"`
	Content             Box          `json:"content"`
	Gutter              float64      `json:"gutter"`
	ColumnWidth         float64      `json:"columnWidth"`
	Columns             []ColumnBand `json:"columns"`
	Frame1              Box          `json:"frame1"`
	Frame2              Box          `json:"frame2"`
	BaselinePitch       float64      `json:"baselinePitch"`
	BaselinePhase       float64      `json:"baselinePhase"`
}

// Preview 是一次完整预览所需的全部内容：几何、参考线、两个文本框与视图颜色。
type Preview struct {
	Geometry   Geometry      `json:"geometry"`
	Guides     Guides        `json:"guides"`
	Frames     [2]FrameBlock `json:"frames"`
	Background string        `json:"background"`
	Rotated    bool          `json:"rotated"`
	Warnings   []string      `json:"warnings,omitempty"`
	Debug      *PreviewDebug `json:"debug,omitempty"`
}

// FrameBlock 是一个文本框的样式描述与原始文本。
type FrameBlock struct {
	Name    string    `json:"name"`
	Style   TextStyle `json:"style"`
	Content string    `json:"content"`
}

// PreviewDebug 在调试 JSON 中保留作者输入的原始单位。
type PreviewDebug struct {
	RawUnits *RawUnits `json:"rawUnits,omitempty"`
}

// RawUnits 记录 mm/pt 源值与所用的校准。
type RawUnits struct {
	Page        model.PageConfig        `json:"page"`
	Frame1      RawFrameUnits           `json:"frame1"`
	Frame2      RawFrameUnits           `json:"frame2"`
	Calibration model.CalibrationConfig `json:"calibration"`
}

// RawFrameUnits 是文本框的源单位值。
type RawFrameUnits struct {
	FontSizePt float64       `json:"fontSizePt"`
	Leading    model.Leading `json:"leadingPt"`
	Tracking   int           `json:"tracking"`
	HeightMm   *float64      `json:"heightMm,omitempty"`
}
