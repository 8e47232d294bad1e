package model

// 补丁类型：指针字段为 nil 表示保持原值。Apply* 函数都是纯函数，返回新值。

// PagePatch 是 PageConfig 的部分更新。
type PagePatch struct {
	WidthMm        *float64 `json:"widthMm,omitempty"`
	HeightMm       *float64 `json:"heightMm,omitempty"`
	MarginTopMm    *float64 `json:"marginTopMm,omitempty"`
	MarginRightMm  *float64 `json:"marginRightMm,omitempty"`
	MarginBottomMm *float64 `json:"marginBottomMm,omitempty"`
	MarginLeftMm   *float64 `json:"marginLeftMm,omitempty"`
	Columns        *int     `json:"columns,omitempty"`
	GutterMm       *float64 `json:"gutterMm,omitempty"`
}

// FramePatch 是 FrameStyle 的部分更新。
type FramePatch struct {
	FontFamily *FontFamily `json:"fontFamily,omitempty"`
	FontWeight *FontWeight `json:"fontWeight,omitempty"`
	FontStyle  *FontStyle  `json:"fontStyle,omitempty"`
	FontSizePt *float64    `json:"fontSizePt,omitempty"`
	Leading    *Leading    `json:"leadingPt,omitempty"`
	Tracking   *int        `json:"tracking,omitempty"`
	TextCase   *TextCase   `json:"textCase,omitempty"`
	Alignment  *TextAlign  `json:"alignment,omitempty"`
	HeightMm   *float64    `json:"heightMm,omitempty"`
}

// CalibrationPatch 是 CalibrationConfig 的部分更新。
type CalibrationPatch struct {
	PixelsPerInch *float64 `json:"pixelsPerInch,omitempty"`
}

// ViewPatch 是 ViewConfig 的部分更新。
type ViewPatch struct {
	Rotated         *bool   `json:"rotated,omitempty"`
	ShowMargins     *bool   `json:"showMargins,omitempty"`
	ShowColumns     *bool   `json:"showColumns,omitempty"`
	ShowBaseline    *bool   `json:"showBaseline,omitempty"`
	GuideColor      *string `json:"guideColor,omitempty"`
	BackgroundColor *string `json:"backgroundColor,omitempty"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ApplyPagePatch 逐字段覆盖，未出现在补丁中的字段保持不变。
func ApplyPagePatch(current PageConfig, patch PagePatch) PageConfig {
	next := current
	set(&next.WidthMm, patch.WidthMm)
	set(&next.HeightMm, patch.HeightMm)
	set(&next.MarginTopMm, patch.MarginTopMm)
	set(&next.MarginRightMm, patch.MarginRightMm)
	set(&next.MarginBottomMm, patch.MarginBottomMm)
	set(&next.MarginLeftMm, patch.MarginLeftMm)
	set(&next.Columns, patch.Columns)
	set(&next.GutterMm, patch.GutterMm)
	return next
}

// ApplyFramePatch 逐字段覆盖。HeightMm 会复制一份，避免与补丁共享指针。
func ApplyFramePatch(current FrameStyle, patch FramePatch) FrameStyle {
	next := current
	set(&next.FontFamily, patch.FontFamily)
	set(&next.FontWeight, patch.FontWeight)
	set(&next.FontStyle, patch.FontStyle)
	set(&next.FontSizePt, patch.FontSizePt)
	set(&next.Leading, patch.Leading)
	set(&next.Tracking, patch.Tracking)
	set(&next.TextCase, patch.TextCase)
	set(&next.Alignment, patch.Alignment)
	if patch.HeightMm != nil {
		h := *patch.HeightMm
		next.HeightMm = &h
	} else if current.HeightMm != nil {
		h := *current.HeightMm
		next.HeightMm = &h
	}
	return next
}

func ApplyCalibrationPatch(current CalibrationConfig, patch CalibrationPatch) CalibrationConfig {
	next := current
	set(&next.PixelsPerInch, patch.PixelsPerInch)
	return next
}

func ApplyViewPatch(current ViewConfig, patch ViewPatch) ViewConfig {
	next := current
	set(&next.Rotated, patch.Rotated)
	set(&next.ShowMargins, patch.ShowMargins)
	set(&next.ShowColumns, patch.ShowColumns)
	set(&next.ShowBaseline, patch.ShowBaseline)
	set(&next.GuideColor, patch.GuideColor)
	set(&next.BackgroundColor, patch.BackgroundColor)
	return next
}

// Clone 返回不与原文档共享指针的副本。
func (d Document) Clone() Document {
	out := d
	out.Frame1 = ApplyFramePatch(d.Frame1, FramePatch{})
	out.Frame2 = ApplyFramePatch(d.Frame2, FramePatch{})
	return out
}
