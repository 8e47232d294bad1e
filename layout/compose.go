package layout

import "github.com/ByLCY/truescale/model"

// 文本框名称，与导出格式中的 frame1/frame2 对应。
const (
	Frame1Name = "frame1"
	Frame2Name = "frame2"
)

// Compose 从当前文档计算一次完整预览。每次调用都重新计算，不缓存。
func Compose(doc model.Document, opts ComposeOptions) *Preview {
	g := Compute(doc.Page, doc.Frame1, doc.Frame2, doc.Calibration)
	p := &Preview{
		Geometry: g,
		Guides:   BuildGuides(g, doc.View),
		Frames: [2]FrameBlock{
			{
				Name:    Frame1Name,
				Style:   ResolveTextStyle(doc.Frame1, g.Frame1, doc.Calibration),
				Content: doc.Content1,
			},
			{
				Name:    Frame2Name,
				Style:   ResolveTextStyle(doc.Frame2, g.Frame2, doc.Calibration),
				Content: doc.Content2,
			},
		},
		Background: doc.View.BackgroundColor,
		Rotated:    doc.View.Rotated,
		Warnings:   Warnings(g),
	}
	if opts.Debug.RawUnits {
		p.Debug = &PreviewDebug{RawUnits: &RawUnits{
			Page:        doc.Page,
			Frame1:      rawFrameUnits(doc.Frame1),
			Frame2:      rawFrameUnits(doc.Frame2),
			Calibration: doc.Calibration,
		}}
	}
	return p
}

func rawFrameUnits(s model.FrameStyle) RawFrameUnits {
	return RawFrameUnits{
		FontSizePt: s.FontSizePt,
		Leading:    s.Leading,
		Tracking:   s.Tracking,
		HeightMm:   s.HeightMm,
	}
}
