package model

// DefaultContent1 与 DefaultContent2 是初始文档的页眉与正文文本。
const DefaultContent1 = "UNTITLED, 2023\nALESSANDRO FURCHINO CAPRIA"

const DefaultContent2 = `As we see it, there's quite a gulf between Saying vs Doing when it comes to "TO PUT YOUR FEET UP".

"TO PUT YOUR FEET UP" (Saying) sort of retains this almost midcentury patriarchal Man's Relaxation energy – it's Tidiness, it's Respectability, it's a Very Nice Ottoman. It's "YOU PUT YOUR FEET UP, LET ME TAKE CARE OF THINGS."

AND YET, the true NEED of PUTTING YOUR FEET UP is because you're probably f*cking drained. It's slouchy-socked, it's a face-first FLOP onto sofa. It's not permitted, it's required. That is the real, honest, putting of one's feet up (the Doing).`

// DefaultPixelsPerInch 只是高分屏的一个猜测值，需要用户校准。
const DefaultPixelsPerInch = 128

// Default 返回进程启动时的初始文档。
func Default() Document {
	headerHeight := 25.0
	return Document{
		Page: PageConfig{
			WidthMm:        160,
			HeightMm:       220,
			MarginTopMm:    10,
			MarginRightMm:  10,
			MarginBottomMm: 10,
			MarginLeftMm:   10,
			Columns:        7,
			GutterMm:       0,
		},
		Frame1: FrameStyle{
			FontFamily: FontMonumentGrotesk,
			FontWeight: WeightMedium,
			FontStyle:  StyleNormal,
			FontSizePt: 14,
			Leading:    FixedLeading(16.8),
			Tracking:   0,
			TextCase:   CaseUppercase,
			Alignment:  AlignLeft,
			HeightMm:   &headerHeight,
		},
		Frame2: FrameStyle{
			FontFamily: FontMarist,
			FontWeight: WeightRegular,
			FontStyle:  StyleNormal,
			FontSizePt: 12,
			Leading:    FixedLeading(14.4),
			Tracking:   0,
			TextCase:   CaseNormal,
			Alignment:  AlignLeft,
		},
		Content1:    DefaultContent1,
		Content2:    DefaultContent2,
		Calibration: CalibrationConfig{PixelsPerInch: DefaultPixelsPerInch},
		View: ViewConfig{
			Rotated:         true,
			ShowMargins:     true,
			ShowColumns:     true,
			ShowBaseline:    false,
			GuideColor:      "#00FFFF",
			BackgroundColor: "#808080",
		},
	}
}
