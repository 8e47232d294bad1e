package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ByLCY/truescale/calibration"
	"github.com/ByLCY/truescale/fonts"
	"github.com/ByLCY/truescale/layout"
	"github.com/ByLCY/truescale/model"
	"github.com/ByLCY/truescale/renderer"
)

// DefaultPasteboardPx 是页面四周露出的背景宽度（px）。
const DefaultPasteboardPx = 48.0

var textColor = canvas.Black

// Renderer draws previews and calibration sheets via github.com/tdewolff/canvas.
type Renderer struct {
	pasteboard float64
	library    *fonts.Library

	// injected font overrides, by fonts.Key
	fontBlobs map[string][]byte

	fontMu       sync.Mutex
	fontFamilies map[string]*canvas.FontFamily
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the canvas renderer.
type Options struct {
	// FontDir 中的文件按 fonts.FileName 命名，覆盖内置替身字体。
	FontDir string
	// Fonts 以 fonts.Key 为键注入字体，优先级最高。
	Fonts map[string]Resource
	// PasteboardPx 为 0 时使用 DefaultPasteboardPx，负数表示不留背景。
	PasteboardPx float64
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer that only uses the built-in fonts.
func NewRenderer() *Renderer { return newRenderer(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts. A font given by
// Path that cannot be read is an error.
func NewRendererWithOptions(opts Options) (*Renderer, error) {
	r := newRenderer(opts)
	for key, res := range opts.Fonts {
		if key == "" || len(res.Bytes) > 0 || res.Path == "" {
			continue
		}
		data, err := os.ReadFile(res.Path)
		if err != nil {
			return nil, fmt.Errorf("读取字体 %s 失败: %w", key, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("字体文件 %s 为空", res.Path)
		}
		r.fontBlobs[key] = data
	}
	return r, nil
}

func newRenderer(opts Options) *Renderer {
	pad := opts.PasteboardPx
	switch {
	case pad == 0:
		pad = DefaultPasteboardPx
	case pad < 0:
		pad = 0
	}
	r := &Renderer{
		pasteboard:   pad,
		library:      fonts.NewLibrary(opts.FontDir),
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*canvas.FontFamily{},
	}
	for key, res := range opts.Fonts {
		if key == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[key] = res.Bytes
		}
	}
	return r
}

// RenderPreview 绘制背景、白色页面、两个文本框，最后叠加参考线。
func (r *Renderer) RenderPreview(p *layout.Preview, f renderer.Format) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("预览为空")
	}
	page := p.Geometry.Page
	if page.Width <= 0 || page.Height <= 0 {
		return nil, fmt.Errorf("页面尺寸无效: %.2f × %.2f px", page.Width, page.Height)
	}
	scale := unitScale(f, p.Geometry.PixelsPerMillimeter)
	pad := r.pasteboard * scale
	width := page.Width*scale + 2*pad
	height := page.Height*scale + 2*pad

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	ctx.SetStrokeColor(canvas.Transparent)

	bg := parseColor(p.Background, canvas.Hex("#808080"))
	pageBox := layout.Box{X: pad, Y: pad, Width: page.Width * scale, Height: page.Height * scale}
	// backdrop 重绘 region 内的背景与白色页面，用来裁掉溢出文本框的字形
	backdrop := func(region layout.Box) {
		if pad > 0 {
			fillRect(ctx, region, bg, 1)
		}
		fillRect(ctx, intersect(region, pageBox), canvas.White, 1)
	}
	backdrop(layout.Box{Width: width, Height: height})

	// 页眉先于正文绘制，页眉下方的重绘不会盖住正文
	for _, fb := range p.Frames {
		if err := r.drawFrame(ctx, fb, pad, scale, width, backdrop); err != nil {
			return nil, err
		}
	}
	drawGuides(ctx, p.Guides, pad, scale)

	return encode(c, width, height, f, p.Rotated)
}

// RenderCalibration 绘制银行卡与页面宽度参照条，下方为标注。
func (r *Renderer) RenderCalibration(s *calibration.Sheet, f renderer.Format) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("校准参照为空")
	}
	if s.PixelsPerInch <= 0 {
		return nil, fmt.Errorf("像素密度无效: %g", s.PixelsPerInch)
	}
	const (
		padPx      = 32.0
		gapPx      = 64.0
		labelGapPx = 8.0
		labelPx    = 12.0
	)
	scale := unitScale(f, s.PixelsPerInch/layout.MmPerInch)
	card, strip := s.Card.Box, s.Strip.Box
	if strip.Width < 0 {
		strip.Width = 0
	}
	shapesH := max(card.Height, strip.Height)
	width := (2*padPx + card.Width + gapPx + strip.Width) * scale
	height := (2*padPx + labelPx*2 + labelGapPx + shapesH + labelGapPx + labelPx*1.5) * scale

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetStrokeColor(canvas.Transparent)
	fillRect(ctx, layout.Box{Width: width, Height: height}, canvas.Hex("#111111"), 1)

	labelFace, err := r.fontFace(model.FontMonumentGrotesk, model.WeightRegular, model.StyleNormal, toPt(labelPx*scale), canvas.Hex("#CCCCCC"))
	if err != nil {
		return nil, err
	}
	scaleY := (padPx + labelPx) * scale
	ctx.DrawText(padPx*scale, scaleY, canvas.NewTextLine(labelFace, s.ScaleLabel, canvas.Left))

	bottom := padPx + labelPx*2 + labelGapPx + shapesH
	cardBox := layout.Box{X: padPx, Y: bottom - card.Height, Width: card.Width, Height: card.Height}
	stripBox := layout.Box{X: padPx + card.Width + gapPx, Y: bottom - strip.Height, Width: strip.Width, Height: strip.Height}

	fillRect(ctx, scaleBox(cardBox, 0, scale), canvas.Hex("#EF4444"), 1)
	fillRect(ctx, scaleBox(stripBox, 0, scale), canvas.Hex("#3B82F6"), 0.1)
	ctx.SetStrokeColor(canvas.Hex("#3B82F6"))
	ctx.SetStrokeWidth(2 * scale)
	sb := scaleBox(stripBox, 0, scale)
	ctx.SetFillColor(canvas.Transparent)
	ctx.DrawPath(sb.X, sb.Y, canvas.Rectangle(sb.Width, sb.Height))
	ctx.SetStrokeColor(canvas.Transparent)

	labelY := (bottom + labelGapPx + labelPx) * scale
	ctx.DrawText((cardBox.X+cardBox.Width/2)*scale, labelY, canvas.NewTextLine(labelFace, s.Card.Label, canvas.Center))
	ctx.DrawText((stripBox.X+stripBox.Width/2)*scale, labelY, canvas.NewTextLine(labelFace, s.Strip.Label, canvas.Center))

	return encode(c, width, height, f, false)
}

// unitScale 返回每个布局像素对应的画布单位。画布单位在 PDF/SVG 中按毫米解释，
// PNG 以每单位一个像素栅格化。
func unitScale(f renderer.Format, pixelsPerMillimeter float64) float64 {
	if f == renderer.FormatPNG || pixelsPerMillimeter <= 0 {
		return 1
	}
	return 1 / pixelsPerMillimeter
}

func encode(c *canvas.Canvas, width, height float64, f renderer.Format, rotate bool) ([]byte, error) {
	var buf bytes.Buffer
	switch f {
	case renderer.FormatPDF:
		writer := pdf.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 PDF 失败: %w", err)
		}
	case renderer.FormatSVG:
		writer := svg.New(&buf, width, height, nil)
		c.RenderTo(writer)
		if err := writer.Close(); err != nil {
			return nil, fmt.Errorf("写入 SVG 失败: %w", err)
		}
	case renderer.FormatPNG:
		var img image.Image = rasterizer.Draw(c, canvas.DPMM(1), canvas.DefaultColorSpace)
		if rotate {
			img = rotateClockwise(img)
		}
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("写入 PNG 失败: %w", err)
		}
	default:
		return nil, fmt.Errorf("不支持的输出格式 %q", f)
	}
	return buf.Bytes(), nil
}

// rotateClockwise 把图像顺时针旋转 90°，像素一一对应，不做插值。
func rotateClockwise(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	// (x, y) -> (h - y, x)
	s2d := f64.Aff3{
		0, -1, float64(h) + float64(b.Min.Y),
		1, 0, -float64(b.Min.X),
	}
	draw.NearestNeighbor.Transform(dst, s2d, src, b, draw.Src, nil)
	return dst
}

func drawGuides(ctx *canvas.Context, g layout.Guides, off, scale float64) {
	if !g.Visible {
		return
	}
	col := parseColor(g.Color, canvas.Hex("#00FFFF"))
	for _, b := range g.Columns {
		fillRect(ctx, scaleBox(b, off, scale), col, g.Opacity.Columns)
	}
	for _, rule := range g.Baselines {
		fillRect(ctx, scaleBox(rule.Box, off, scale), col, g.Opacity.Baseline)
	}
	for _, rule := range g.Margins {
		fillRect(ctx, scaleBox(rule.Box, off, scale), col, g.Opacity.Margins)
	}
}

func fillRect(ctx *canvas.Context, b layout.Box, col color.RGBA, opacity float64) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	ctx.SetFillColor(withOpacity(col, opacity))
	ctx.DrawPath(b.X, b.Y, canvas.Rectangle(b.Width, b.Height))
}

// intersect 返回两个矩形的交集，不相交时宽或高不为正。
func intersect(a, b layout.Box) layout.Box {
	x0, y0 := max(a.X, b.X), max(a.Y, b.Y)
	x1, y1 := min(a.Right(), b.Right()), min(a.Bottom(), b.Bottom())
	return layout.Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

func scaleBox(b layout.Box, off, scale float64) layout.Box {
	return layout.Box{
		X:      off + b.X*scale,
		Y:      off + b.Y*scale,
		Width:  b.Width * scale,
		Height: b.Height * scale,
	}
}

func withOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, opacity)
}

// parseColor 接受 #RGB/#RRGGBB/#RRGGBBAA，其余回落到 fallback。
func parseColor(s string, fallback color.RGBA) color.RGBA {
	if len(s) == 0 || s[0] != '#' {
		return fallback
	}
	switch len(s) {
	case 4, 7, 9:
		for _, ch := range s[1:] {
			if !isHex(ch) {
				return fallback
			}
		}
		return canvas.Hex(s)
	}
	return fallback
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// toPt 将画布单位（按 mm 解释）转换为字体系统使用的点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }
