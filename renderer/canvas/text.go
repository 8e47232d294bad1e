package canvasrenderer

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/truescale/fonts"
	"github.com/ByLCY/truescale/layout"
	"github.com/ByLCY/truescale/model"
)

// textLine 是换行后的一行，宽度不含行尾空白。
type textLine struct {
	Content      string
	Width        float64
	ParagraphEnd bool // 显式换行或全文结尾
}

// measurer 按字体与字距测量文本宽度。字距加在每个字符之后。
type measurer struct {
	face    *canvas.FontFace
	spacing float64
}

func (m measurer) width(s string) float64 {
	if s == "" {
		return 0
	}
	return m.face.TextWidth(s) + m.spacing*float64(utf8.RuneCountInString(s))
}

// drawFrame 在文本框内排版并绘制一段文本。起点低于框底部的行不绘制，
// 跨过框底部的行绘制后由 backdrop 重绘框下方区域，效果等同于按框底裁切。
func (r *Renderer) drawFrame(ctx *canvas.Context, fb layout.FrameBlock, off, scale, canvasWidth float64, backdrop func(layout.Box)) error {
	st := fb.Style
	box := scaleBox(st.Box, off, scale)
	if box.Width <= 0 || box.Height <= 0 || st.FontSizePx <= 0 {
		return nil
	}
	sizeUnits := st.FontSizePx * scale
	face, err := r.fontFace(st.FontFamily, st.FontWeight, st.FontStyle, toPt(sizeUnits), textColor)
	if err != nil {
		return err
	}
	m := measurer{face: face, spacing: st.LetterSpacingPx() * scale}

	lineHeight := st.LineHeight.Resolve(st.FontSizePx) * scale
	if lineHeight <= 0 {
		lineHeight = sizeUnits * model.AutoLeadingFactor
	}
	metrics := face.Metrics()
	// 行高与字形高度之差平分到上下两侧
	halfLeading := (lineHeight - (metrics.Ascent + math.Abs(metrics.Descent))) / 2

	content := layout.ApplyCase(fb.Content, st.Transform)
	lines := wrapLines(content, box.Width, m)
	const eps = 1e-6
	drawn := false
	for i, ln := range lines {
		top := box.Y + float64(i)*lineHeight
		if top >= box.Bottom()-eps {
			break
		}
		baseline := top + halfLeading + metrics.Ascent
		drawLine(ctx, m, ln, box, baseline, st.Align)
		drawn = true
	}
	if drawn && backdrop != nil {
		// 最后一行的字形最多延伸到框底部以下一个行高加一个字号
		backdrop(layout.Box{Y: box.Bottom(), Width: canvasWidth, Height: lineHeight + sizeUnits})
	}
	return nil
}

func drawLine(ctx *canvas.Context, m measurer, ln textLine, box layout.Box, baseline float64, align model.TextAlign) {
	if strings.TrimSpace(ln.Content) == "" {
		return
	}
	switch align {
	case model.AlignCenter:
		drawRun(ctx, m, ln.Content, box.X+(box.Width-ln.Width)/2, baseline)
	case model.AlignRight:
		drawRun(ctx, m, ln.Content, box.Right()-ln.Width, baseline)
	case model.AlignJustify:
		if ln.ParagraphEnd || !drawJustified(ctx, m, ln.Content, box, baseline) {
			drawRun(ctx, m, ln.Content, box.X, baseline)
		}
	default:
		drawRun(ctx, m, ln.Content, box.X, baseline)
	}
}

// drawJustified 把剩余宽度平均分配到词间。无法拉伸时返回 false。
func drawJustified(ctx *canvas.Context, m measurer, content string, box layout.Box, baseline float64) bool {
	words := strings.Fields(content)
	if len(words) < 2 {
		return false
	}
	total := 0.0
	for _, w := range words {
		total += m.width(w)
	}
	gap := (box.Width - total) / float64(len(words)-1)
	if gap < 0 {
		return false
	}
	x := box.X
	for _, w := range words {
		drawRun(ctx, m, w, x, baseline)
		x += m.width(w) + gap
	}
	return true
}

// drawRun 从 x 起绘制一段文本。有字距时逐字绘制。
func drawRun(ctx *canvas.Context, m measurer, s string, x, baseline float64) {
	if m.spacing == 0 {
		ctx.DrawText(x, baseline, canvas.NewTextLine(m.face, s, canvas.Left))
		return
	}
	for _, r := range s {
		g := string(r)
		if !unicode.IsSpace(r) {
			ctx.DrawText(x, baseline, canvas.NewTextLine(m.face, g, canvas.Left))
		}
		x += m.width(g)
	}
}

// wrapLines 使用贪心换行：优先在空白处断行，单词超过行宽时在词内拆分。
// 空白按原样保留，行尾空白悬挂在行外，不参与宽度与对齐。
func wrapLines(content string, width float64, m measurer) []textLine {
	limit := width
	if limit <= 0 {
		limit = math.MaxFloat64
	}

	var lines []textLine
	var builder strings.Builder
	currentWidth := 0.0

	emit := func(paragraphEnd bool) {
		str := strings.TrimRightFunc(builder.String(), unicode.IsSpace)
		if builder.Len() == 0 && !paragraphEnd {
			return
		}
		lines = append(lines, textLine{
			Content:      str,
			Width:        m.width(str),
			ParagraphEnd: paragraphEnd,
		})
		builder.Reset()
		currentWidth = 0
	}

	appendToken := func(token string) {
		builder.WriteString(token)
		currentWidth += m.width(token)
	}

	for _, token := range tokenizeContent(content) {
		if token == "\n" {
			emit(true)
			continue
		}
		if isSpaceToken(token) {
			// 悬挂空白：软换行后的行首空白丢弃
			if builder.Len() > 0 || len(lines) == 0 || lines[len(lines)-1].ParagraphEnd {
				appendToken(token)
			}
			continue
		}

		tokenWidth := m.width(token)
		if currentWidth > 0 && currentWidth+tokenWidth > limit && hasContent(&builder) {
			emit(false)
		}
		if tokenWidth <= limit {
			appendToken(token)
			continue
		}

		for _, chunk := range splitTokenByWidth(token, limit, m) {
			chunkWidth := m.width(chunk)
			if currentWidth > 0 && currentWidth+chunkWidth > limit && hasContent(&builder) {
				emit(false)
			}
			appendToken(chunk)
		}
	}

	emit(true)
	return lines
}

func hasContent(b *strings.Builder) bool {
	return strings.TrimSpace(b.String()) != ""
}

func isSpaceToken(token string) bool {
	r, _ := utf8.DecodeRuneInString(token)
	return unicode.IsSpace(r)
}

func tokenizeContent(s string) []string {
	var tokens []string
	var builder strings.Builder
	lastWasSpace := false
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		tokens = append(tokens, builder.String())
		builder.Reset()
	}

	for _, r := range s {
		if r == '\r' {
			continue
		}
		if r == '\n' {
			flush()
			tokens = append(tokens, "\n")
			lastWasSpace = false
			continue
		}
		isSpace := unicode.IsSpace(r)
		if builder.Len() == 0 {
			lastWasSpace = isSpace
		} else if lastWasSpace != isSpace {
			flush()
			lastWasSpace = isSpace
		}
		builder.WriteRune(r)
	}
	flush()
	return tokens
}

func splitTokenByWidth(token string, limit float64, m measurer) []string {
	if limit <= 0 || limit == math.MaxFloat64 {
		return []string{token}
	}
	var parts []string
	var builder strings.Builder
	for _, r := range token {
		builder.WriteRune(r)
		if m.width(builder.String()) > limit && utf8.RuneCountInString(builder.String()) > 1 {
			runes := []rune(builder.String())
			parts = append(parts, string(runes[:len(runes)-1]))
			builder.Reset()
			builder.WriteRune(r)
		}
	}
	if builder.Len() > 0 {
		parts = append(parts, builder.String())
	}
	return parts
}

func (r *Renderer) fontFace(family model.FontFamily, weight model.FontWeight, style model.FontStyle, sizePt float64, col color.Color) (*canvas.FontFace, error) {
	ff, err := r.ensureFontFamily(family, weight, style)
	if err != nil {
		return nil, err
	}
	return ff.Face(sizePt, col, canvas.FontRegular, canvas.FontNormal), nil
}

// ensureFontFamily 每个变体单独建一个字体家族并缓存。
func (r *Renderer) ensureFontFamily(family model.FontFamily, weight model.FontWeight, style model.FontStyle) (*canvas.FontFamily, error) {
	key := fonts.Key(family, weight, style)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if ff, ok := r.fontFamilies[key]; ok {
		return ff, nil
	}

	data, ok := r.fontBlobs[key]
	if !ok {
		var err error
		if data, err = r.library.Load(family, weight, style); err != nil {
			return nil, err
		}
	}
	ff := canvas.NewFontFamily(key)
	if err := ff.LoadFont(data, 0, canvas.FontRegular); err != nil {
		fallback := canvas.NewFontFamily(key + "|builtin")
		if fbErr := fallback.LoadFont(fonts.Builtin(weight, style), 0, canvas.FontRegular); fbErr != nil {
			return nil, fmt.Errorf("加载字体 %s 失败: %w", key, err)
		}
		ff = fallback
	}
	r.fontFamilies[key] = ff
	return ff, nil
}
