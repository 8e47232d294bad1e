package dsl

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/truescale/model"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)

// Format 把文档写成 .proof 源码，Apply 之后还原为同一文档。
// name 会被整理成合法的标识符。
func Format(name string, doc model.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "doc %s v1 {\n", DocumentName(name))

	p := doc.Page
	b.WriteString("  page {\n")
	prop(&b, "width", num(p.WidthMm)+"mm")
	prop(&b, "height", num(p.HeightMm)+"mm")
	prop(&b, "margin-top", num(p.MarginTopMm)+"mm")
	prop(&b, "margin-right", num(p.MarginRightMm)+"mm")
	prop(&b, "margin-bottom", num(p.MarginBottomMm)+"mm")
	prop(&b, "margin-left", num(p.MarginLeftMm)+"mm")
	prop(&b, "columns", strconv.Itoa(p.Columns))
	prop(&b, "gutter", num(p.GutterMm)+"mm")
	b.WriteString("  }\n")

	writeFrame(&b, "header", doc.Frame1, doc.Content1)
	writeFrame(&b, "body", doc.Frame2, doc.Content2)

	// 非正的 ppi 不能被解析回来，这时省略整个段落
	if doc.Calibration.PixelsPerInch > 0 {
		b.WriteString("  calibration {\n")
		prop(&b, "ppi", num(doc.Calibration.PixelsPerInch))
		b.WriteString("  }\n")
	}

	v := doc.View
	b.WriteString("  view {\n")
	prop(&b, "rotated", strconv.FormatBool(v.Rotated))
	prop(&b, "margins", strconv.FormatBool(v.ShowMargins))
	prop(&b, "columns", strconv.FormatBool(v.ShowColumns))
	prop(&b, "baseline", strconv.FormatBool(v.ShowBaseline))
	prop(&b, "guide-color", colorValue(v.GuideColor))
	prop(&b, "background", colorValue(v.BackgroundColor))
	b.WriteString("  }\n")

	b.WriteString("}\n")
	return b.String()
}

// DocumentName 把任意字符串转换为 doc 之后可用的标识符：非法字符替换为 _，
// 不以字母或 _ 开头时前置 _，为空时使用 truescale。
func DocumentName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "truescale"
	}
	out := strings.Map(func(r rune) rune {
		if isIdentRune(r) || r == '-' || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, name)
	if !isIdentRune(rune(out[0])) {
		out = "_" + out
	}
	return out
}

func isIdentRune(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func writeFrame(b *strings.Builder, name string, s model.FrameStyle, content string) {
	fmt.Fprintf(b, "  frame %s {\n", name)
	prop(b, "font", strconv.Quote(string(s.FontFamily)))
	prop(b, "weight", string(s.FontWeight))
	prop(b, "style", string(s.FontStyle))
	prop(b, "size", num(s.FontSizePt)+"pt")
	if pt, ok := s.Leading.Fixed(); ok && pt != 0 {
		prop(b, "leading", num(pt)+"pt")
	} else {
		prop(b, "leading", "auto")
	}
	prop(b, "tracking", strconv.Itoa(s.Tracking))
	prop(b, "case", string(s.TextCase))
	prop(b, "align", string(s.Alignment))
	if name == "header" && s.HeightMm != nil {
		prop(b, "height", num(*s.HeightMm)+"mm")
	}
	fmt.Fprintf(b, "    %s\n", strconv.Quote(content))
	b.WriteString("  }\n")
}

func prop(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "    %s: %s\n", key, value)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func colorValue(c string) string {
	if hexColor.MatchString(c) {
		return c
	}
	return strconv.Quote(c)
}
