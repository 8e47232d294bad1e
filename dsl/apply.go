package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/truescale/layout"
	"github.com/ByLCY/truescale/model"
)

// Apply 把 DSL 文档叠加到 base 上并返回新文档，base 本身不被修改。
// calibration 段落最先生效，使其它段落中的 px 长度按文档自己的校准换算。
func Apply(doc *Document, base model.Document) (model.Document, error) {
	if doc == nil {
		return model.Document{}, fmt.Errorf("文档为空")
	}
	out := base.Clone()

	for _, sec := range doc.Sections {
		if sec.Calibration == nil {
			continue
		}
		patch, err := calibrationPatch(sec.Calibration.Block)
		if err != nil {
			return model.Document{}, err
		}
		out.Calibration = model.ApplyCalibrationPatch(out.Calibration, patch)
	}

	for _, sec := range doc.Sections {
		switch {
		case sec.Page != nil:
			patch, err := pagePatch(sec.Page.Block, out.Calibration)
			if err != nil {
				return model.Document{}, err
			}
			page := model.ApplyPagePatch(out.Page, patch)
			if err := page.Validate(); err != nil {
				return model.Document{}, fmt.Errorf("%s: %w", sec.Page.Pos, err)
			}
			out.Page = page
		case sec.Frame != nil:
			if err := applyFrame(&out, sec.Frame); err != nil {
				return model.Document{}, err
			}
		case sec.View != nil:
			patch, err := viewPatch(sec.View.Block)
			if err != nil {
				return model.Document{}, err
			}
			out.View = model.ApplyViewPatch(out.View, patch)
		}
	}
	return out, nil
}

// Load 解析并应用一个 .proof 文件。
func Load(path string, base model.Document) (model.Document, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return model.Document{}, err
	}
	return Apply(doc, base)
}

func calibrationPatch(b *Block) (model.CalibrationPatch, error) {
	var patch model.CalibrationPatch
	err := eachAssignment(b, "calibration", func(a *Assignment) error {
		switch a.Key {
		case "ppi", "pixels-per-inch":
			v, err := number(a)
			if err != nil {
				return err
			}
			if v <= 0 {
				return posErrorf(a.Pos, "ppi 必须为正数，实际 %g", v)
			}
			patch.PixelsPerInch = &v
		default:
			return unknownKey(a, "calibration")
		}
		return nil
	})
	return patch, err
}

func pagePatch(b *Block, cal model.CalibrationConfig) (model.PagePatch, error) {
	var patch model.PagePatch
	err := eachAssignment(b, "page", func(a *Assignment) error {
		if a.Key == "columns" {
			n, err := integer(a)
			if err != nil {
				return err
			}
			if n < 1 {
				return posError(a.Pos, model.ErrInvalidColumns)
			}
			patch.Columns = &n
			return nil
		}
		var targets []**float64
		switch a.Key {
		case "width":
			targets = []**float64{&patch.WidthMm}
		case "height":
			targets = []**float64{&patch.HeightMm}
		case "margin":
			targets = []**float64{&patch.MarginTopMm, &patch.MarginRightMm, &patch.MarginBottomMm, &patch.MarginLeftMm}
		case "margin-top":
			targets = []**float64{&patch.MarginTopMm}
		case "margin-right":
			targets = []**float64{&patch.MarginRightMm}
		case "margin-bottom":
			targets = []**float64{&patch.MarginBottomMm}
		case "margin-left":
			targets = []**float64{&patch.MarginLeftMm}
		case "gutter":
			targets = []**float64{&patch.GutterMm}
		default:
			return unknownKey(a, "page")
		}
		mm, err := millimeters(a, cal)
		if err != nil {
			return err
		}
		for _, t := range targets {
			v := mm
			*t = &v
		}
		return nil
	})
	return patch, err
}

func applyFrame(out *model.Document, sec *FrameSection) error {
	var target *model.FrameStyle
	var content *string
	isHeader := false
	switch strings.ToLower(sec.Name) {
	case "header", "frame1":
		target, content, isHeader = &out.Frame1, &out.Content1, true
	case "body", "frame2":
		target, content = &out.Frame2, &out.Content2
	default:
		return posErrorf(sec.Pos, "未知文本框 %q（可选 header/body）", sec.Name)
	}

	var patch model.FramePatch
	var texts []string
	if sec.Block != nil {
		for _, st := range sec.Block.Statements {
			if st.Text != nil {
				texts = append(texts, string(st.Text.Value))
				continue
			}
			if err := framePatchEntry(&patch, st.Assignment, out.Calibration, isHeader); err != nil {
				return err
			}
		}
	}
	*target = model.ApplyFramePatch(*target, patch)
	if len(texts) > 0 {
		*content = strings.Join(texts, "\n")
	}
	return nil
}

func framePatchEntry(patch *model.FramePatch, a *Assignment, cal model.CalibrationConfig, isHeader bool) error {
	raw := a.Value.Raw()
	switch a.Key {
	case "font", "family":
		f, err := model.ParseFontFamily(raw)
		if err != nil {
			return posError(a.Pos, err)
		}
		patch.FontFamily = &f
	case "weight":
		w, err := model.ParseFontWeight(raw)
		if err != nil {
			return posError(a.Pos, err)
		}
		patch.FontWeight = &w
	case "style":
		s, err := model.ParseFontStyle(raw)
		if err != nil {
			return posError(a.Pos, err)
		}
		patch.FontStyle = &s
	case "size":
		pt, err := points(a, cal)
		if err != nil {
			return err
		}
		patch.FontSizePt = &pt
	case "leading":
		l, err := leading(a, cal)
		if err != nil {
			return err
		}
		patch.Leading = &l
	case "tracking":
		n, err := integer(a)
		if err != nil {
			return err
		}
		patch.Tracking = &n
	case "case":
		c, err := model.ParseTextCase(raw)
		if err != nil {
			return posError(a.Pos, err)
		}
		patch.TextCase = &c
	case "align":
		al, err := model.ParseTextAlign(raw)
		if err != nil {
			return posError(a.Pos, err)
		}
		patch.Alignment = &al
	case "height":
		if !isHeader {
			return posErrorf(a.Pos, "正文框高度由内容区剩余部分决定，不能设置 height")
		}
		mm, err := millimeters(a, cal)
		if err != nil {
			return err
		}
		patch.HeightMm = &mm
	default:
		return unknownKey(a, "frame")
	}
	return nil
}

func viewPatch(b *Block) (model.ViewPatch, error) {
	var patch model.ViewPatch
	err := eachAssignment(b, "view", func(a *Assignment) error {
		switch a.Key {
		case "rotated", "rotate":
			return setBool(&patch.Rotated, a)
		case "margins":
			return setBool(&patch.ShowMargins, a)
		case "columns":
			return setBool(&patch.ShowColumns, a)
		case "baseline":
			return setBool(&patch.ShowBaseline, a)
		case "guide-color":
			c, err := color(a)
			if err != nil {
				return err
			}
			patch.GuideColor = &c
		case "background":
			c, err := color(a)
			if err != nil {
				return err
			}
			patch.BackgroundColor = &c
		default:
			return unknownKey(a, "view")
		}
		return nil
	})
	return patch, err
}

func eachAssignment(b *Block, section string, fn func(*Assignment) error) error {
	if b == nil {
		return nil
	}
	for _, st := range b.Statements {
		if st.Text != nil {
			return posErrorf(st.Text.Pos, "%s 段落不接受文本内容", section)
		}
		if err := fn(st.Assignment); err != nil {
			return err
		}
	}
	return nil
}

func unknownKey(a *Assignment, section string) error {
	return posErrorf(a.Pos, "%s 段落中未知属性 %q", section, a.Key)
}

func posError(pos lexer.Position, err error) error {
	return fmt.Errorf("%s: %w", pos, err)
}

func posErrorf(pos lexer.Position, format string, args ...any) error {
	return fmt.Errorf("%s: %s", pos, fmt.Sprintf(format, args...))
}

func length(a *Assignment) (layout.Length, error) {
	if a.Value.Number == nil {
		return layout.Length{}, posErrorf(a.Pos, "%s 需要数值，实际 %q", a.Key, a.Value.Raw())
	}
	l, ok := layout.ParseRawLengthStr(*a.Value.Number)
	if !ok {
		return layout.Length{}, posErrorf(a.Pos, "无法解析 %s 的数值 %q", a.Key, *a.Value.Number)
	}
	return l, nil
}

func millimeters(a *Assignment, cal model.CalibrationConfig) (float64, error) {
	l, err := length(a)
	if err != nil {
		return 0, err
	}
	return l.WithDefault(layout.UnitMM).ToMMAt(cal), nil
}

func points(a *Assignment, cal model.CalibrationConfig) (float64, error) {
	l, err := length(a)
	if err != nil {
		return 0, err
	}
	return l.WithDefault(layout.UnitPT).ToPTAt(cal), nil
}

func number(a *Assignment) (float64, error) {
	l, err := length(a)
	if err != nil {
		return 0, err
	}
	if l.Unit != layout.UnitNone {
		return 0, posErrorf(a.Pos, "%s 不接受单位 %s", a.Key, layout.UnitToString(l.Unit))
	}
	return l.Value, nil
}

func integer(a *Assignment) (int, error) {
	if _, err := number(a); err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(*a.Value.Number)
	if err != nil {
		return 0, posErrorf(a.Pos, "%s 需要整数，实际 %q", a.Key, *a.Value.Number)
	}
	return n, nil
}

func leading(a *Assignment, cal model.CalibrationConfig) (model.Leading, error) {
	if a.Value.Number == nil {
		raw := a.Value.Raw()
		if !strings.EqualFold(raw, "auto") {
			return model.Leading{}, posErrorf(a.Pos, "leading 需要数值或 auto，实际 %q", raw)
		}
		return model.AutoLeading(), nil
	}
	pt, err := points(a, cal)
	if err != nil {
		return model.Leading{}, err
	}
	if pt == 0 {
		return model.AutoLeading(), nil
	}
	return model.FixedLeading(pt), nil
}

func setBool(dst **bool, a *Assignment) error {
	var v bool
	switch strings.ToLower(a.Value.Raw()) {
	case "true", "on", "yes":
		v = true
	case "false", "off", "no":
		v = false
	default:
		return posErrorf(a.Pos, "%s 需要 true/false，实际 %q", a.Key, a.Value.Raw())
	}
	*dst = &v
	return nil
}

func color(a *Assignment) (string, error) {
	if a.Value.Color == nil && a.Value.String == nil {
		return "", posErrorf(a.Pos, "%s 需要颜色（#RRGGBB 或字符串），实际 %q", a.Key, a.Value.Raw())
	}
	return a.Value.Raw(), nil
}
