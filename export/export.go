// Package export 生成排版参数的导出内容：结构化 JSON 快照与可粘贴到排版软件的纯文本块。
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/ByLCY/truescale/model"
)

// DefaultFilename 是 JSON 导出的默认下载文件名。
const DefaultFilename = "truescale-settings.json"

// writeClipboard 在测试中被替换。
var writeClipboard = clipboard.WriteAll

// PageSize 以带 mm 后缀的字符串记录页面尺寸。
type PageSize struct {
	Width  string `json:"width"`
	Height string `json:"height"`
}

// Margins 以带 mm 后缀的字符串记录四边边距。
type Margins struct {
	Top    string `json:"top"`
	Right  string `json:"right"`
	Bottom string `json:"bottom"`
	Left   string `json:"left"`
}

// Snapshot 是导出的结构化文档。文本框样式沿用文档记录的字段名。
type Snapshot struct {
	PageSize PageSize         `json:"pageSize"`
	Margins  Margins          `json:"margins"`
	Columns  int              `json:"columns"`
	Gutter   string           `json:"gutter"`
	Frame1   model.FrameStyle `json:"frame1"`
	Frame2   model.FrameStyle `json:"frame2"`
}

// NewSnapshot 从当前文档生成导出快照。
func NewSnapshot(doc model.Document) Snapshot {
	p := doc.Page
	c := doc.Clone()
	return Snapshot{
		PageSize: PageSize{Width: mm(p.WidthMm), Height: mm(p.HeightMm)},
		Margins: Margins{
			Top:    mm(p.MarginTopMm),
			Right:  mm(p.MarginRightMm),
			Bottom: mm(p.MarginBottomMm),
			Left:   mm(p.MarginLeftMm),
		},
		Columns: p.Columns,
		Gutter:  mm(p.GutterMm),
		Frame1:  c.Frame1,
		Frame2:  c.Frame2,
	}
}

// JSON 返回两空格缩进的导出 JSON。
func JSON(doc model.Document) ([]byte, error) {
	data, err := json.MarshalIndent(NewSnapshot(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("序列化导出快照失败: %w", err)
	}
	return data, nil
}

// WriteJSON 把导出 JSON 写入文件。
func WriteJSON(path string, doc model.Document) error {
	data, err := JSON(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建导出目录失败: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入导出文件失败: %w", err)
	}
	return nil
}

// Text 返回固定格式的排版参数文本块，首尾不含空行。
func Text(doc model.Document) string {
	var b strings.Builder
	b.WriteString("=== FRAME 1 (Header) ===\n")
	writeFrame(&b, doc.Frame1)
	fmt.Fprintf(&b, "Height: %smm\n", num(doc.Frame1.Height()))
	b.WriteString("\n=== FRAME 2 (Body) ===\n")
	writeFrame(&b, doc.Frame2)

	p := doc.Page
	b.WriteString("\n=== LAYOUT ===\n")
	fmt.Fprintf(&b, "Page: %s × %smm\n", num(p.WidthMm), num(p.HeightMm))
	fmt.Fprintf(&b, "Margins: T%s R%s B%s L%s mm\n",
		num(p.MarginTopMm), num(p.MarginRightMm), num(p.MarginBottomMm), num(p.MarginLeftMm))
	fmt.Fprintf(&b, "Columns: %d, Gutter: %smm", p.Columns, num(p.GutterMm))
	return b.String()
}

func writeFrame(b *strings.Builder, s model.FrameStyle) {
	italic := ""
	if s.FontStyle == model.StyleItalic {
		italic = " Italic"
	}
	fmt.Fprintf(b, "Font: %s %s%s\n", s.FontFamily, s.FontWeight, italic)
	fmt.Fprintf(b, "Size: %spt\n", num(s.FontSizePt))
	if pt, ok := s.Leading.Fixed(); ok {
		fmt.Fprintf(b, "Leading: %spt\n", num(pt))
	} else {
		b.WriteString("Leading: Auto\n")
	}
	fmt.Fprintf(b, "Tracking: %d\n", s.Tracking)
	fmt.Fprintf(b, "Case: %s\n", s.TextCase)
	fmt.Fprintf(b, "Alignment: %s\n", s.Alignment)
}

// ToClipboard 把文本写入系统剪贴板。
func ToClipboard(text string) error {
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("写入剪贴板失败: %w", err)
	}
	return nil
}

func mm(v float64) string { return num(v) + "mm" }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
