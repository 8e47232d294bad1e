package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ByLCY/truescale/model"
)

const defaultText = `=== FRAME 1 (Header) ===
Font: ABC Monument Grotesk 500
Size: 14pt
Leading: 16.8pt
Tracking: 0
Case: uppercase
Alignment: left
Height: 25mm

=== FRAME 2 (Body) ===
Font: ABC Marist 400
Size: 12pt
Leading: 14.4pt
Tracking: 0
Case: normal
Alignment: left

=== LAYOUT ===
Page: 160 × 220mm
Margins: T10 R10 B10 L10 mm
Columns: 7, Gutter: 0mm`

func TestTextDefaultDocument(t *testing.T) {
	if got := Text(model.Default()); got != defaultText {
		t.Fatalf("文本导出不一致:\n%s\n---\n%s", got, defaultText)
	}
}

func TestTextItalicAndAutoLeading(t *testing.T) {
	doc := model.Default()
	doc.Frame2.FontStyle = model.StyleItalic
	doc.Frame2.Leading = model.AutoLeading()
	doc.Frame2.Tracking = -25
	got := Text(doc)
	for _, want := range []string{"Font: ABC Marist 400 Italic\n", "Leading: Auto\n", "Tracking: -25\n"} {
		if !strings.Contains(got, want) {
			t.Fatalf("文本导出缺少 %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "Height:") != 1 {
		t.Fatalf("只有页眉输出高度:\n%s", got)
	}
}

func TestJSONShape(t *testing.T) {
	doc := model.Default()
	doc.Page.GutterMm = 4.5
	data, err := JSON(doc)
	if err != nil {
		t.Fatalf("导出 JSON 失败: %v", err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"pageSize\": {\n    \"width\": \"160mm\"") {
		t.Fatalf("JSON 应以两空格缩进且以 pageSize 开头:\n%s", data)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("解析导出 JSON 失败: %v", err)
	}
	margins := out["margins"].(map[string]any)
	if margins["left"] != "10mm" || out["gutter"] != "4.5mm" || out["columns"] != float64(7) {
		t.Fatalf("页面字段错误: %v", out)
	}
	frame1 := out["frame1"].(map[string]any)
	for _, key := range []string{"fontFamily", "fontWeight", "fontStyle", "fontSizePt", "leadingPt", "tracking", "textCase", "alignment", "heightMm"} {
		if _, ok := frame1[key]; !ok {
			t.Fatalf("frame1 缺少字段 %s: %v", key, frame1)
		}
	}
	frame2 := out["frame2"].(map[string]any)
	if _, ok := frame2["heightMm"]; ok {
		t.Fatalf("frame2 不应输出 heightMm: %v", frame2)
	}
	if frame2["leadingPt"] != 14.4 {
		t.Fatalf("frame2 行距错误: %v", frame2["leadingPt"])
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFilename)
	if err := WriteJSON(path, model.Default()); err != nil {
		t.Fatalf("写入导出文件失败: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取导出文件失败: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("解析导出文件失败: %v", err)
	}
	if snap.PageSize.Height != "220mm" || snap.Frame1.Height() != 25 {
		t.Fatalf("导出快照错误: %+v", snap)
	}
}

func TestToClipboard(t *testing.T) {
	var got string
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(text string) error { got = text; return nil }
	if err := ToClipboard("hello"); err != nil || got != "hello" {
		t.Fatalf("剪贴板写入错误: %v %q", err, got)
	}
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	if err := ToClipboard("x"); err == nil || !strings.Contains(err.Error(), "no clipboard") {
		t.Fatalf("应返回包装后的错误，实际 %v", err)
	}
}
