package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/truescale/model"
)

func TestFileName(t *testing.T) {
	got := FileName(model.FontMonumentGrotesk, model.WeightMedium, model.StyleItalic)
	if got != "abc-monument-grotesk-500-italic" {
		t.Fatalf("文件名错误: %s", got)
	}
	if got := FileName(model.FontMarist, model.WeightRegular, model.StyleNormal); got != "abc-marist-400" {
		t.Fatalf("文件名错误: %s", got)
	}
}

func TestBuiltinFallback(t *testing.T) {
	lib := NewLibrary("")
	data, err := lib.Load(model.FontMarist, model.WeightRegular, model.StyleNormal)
	if err != nil || !bytes.Equal(data, goregular.TTF) {
		t.Fatalf("应回落到 Go Regular: %v", err)
	}
	data, err = lib.Load(model.FontMonumentGrotesk, model.WeightMedium, model.StyleNormal)
	if err != nil || !bytes.Equal(data, gomedium.TTF) {
		t.Fatalf("500 字重应回落到 Go Medium: %v", err)
	}
}

func TestLibraryPrefersDirectory(t *testing.T) {
	dir := t.TempDir()
	want := []byte("fake-otf")
	name := FileName(model.FontMarist, model.WeightRegular, model.StyleItalic) + ".otf"
	if err := os.WriteFile(filepath.Join(dir, name), want, 0o644); err != nil {
		t.Fatalf("写入字体失败: %v", err)
	}
	lib := NewLibrary(dir)
	got, err := lib.Load(model.FontMarist, model.WeightRegular, model.StyleItalic)
	if err != nil || !bytes.Equal(got, want) {
		t.Fatalf("应优先使用目录中的字体: %q %v", got, err)
	}
	got, err = lib.Load(model.FontMarist, model.WeightRegular, model.StyleNormal)
	if err != nil || !bytes.Equal(got, goregular.TTF) {
		t.Fatalf("目录中没有的变体应回落到内置字体: %v", err)
	}
}
