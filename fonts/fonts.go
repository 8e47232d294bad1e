// Package fonts 为三个字体家族提供字形数据。
// 授权字体不随程序分发：默认使用 Go 字体作为替身，可通过字体目录覆盖。
package fonts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/truescale/model"
)

// Key 返回字体变体的缓存键。
func Key(family model.FontFamily, weight model.FontWeight, style model.FontStyle) string {
	return fmt.Sprintf("%s|%s|%s", family, weight, style)
}

// FileName 返回字体目录中对应变体的文件名（不含扩展名），
// 例如 "abc-monument-grotesk-500-italic"。
func FileName(family model.FontFamily, weight model.FontWeight, style model.FontStyle) string {
	name := strings.ToLower(strings.Join(strings.Fields(string(family)), "-"))
	name += "-" + string(weight)
	if style == model.StyleItalic {
		name += "-italic"
	}
	return name
}

// Builtin 返回与字重、字形最接近的 Go 字体。
func Builtin(weight model.FontWeight, style model.FontStyle) []byte {
	italic := style == model.StyleItalic
	switch {
	case weight == model.WeightMedium && italic:
		return gomediumitalic.TTF
	case weight == model.WeightMedium:
		return gomedium.TTF
	case italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// Library 先在目录中查找字体文件，找不到时回落到内置替身。
type Library struct {
	dir string
}

// NewLibrary 创建字体库；dir 为空时只使用内置字体。
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// Load 返回字体变体的字节数据。
func (l *Library) Load(family model.FontFamily, weight model.FontWeight, style model.FontStyle) ([]byte, error) {
	if l != nil && l.dir != "" {
		base := FileName(family, weight, style)
		for _, ext := range []string{".ttf", ".otf"} {
			data, err := os.ReadFile(filepath.Join(l.dir, base+ext))
			if err == nil {
				return data, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("读取字体 %s 失败: %w", base+ext, err)
			}
		}
	}
	return Builtin(weight, style), nil
}
