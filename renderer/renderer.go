package renderer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/truescale/calibration"
	"github.com/ByLCY/truescale/layout"
)

// Format 是输出格式。
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// ParseFormat 解析格式名，忽略大小写与前导点。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case FormatPNG, FormatSVG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("不支持的输出格式 %q（可选 png/svg/pdf）", s)
}

// FormatFromPath 按文件扩展名推断格式。
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// ContentType 返回对应的 MIME 类型。
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Renderer 将预览或校准界面输出为最终文件。
// PNG 每个布局像素对应一个图像像素；PDF/SVG 按物理尺寸输出。
type Renderer interface {
	RenderPreview(p *layout.Preview, f Format) ([]byte, error)
	RenderCalibration(s *calibration.Sheet, f Format) ([]byte, error)
}
