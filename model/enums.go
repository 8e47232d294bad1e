package model

import (
	"fmt"
	"strings"
)

// ParseFontFamily 按名称匹配字体家族，忽略大小写与首尾空白。
func ParseFontFamily(s string) (FontFamily, error) {
	v := strings.TrimSpace(s)
	for _, f := range []FontFamily{FontMonumentGrotesk, FontMarist, FontMaristBook} {
		if strings.EqualFold(v, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("未知字体家族 %q", s)
}

// ParseFontWeight 接受 400/500 以及 regular/book/medium。
func ParseFontWeight(s string) (FontWeight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "400", "regular", "book":
		return WeightRegular, nil
	case "500", "medium":
		return WeightMedium, nil
	}
	return "", fmt.Errorf("未知字重 %q", s)
}

func ParseFontStyle(s string) (FontStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "regular":
		return StyleNormal, nil
	case "italic":
		return StyleItalic, nil
	}
	return "", fmt.Errorf("未知字形 %q", s)
}

// ParseTextCase 同时接受 capitalize 与 title-case 等写法。
func ParseTextCase(s string) (TextCase, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "none":
		return CaseNormal, nil
	case "uppercase", "upper":
		return CaseUppercase, nil
	case "lowercase", "lower":
		return CaseLowercase, nil
	case "capitalize", "title-case", "titlecase", "title":
		return CaseTitle, nil
	}
	return "", fmt.Errorf("未知大小写变换 %q", s)
}

func ParseTextAlign(s string) (TextAlign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	case "justify", "justified":
		return AlignJustify, nil
	}
	return "", fmt.Errorf("未知对齐方式 %q", s)
}
