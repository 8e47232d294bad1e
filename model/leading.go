package model

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPrefix 匹配字符串开头的十进制数，其余部分忽略。
var numberPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// AutoLeadingFactor 是 auto 行距相对字号的倍数。
const AutoLeadingFactor = 1.2

// Leading 是行距：固定点数或 auto 两者之一。
type Leading struct {
	auto   bool
	points float64
}

// FixedLeading 返回固定点数的行距。
func FixedLeading(pt float64) Leading { return Leading{points: pt} }

// AutoLeading 返回 auto 行距。
func AutoLeading() Leading { return Leading{auto: true} }

// IsAuto 报告是否为 auto 行距。
func (l Leading) IsAuto() bool { return l.auto }

// Fixed 返回固定行距点数；auto 时 ok 为 false。
func (l Leading) Fixed() (pt float64, ok bool) {
	if l.auto {
		return 0, false
	}
	return l.points, true
}

// Points 返回以 pt 计的实际行距，auto 时按字号的 1.2 倍计算。
func (l Leading) Points(fontSizePt float64) float64 {
	if l.auto {
		return fontSizePt * AutoLeadingFactor
	}
	return l.points
}

func (l Leading) String() string {
	if l.auto {
		return "auto"
	}
	return strconv.FormatFloat(l.points, 'f', -1, 64)
}

// ParseLeading 解析控件输入：auto（不区分大小写）或以数字开头的文本，
// 数字之后的内容（如 pt 后缀）被忽略。无法解析或为 0 的输入回落为 auto。
func ParseLeading(text string) Leading {
	v := strings.TrimSpace(text)
	if strings.EqualFold(v, "auto") {
		return AutoLeading()
	}
	f, err := strconv.ParseFloat(numberPrefix.FindString(v), 64)
	if err != nil {
		return AutoLeading()
	}
	return leadingFromNumber(f)
}

// leadingFromNumber 把 0 与非有限值视为 auto，其余为固定点数。
func leadingFromNumber(f float64) Leading {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return AutoLeading()
	}
	return FixedLeading(f)
}

// MarshalJSON 输出数字或字符串 "auto"。
func (l Leading) MarshalJSON() ([]byte, error) {
	if l.auto {
		return []byte(`"auto"`), nil
	}
	return json.Marshal(l.points)
}

// UnmarshalJSON 接受数字或字符串，与 ParseLeading 一样把 0 视为 auto。
func (l *Leading) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*l = leadingFromNumber(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("行距必须是数字或 \"auto\": %w", err)
	}
	*l = ParseLeading(s)
	return nil
}
