package binding

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/truescale/model"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Bind 对两个文本框的内容做占位符替换，样式与几何不受影响。
func Bind(doc model.Document, data any) model.Document {
	out := doc.Clone()
	out.Content1 = Interpolate(doc.Content1, data)
	out.Content2 = Interpolate(doc.Content2, data)
	return out
}

// LoadData 读取 JSON 数据文件。
func LoadData(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取数据文件失败: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("解析数据 JSON 失败: %w", err)
	}
	return data, nil
}

// Placeholders 按出现顺序列出文本中的占位符路径（去重）。
func Placeholders(text string) []string {
	var out []string
	seen := map[string]bool{}
	for _, m := range exprPattern.FindAllStringSubmatch(text, -1) {
		path := strings.TrimSpace(m[1])
		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		out = append(out, path)
	}
	return out
}

// Missing 列出 data 中解析不到的占位符路径。
func Missing(text string, data any) []string {
	var out []string
	for _, path := range Placeholders(text) {
		if _, ok := Resolve(data, path); !ok {
			out = append(out, path)
		}
	}
	return out
}

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值，路径支持 items[0].name。
// 若 data 为空或路径不存在，则保留原占位符，便于在预览中发现拼写错误。
func Interpolate(text string, data any) string {
	if data == nil {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := Resolve(data, path)
		if !ok {
			return match
		}
		return formatValue(val)
	})
}

// Resolve 按路径在 JSON 解码后的数据中取值。
func Resolve(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			obj, isObj := current.(map[string]any)
			if !isObj {
				return nil, false
			}
			if current, ok = obj[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// splitSegment 把 "items[0][1]" 拆成名称与下标。
func splitSegment(segment string) (string, []int, bool) {
	name, rest, found := strings.Cut(segment, "[")
	if !found {
		return segment, nil, true
	}
	var indexes []int
	rest = "[" + rest
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case map[string]any, []any:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	default:
		return fmt.Sprint(val)
	}
}
