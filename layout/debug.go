package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将预览（几何、参考线、样式）输出为 JSON，便于调试或可视化。
func WriteDebugJSON(p *Preview, path string) error {
	if p == nil {
		return nil
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
