package layout

// ComposeOptions 配置预览组合阶段的可选输出。
type ComposeOptions struct {
	Debug DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	RawUnits bool // 在调试 JSON 中输出 debug.rawUnits 影子字段
}
