package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/truescale/binding"
	"github.com/ByLCY/truescale/config"
	"github.com/ByLCY/truescale/dsl"
	"github.com/ByLCY/truescale/model"
)

var (
	cfg    config.Config
	logger *slog.Logger

	inputPath string
	dataJSON  string
	dataPath  string
	ppi       float64
	fontDir   string
	logLevel  string
	logFormat string
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cfg = config.Load()

	root := &cobra.Command{
		Use:          "truescale",
		Short:        "True-scale typographic proofing at physical size",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.DocPath = inputPath
			cfg.PixelsPerInch = ppi
			cfg.FontDir = fontDir
			cfg.LogLevel = logLevel
			cfg.LogFormat = logFormat
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger = cfg.NewLogger(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&inputPath, "in", cfg.DocPath, ".proof document (default: built-in document)")
	root.PersistentFlags().StringVar(&dataJSON, "data", "", "JSON data bound to ${...} placeholders")
	root.PersistentFlags().StringVar(&dataPath, "data-file", "", "JSON file bound to ${...} placeholders")
	root.PersistentFlags().Float64Var(&ppi, "ppi", cfg.PixelsPerInch, "override the calibrated pixels per inch")
	root.PersistentFlags().StringVar(&fontDir, "font-dir", cfg.FontDir, "directory with licensed font files")
	root.PersistentFlags().StringVar(&logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", cfg.LogFormat, "log format (text, json)")

	root.AddCommand(renderCmd(), calibrateCmd(), exportCmd(), geometryCmd(), serveCmd())
	return root
}

// loadDocument 串联默认文档、DSL、数据绑定与校准覆盖。
func loadDocument() (model.Document, error) {
	doc := model.Default()
	if cfg.DocPath != "" {
		var err error
		if doc, err = dsl.Load(cfg.DocPath, doc); err != nil {
			return model.Document{}, fmt.Errorf("载入文档 %s 失败: %w", cfg.DocPath, err)
		}
	}

	data, err := loadData()
	if err != nil {
		return model.Document{}, err
	}
	if data != nil {
		for _, text := range []string{doc.Content1, doc.Content2} {
			for _, path := range binding.Missing(text, data) {
				logger.Warn("unresolved placeholder", "path", path)
			}
		}
		doc = binding.Bind(doc, data)
	}

	if cfg.PixelsPerInch < 0 {
		return model.Document{}, fmt.Errorf("ppi 必须为正数，实际 %g", cfg.PixelsPerInch)
	}
	if cfg.PixelsPerInch > 0 {
		doc.Calibration.PixelsPerInch = cfg.PixelsPerInch
	}
	return doc, nil
}

func loadData() (any, error) {
	switch {
	case dataJSON != "" && dataPath != "":
		return nil, fmt.Errorf("--data 与 --data-file 只能指定一个")
	case dataJSON != "":
		var data any
		if err := json.Unmarshal([]byte(dataJSON), &data); err != nil {
			return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
		}
		return data, nil
	case dataPath != "":
		return binding.LoadData(dataPath)
	}
	return nil, nil
}

// writeOutput 写入文件，必要时创建目录。
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return nil
}
