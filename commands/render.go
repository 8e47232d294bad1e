package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ByLCY/truescale/layout"
	"github.com/ByLCY/truescale/renderer"
	canvasrenderer "github.com/ByLCY/truescale/renderer/canvas"
)

// render: 按当前校准输出真实尺寸预览。
func renderCmd() *cobra.Command {
	var (
		output        string
		format        string
		debugPath     string
		debugRawUnits bool
		pasteboard    float64
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the true-scale preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outputFormat(format, output)
			if err != nil {
				return err
			}
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			p := layout.Compose(doc, layout.ComposeOptions{
				Debug: layout.DebugOptions{RawUnits: debugRawUnits},
			})
			for _, w := range p.Warnings {
				logger.Warn("layout warning", "warning", w)
			}
			if debugPath != "" {
				if err := writeDebug(p, debugPath); err != nil {
					return err
				}
			}

			r, err := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{
				FontDir:      cfg.FontDir,
				PasteboardPx: pasteboard,
			})
			if err != nil {
				return err
			}
			data, err := r.RenderPreview(p, f)
			if err != nil {
				return fmt.Errorf("渲染预览失败: %w", err)
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			logger.Debug("preview rendered", "path", output, "format", f, "bytes", len(data))
			fmt.Fprintf(cmd.OutOrStdout(), "已生成预览：%s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "output/preview.png", "output path")
	cmd.Flags().StringVar(&format, "format", "", "png, svg or pdf (default: from --out extension)")
	cmd.Flags().StringVar(&debugPath, "debug", "", "layout debug JSON output path")
	cmd.Flags().BoolVar(&debugRawUnits, "debug-raw-units", false, "include debug.rawUnits in the debug JSON")
	cmd.Flags().Float64Var(&pasteboard, "pasteboard", 0, "background around the page in px (negative for none)")
	return cmd
}

// outputFormat 优先使用显式格式，否则按扩展名推断。
func outputFormat(format, output string) (renderer.Format, error) {
	if format != "" {
		return renderer.ParseFormat(format)
	}
	return renderer.FormatFromPath(output)
}

func writeDebug(p *layout.Preview, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(p, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
