package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/truescale/calibration"
	canvasrenderer "github.com/ByLCY/truescale/renderer/canvas"
	"github.com/ByLCY/truescale/store"
)

// calibrate: 输出银行卡与页面宽度参照，供用户对照实物调整 ppi。
func calibrateCmd() *cobra.Command {
	var (
		output string
		format string
		set    float64
		steps  int
	)
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Render the calibration references",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			wf := calibration.NewWorkflow(store.New(doc))
			wf.Open()
			sheet := wf.Sheet()
			if cmd.Flags().Changed("set") {
				sheet = wf.SetPixelsPerInch(set)
			}
			if steps != 0 {
				sheet = wf.Adjust(steps)
			}
			wf.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", sheet.ScaleLabel)
			fmt.Fprintf(out, "card: %.2f × %.2f px (%s)\n", sheet.Card.Box.Width, sheet.Card.Box.Height, sheet.Card.Label)
			fmt.Fprintf(out, "page width: %.2f px (%s)\n", sheet.Strip.Box.Width, sheet.Strip.Label)

			if output == "" {
				return nil
			}
			f, err := outputFormat(format, output)
			if err != nil {
				return err
			}
			r, err := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{FontDir: cfg.FontDir})
			if err != nil {
				return err
			}
			data, err := r.RenderCalibration(&sheet, f)
			if err != nil {
				return fmt.Errorf("渲染校准参照失败: %w", err)
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			fmt.Fprintf(out, "已生成校准参照：%s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "calibration sheet output path")
	cmd.Flags().StringVar(&format, "format", "", "png, svg or pdf (default: from --out extension)")
	cmd.Flags().Float64Var(&set, "set", 0, "set pixels per inch with the control's range and step")
	cmd.Flags().IntVar(&steps, "steps", 0, "adjust pixels per inch by this many 0.5 steps")
	return cmd
}
