package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/truescale/layout"
)

// geometry: 打印布局引擎的像素几何。
func geometryCmd() *cobra.Command {
	var rawUnits bool
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the computed layout as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			p := layout.Compose(doc, layout.ComposeOptions{
				Debug: layout.DebugOptions{RawUnits: rawUnits},
			})
			for _, w := range p.Warnings {
				logger.Warn("layout warning", "warning", w)
			}
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return fmt.Errorf("序列化几何失败: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&rawUnits, "raw-units", false, "include the source mm/pt values")
	return cmd
}
