package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ByLCY/truescale/dsl"
	"github.com/ByLCY/truescale/export"
)

// export: 以 JSON、纯文本或 .proof 源码导出排版参数。
func exportCmd() *cobra.Command {
	var (
		output  string
		format  string
		toClip  bool
		docName string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the typographic settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument()
			if err != nil {
				return err
			}
			var data []byte
			switch strings.ToLower(format) {
			case "json":
				if data, err = export.JSON(doc); err != nil {
					return err
				}
			case "text", "txt":
				data = []byte(export.Text(doc))
			case "proof":
				name := docName
				if name == "" && cfg.DocPath != "" {
					name = strings.TrimSuffix(filepath.Base(cfg.DocPath), filepath.Ext(cfg.DocPath))
				}
				data = []byte(dsl.Format(name, doc))
			default:
				return fmt.Errorf("不支持的导出格式 %q（可选 json/text/proof）", format)
			}

			if toClip {
				if err := export.ToClipboard(string(data)); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "已复制到剪贴板")
			}
			if output == "" {
				if !toClip {
					fmt.Fprintln(cmd.OutOrStdout(), string(data))
				}
				return nil
			}
			if strings.EqualFold(format, "json") {
				err = export.WriteJSON(output, doc)
			} else {
				err = writeOutput(output, data)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导出：%s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "out", "o", "", "output path (default: stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "json, text or proof")
	cmd.Flags().BoolVar(&toClip, "clipboard", false, "copy the export to the system clipboard")
	cmd.Flags().StringVar(&docName, "name", "", "document name used by the proof format")
	return cmd
}
