package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/travisdwitt/flowcanvas/internal/export"
	"github.com/travisdwitt/flowcanvas/internal/storage"
	"github.com/travisdwitt/flowcanvas/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export a saved chart to PNG, text or normalized YAML",
	Long: `Reads a saved chart and writes it in another format without opening
the editor. The text format fits the whole chart at scale 1.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")

		d, t, err := storage.LoadFile(args[0])
		if err != nil {
			return err
		}
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "." + format
		}

		cfg := loadConfig(cmd)
		switch format {
		case "png":
			err = export.PNG(out, d, export.Options{
				CharWidth:  float64(cfg.Export.CharWidth),
				CharHeight: float64(cfg.Export.CharHeight),
			})
		case "txt":
			err = writeFile(out, func(f *os.File) error {
				return export.Text(f, d, t, 0, 0)
			})
		case "yaml":
			err = storage.SaveFile(out, d, t)
		default:
			return fmt.Errorf("unknown format %q (want png, txt or yaml)", format)
		}
		if err != nil {
			return err
		}
		ui.Done("exported %s", out)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show a summary of a saved chart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, t, err := storage.LoadFile(args[0])
		if err != nil {
			return err
		}
		ui.Brand.Fprintln(ui.Out, filepath.Base(args[0]))
		ui.KeyValue("nodes", fmt.Sprint(len(d.Nodes)))
		ui.KeyValue("edges", fmt.Sprint(len(d.Edges)))
		if r, ok := d.Bounds(); ok {
			ui.KeyValue("bounds", fmt.Sprintf("%gx%g at (%g,%g)", r.W, r.H, r.X, r.Y))
		}
		ui.KeyValue("viewport", fmt.Sprintf("offset (%g,%g) scale %g", t.OffsetX, t.OffsetY, t.Scale))
		return nil
	},
}

func writeFile(path string, fn func(*os.File) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func init() {
	exportCmd.Flags().StringP("format", "f", "png", "output format: png, txt or yaml")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: input name with the format's extension)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(infoCmd)
}
