package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/travisdwitt/flowcanvas/internal/config"
	"github.com/travisdwitt/flowcanvas/internal/editor"
	"github.com/travisdwitt/flowcanvas/internal/logging"
	"github.com/travisdwitt/flowcanvas/internal/storage"
	"github.com/travisdwitt/flowcanvas/internal/tui"
	"github.com/travisdwitt/flowcanvas/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "flowcanvas [file]",
	Short: "flowcanvas is a terminal flow chart editor",
	Long: `flowcanvas edits flow charts of start, process, decision and end nodes
on a pannable, zoomable canvas. Charts are saved as YAML and can be
exported to PNG or plain text.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/flowcanvas/config.toml)")
	rootCmd.Flags().String("log-file", "", "write logs to this file")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn or error")
}

// loadConfig reads the --config file or the default one. A broken file is
// reported and the defaults are used.
func loadConfig(cmd *cobra.Command) *config.Config {
	path, _ := cmd.Flags().GetString("config")
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		ui.Warn.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}
	return cfg
}

func sessionOptions(cfg *config.Config) []editor.Option {
	return []editor.Option{
		editor.WithHistoryLimit(cfg.History.Limit),
		editor.WithZoomStep(cfg.Zoom.Step),
		editor.WithWheelStep(cfg.Zoom.WheelStep),
		editor.WithTheme(editor.Theme(cfg.Theme)),
	}
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	if f, _ := cmd.Flags().GetString("log-file"); f != "" {
		cfg.Log.File = f
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.Log.Level = l
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log, closer, err := logging.OpenFile(cfg.Log.File, level)
	if err != nil {
		return err
	}
	defer closer.Close()

	session := editor.New(append(sessionOptions(cfg), editor.WithLogger(log))...)

	var opts []tui.Option
	opts = append(opts, tui.WithLogger(log))
	if len(args) == 1 {
		path := cfg.GetSavePath(args[0])
		d, t, err := storage.LoadFile(path)
		if err != nil {
			return err
		}
		session.Load(d, t)
		opts = append(opts, tui.WithFilename(path))
		log.Info("opened", "path", path, "nodes", len(d.Nodes), "edges", len(d.Edges))
	}

	p := tea.NewProgram(
		tui.New(session, cfg, opts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}
