// chassis-demo is an interactive showcase of the chassis primitives:
// stateful buttons, an anchored menu, and a pointer-anchored context
// menu, rendered with Bubble Tea.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/marcus/chassis/internal/config"
	"github.com/marcus/chassis/internal/demo"
)

var (
	configPath string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "chassis-demo",
	Short: "Interactive showcase for the chassis interaction primitives",
	Long: `chassis-demo runs a small terminal app exercising the chassis
packages: interaction-state buttons, an anchored dropdown menu with
fallback placement and delayed removal, and a right-click context menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if logFile != "" {
			cfg.LogFile = logFile
		}

		logger, cleanup, err := buildLogger(cfg.LogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		return demo.Run(cfg, logger)
	},
}

// buildLogger writes structured logs to the configured file, tagged
// with a per-run session id so interleaved runs stay separable. No
// file means no logging; the TUI owns the terminal.
func buildLogger(path string) (*zap.Logger, func(), error) {
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}

	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	logger = logger.With(zap.String("session", uuid.NewString()))
	return logger, func() { _ = logger.Sync() }, nil
}

func init() {
	config.BindFlags(rootCmd.PersistentFlags(), &configPath, &logFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
