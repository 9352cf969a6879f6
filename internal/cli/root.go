// Package cli implements the calmish CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/calmish/internal/app"
	"github.com/rcliao/calmish/internal/config"
	"github.com/rcliao/calmish/internal/logging"
)

var (
	dbPath     string
	configPath string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "calmish",
	Short: "A gentle wellness tracker",
	Long:  "Track water, mood, habits, breathing and boundaries. State lives in a local SQLite file and survives restarts.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch formatFlag {
		case "json", "yaml", "text":
			return nil
		}
		return fmt.Errorf("unknown format %q (want json, yaml or text)", formatFlag)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $CALMISH_DB_PATH or ~/.calmish/calmish.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.calmish/config.yaml if present)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json, yaml or text")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openApp loads configuration and restores state. Callers must closeApp.
// Restore ignores cancellation of the command context: an interrupted
// command must not restore defaults and flush them over stored state.
func openApp(cmd *cobra.Command) *app.App {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		exitErr("init logger", err)
	}
	a, err := app.Open(context.WithoutCancel(cmd.Context()), cfg, app.Options{Logger: logger})
	if err != nil {
		exitErr("open", err)
	}
	return a
}

func closeApp(a *app.App) {
	if err := a.Close(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
