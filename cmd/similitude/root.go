package main

import (
	"github.com/spf13/cobra"

	"github.com/justinmckeown/similitude/internal/config"
	"github.com/justinmckeown/similitude/internal/logger"
)

const version = "0.1.0"

// appContext carries the resolved configuration into subcommands.
type appContext struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		dbPath     string
		logLevel   string
		logFormat  string
	)

	app := &appContext{}

	root := &cobra.Command{
		Use:           "similitude",
		Short:         "File intelligence and duplicate detection",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if logFormat != "" {
				cfg.Logging.Format = logFormat
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format); err != nil {
				return err
			}
			app.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the index database")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(
		newScanCommand(app),
		newReportCommand(app),
		newStatusCommand(app),
		newVersionCommand(),
	)
	return root
}
