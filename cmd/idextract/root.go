package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"securexid/internal/config"
	"securexid/internal/extraction"
	"securexid/internal/logger"
	"securexid/internal/patterns"
	"securexid/internal/port"
)

// app is the state shared by every subcommand, filled in before any of them runs.
type app struct {
	cfg    *config.Config
	logger zerolog.Logger
	lib    *patterns.Library

	logLevel     string
	patternsFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "idextract",
		Short: "Extract structured fields from identity document OCR text",
		Long: `idextract classifies OCR text read from Indian national ID cards,
passports and driving licenses, detects the scanned side, and extracts the
holder's fields.

Configuration comes from SECUREXID_* environment variables; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides SECUREXID_LOG_LEVEL)")
	cmd.PersistentFlags().StringVar(&a.patternsFile, "patterns", "", "pattern library YAML file (overrides SECUREXID_PATTERNS_FILE)")

	cmd.AddCommand(newExtractCmd(a))
	cmd.AddCommand(newBatchCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.patternsFile != "" {
		cfg.Patterns.File = a.patternsFile
	}
	a.cfg = cfg
	a.logger = logger.New(cfg.Log, cmd.ErrOrStderr())

	if cfg.Patterns.File == "" {
		a.lib, err = patterns.Default()
	} else {
		a.lib, err = patterns.Load(cfg.Patterns.File)
	}
	if err != nil {
		return fmt.Errorf("load patterns: %w", err)
	}
	a.logger.Debug().Str("patterns", cfg.Patterns.File).Msg("pattern library loaded")
	return nil
}

func (a *app) service(recorder port.ExtractionRecorder) *extraction.Service {
	return extraction.NewService(a.lib,
		extraction.WithLogger(a.logger),
		extraction.WithRecorder(recorder),
	)
}
