package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/interchange"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/config"
	"github.com/jsamuelsen/flashcard-builder/internal/platform/logging"
)

// env is filled in before any subcommand runs.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func (e *env) codec() *interchange.Codec {
	return interchange.NewCodec(interchange.CodecConfig{MaxBytes: e.cfg.Library.MaxImportBytes})
}

func newRootCmd() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "flashcards",
		Short: "Build and study flashcard collections",
		Long: `flashcards manages collections of question/answer cards grouped into
subjects and topics.

It can serve a study session over HTTP, run a quiz in the terminal, convert
spreadsheets into topic files, and import, export or validate interchange
documents.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.load(cmd)
		},
	}

	root.PersistentFlags().String("config-dir", "configs", "Directory holding base.yaml and profile files")
	root.PersistentFlags().String("profile", "", "Config profile (default $APP_ENVIRONMENT or local)")
	root.PersistentFlags().String("log-level", "", "Override log.level (trace, debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(e),
		newQuizCmd(e),
		newConvertCmd(e),
		newExportCmd(e),
		newImportCmd(e),
		newValidateCmd(e),
	)

	return root
}

// load reads and validates configuration, then builds the logger.
func (e *env) load(cmd *cobra.Command) error {
	dir, _ := cmd.Flags().GetString("config-dir")
	profile, _ := cmd.Flags().GetString("profile")
	level, _ := cmd.Flags().GetString("log-level")

	if profile == "" {
		profile = config.Profile()
	}

	cfg, err := config.LoadDir(dir, profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	e.cfg = cfg
	e.logger = logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			Level:      cfg.Log.File.Level,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, cmd.ErrOrStderr())
	logging.SetDefault(e.logger)

	return nil
}
