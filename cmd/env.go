package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/albanobattistella/mecalin/internal/config"
	"github.com/albanobattistella/mecalin/internal/keyboard"
	"github.com/albanobattistella/mecalin/internal/lessons"
	"github.com/albanobattistella/mecalin/internal/logging"
	"github.com/albanobattistella/mecalin/internal/screens/study"
	"github.com/albanobattistella/mecalin/internal/store"
)

// env is everything a command needs once configuration is resolved.
type env struct {
	cfg   config.Config
	log   *logging.Logger
	store *store.Store
	deps  study.Deps
}

// resolveConfig layers flags over MECALIN_* variables over defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if v, _ := flags.GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := flags.GetString("lang"); v != "" {
		cfg.Language = v
	}
	if v, _ := flags.GetString("log-file"); v != "" {
		cfg.LogFile = v
	}
	if v, _ := flags.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.Complete(os.Getenv); err != nil {
		return config.Config{}, fmt.Errorf("resolve config: %w", err)
	}
	return cfg, nil
}

// openEnv resolves configuration, opens the log and the store, and loads
// the course and keyboard layout for the configured language.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Config{Path: cfg.LogPath(), Level: cfg.LogLevel})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}

	log.Info("starting", "command", cmd.Name(), "language", cfg.Language, "db", cfg.DBPath)

	return &env{
		cfg:   cfg,
		log:   log,
		store: st,
		deps: study.Deps{
			Course:   lessons.LoadOrDefault(cfg.Language, log),
			Layout:   keyboard.LoadOrDefault(cfg.Language),
			Progress: st.SettingsRepo(),
			Events:   st.EventRepo(),
			Log:      log,
		},
	}, nil
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("close store failed", "error", err)
	}
	e.log.Sync()
}
