package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/seqnet/su/internal/config"
	"github.com/seqnet/su/internal/store"
)

// environment is everything a command needs once the config is loaded:
// the parsed config, an open data store, and a logger at the configured
// level.
type environment struct {
	cfg   *config.Config
	store *store.Store
	log   *slog.Logger
}

// openEnvironment loads the config named by --config, installs the
// default logger, and opens the data store. Callers must Close.
func openEnvironment(opts *RootOptions) (*environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	level := cfg.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return &environment{cfg: cfg, store: st, log: log}, nil
}

func (e *environment) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Error("error closing database", "error", err)
	}
}

// cmdContext returns the command's context, falling back to Background
// when the command was run without one (direct calls in tests).
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
