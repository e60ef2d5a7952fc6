package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/sweeplabs/dirsweep/internal/cli/config"
	"github.com/sweeplabs/dirsweep/internal/cli/output"
	sharedcfg "github.com/sweeplabs/dirsweep/internal/config"
	"github.com/sweeplabs/dirsweep/internal/exclude"
)

type ctxKey int

const (
	cfgKey ctxKey = iota
	rendererKey
	loggerKey
)

// Setup loads the configuration and attaches config, renderer, and logger
// to the command context. Called from the root command's PersistentPreRunE.
func Setup(cmd *cobra.Command, configDir string) error {
	cfg, err := config.Load(configDir, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.Verbose || os.Getenv(sharedcfg.EnvDebug) != "" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	if cfg.Verbose {
		if used := config.FileUsed(); used != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Using settings file: %s\n", used)
		}
	}

	ctx := context.WithValue(cmd.Context(), cfgKey, cfg)
	ctx = context.WithValue(ctx, rendererKey, r)
	ctx = context.WithValue(ctx, loggerKey, log)
	cmd.SetContext(ctx)
	return nil
}

// getConfig retrieves the config from the command context.
func getConfig(cmd *cobra.Command) *config.Config {
	if c, ok := cmd.Context().Value(cfgKey).(*config.Config); ok {
		return c
	}
	return &config.Config{Marker: config.DefaultMarker, OutputFormat: config.DefaultOutput}
}

// getRenderer retrieves the renderer from the command context.
func getRenderer(cmd *cobra.Command) *output.Renderer {
	if r, ok := cmd.Context().Value(rendererKey).(*output.Renderer); ok {
		return r
	}
	return output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
}

// getLogger retrieves the logger from the command context.
func getLogger(cmd *cobra.Command) *slog.Logger {
	if l, ok := cmd.Context().Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMarker builds the configured exclusion marker.
func newMarker(cfg *config.Config) (exclude.Marker, error) {
	switch cfg.Marker {
	case config.MarkerXattr:
		return exclude.NewXattrMarker(cfg.XattrName), nil
	case config.MarkerCommand:
		return exclude.NewCommandMarker(cfg.QueryCommand, cfg.MarkCommand)
	}
	return nil, fmt.Errorf("unknown marker %q", cfg.Marker)
}
