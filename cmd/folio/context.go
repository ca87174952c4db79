package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
)

type commandContext struct {
	configPath   string
	outputDir    string
	templatePath string
	now          string
	verbose      bool
}

func (c *commandContext) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// site loads the configuration and applies command-line overrides.
func (c *commandContext) site(cmd *cobra.Command) (*folio.Site, error) {
	logger := c.logger(cmd.ErrOrStderr())
	slog.SetDefault(logger)

	cfg, err := folio.LoadConfig(strings.TrimSpace(c.configPath), logger)
	if err != nil {
		return nil, err
	}
	if c.outputDir != "" {
		defaultTemplate := filepath.Join(cfg.OutputDir, "index.html")
		cfg.OutputDir = c.outputDir
		if cfg.TemplatePath == defaultTemplate {
			cfg.TemplatePath = filepath.Join(c.outputDir, "index.html")
		}
	}
	if c.templatePath != "" {
		cfg.TemplatePath = c.templatePath
	}

	opts := []folio.Option{folio.WithLogger(logger)}
	if c.now != "" {
		at, err := time.Parse(time.RFC3339, c.now)
		if err != nil {
			return nil, fmt.Errorf("--now: %w", err)
		}
		opts = append(opts, folio.WithClock(func() time.Time { return at }))
	}
	return folio.New(cfg, opts...), nil
}
