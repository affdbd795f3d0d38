package cmd

import (
	"crossword-clock/lib"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		switch strings.ToLower(envLevel) {
		case "debug":
			logLevel = slog.LevelDebug
		case "info":
			logLevel = slog.LevelInfo
		case "warn", "warning":
			logLevel = slog.LevelWarn
		case "error":
			logLevel = slog.LevelError
		}
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if isTerminal(os.Stderr) {
		handler = lib.NewColorHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func loadConfig() (*lib.Config, error) {
	path := configPath
	if path == "" {
		path = lib.DefaultConfigPath()
	}

	cfg, err := lib.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	slog.Debug("Loaded config", "path", path, "config", fmt.Sprintf("%+v", cfg))
	return cfg, nil
}

// isTerminal reports whether w is an *os.File attached to a terminal.
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
