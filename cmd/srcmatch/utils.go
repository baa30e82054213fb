package main

import (
	"io"
	"os"

	"github.com/ludo-technologies/srcmatch/internal/config"
	"github.com/ludo-technologies/srcmatch/internal/logging"
	"golang.org/x/term"
)

// isInteractiveEnvironment returns true if the environment appears to be
// an interactive TTY session (and not CI), used to decide auto-open behavior.
func isInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return isTerminal(os.Stderr)
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// useColor enables ANSI colors for terminal output unless NO_COLOR is set
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}

// initLogging configures the shared logger from the [logging] section of
// the config that applies to target. Config errors are left for the use
// case to report, logging then falls back to the defaults.
func initLogging(configPath, target string, verbose bool) error {
	cfg := loggingConfig(configPath, target)
	return logging.Init(logging.LevelFor(cfg.Level, verbose), cfg.File, true)
}

func loggingConfig(configPath, target string) config.LoggingConfig {
	if configPath != "" {
		if cfg, err := config.LoadConfig(configPath); err == nil {
			return cfg.Logging
		}
		return config.DefaultConfig().Logging
	}

	cfg, _, err := config.NewTomlConfigLoader().LoadConfig(target)
	if err != nil || cfg == nil {
		return config.DefaultConfig().Logging
	}
	return cfg.Logging
}

// getTargetPathFromArgs extracts the first argument as target path, or returns empty string
func getTargetPathFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
