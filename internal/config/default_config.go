package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template
type DefaultConfigValues struct {
	Top        int
	MinScore   float64
	ShowScores bool
	ShowTokens bool

	IncludePatterns   []string
	Recursive         bool
	IgnoredExtensions []string
	RespectGitignore  bool
	MaxFileSizeKB     int

	Format   string
	LogLevel string

	MaxGoroutines  int
	TimeoutSeconds int
}

// newDefaultConfigValues derives the template values from DefaultConfig so
// the rendered file and the built-in defaults cannot drift apart.
func newDefaultConfigValues() DefaultConfigValues {
	cfg := DefaultConfig()
	return DefaultConfigValues{
		Top:        cfg.Match.Top,
		MinScore:   cfg.Match.MinScore,
		ShowScores: cfg.Match.ShowScores,
		ShowTokens: cfg.Match.ShowTokens,

		IncludePatterns:   cfg.Input.IncludePatterns,
		Recursive:         cfg.Input.Recursive,
		IgnoredExtensions: cfg.Input.IgnoredExtensions,
		RespectGitignore:  cfg.Input.RespectGitignore,
		MaxFileSizeKB:     cfg.Input.MaxFileSizeKB,

		Format:   cfg.Output.Format,
		LogLevel: cfg.Logging.Level,

		MaxGoroutines:  cfg.Performance.MaxGoroutines,
		TimeoutSeconds: cfg.Performance.TimeoutSeconds,
	}
}

// GenerateDefaultConfigTOML renders the commented default .srcmatch.toml
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}
