package config

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/constants"
	"github.com/spf13/viper"
)

// Config represents the main configuration structure
type Config struct {
	// Match holds ranked view settings
	Match MatchConfig `mapstructure:"match" yaml:"match" toml:"match"`

	// Input holds candidate collection settings
	Input InputConfig `mapstructure:"input" yaml:"input" toml:"input"`

	// Output holds report settings
	Output OutputConfig `mapstructure:"output" yaml:"output" toml:"output"`

	// Logging holds logger settings
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" toml:"logging"`

	// Performance holds concurrency limits for candidate reads
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance" toml:"performance"`
}

// MatchConfig controls how results are presented. None of these settings
// change which candidate wins.
type MatchConfig struct {
	// Top limits the ranked list, 0 shows every candidate
	Top int `mapstructure:"top" yaml:"top" toml:"top"`

	// MinScore hides candidates scoring below it
	MinScore float64 `mapstructure:"min_score" yaml:"min_score" toml:"min_score"`

	ShowScores bool `mapstructure:"show_scores" yaml:"show_scores" toml:"show_scores"`
	ShowTokens bool `mapstructure:"show_tokens" yaml:"show_tokens" toml:"show_tokens"`
}

// InputConfig controls which files become candidates
type InputConfig struct {
	IncludePatterns   []string `mapstructure:"include_patterns" yaml:"include_patterns" toml:"include_patterns"`
	ExcludePatterns   []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns" toml:"exclude_patterns"`
	Recursive         bool     `mapstructure:"recursive" yaml:"recursive" toml:"recursive"`
	IgnoredExtensions []string `mapstructure:"ignored_extensions" yaml:"ignored_extensions" toml:"ignored_extensions"`
	RespectGitignore  bool     `mapstructure:"respect_gitignore" yaml:"respect_gitignore" toml:"respect_gitignore"`
	MaxFileSizeKB     int      `mapstructure:"max_file_size_kb" yaml:"max_file_size_kb" toml:"max_file_size_kb"`
}

// OutputConfig holds report settings
type OutputConfig struct {
	// Format is one of text, json, yaml, csv, html
	Format string `mapstructure:"format" yaml:"format" toml:"format"`

	// Directory receives file reports
	Directory string `mapstructure:"directory" yaml:"directory" toml:"directory"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level" toml:"level"`
	File  string `mapstructure:"file" yaml:"file" toml:"file"`
}

// PerformanceConfig bounds candidate collection
type PerformanceConfig struct {
	MaxGoroutines  int `mapstructure:"max_goroutines" yaml:"max_goroutines" toml:"max_goroutines"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			Top:        domain.DefaultTop,
			MinScore:   domain.DefaultMinScore,
			ShowScores: true,
			ShowTokens: false,
		},
		Input: InputConfig{
			IncludePatterns:   []string{"**/*"},
			ExcludePatterns:   []string{},
			Recursive:         true,
			IgnoredExtensions: append([]string(nil), constants.DefaultIgnoredExtensions...),
			RespectGitignore:  true,
			MaxFileSizeKB:     domain.DefaultMaxFileSizeKB,
		},
		Output: OutputConfig{
			Format:    string(domain.OutputFormatText),
			Directory: "",
		},
		Logging: LoggingConfig{
			Level: domain.DefaultLogLevel,
		},
		Performance: PerformanceConfig{
			MaxGoroutines:  domain.DefaultMaxConcurrency,
			TimeoutSeconds: domain.DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig reads an explicit configuration file of any format viper
// understands (toml, yaml, json). Unset keys keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Match.Top < 0 {
		return fmt.Errorf("match.top must be >= 0, got %d", c.Match.Top)
	}

	if c.Match.MinScore < 0 || c.Match.MinScore > 1 {
		return fmt.Errorf("match.min_score must be between 0.0 and 1.0, got %g", c.Match.MinScore)
	}

	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv, html", c.Output.Format)
	}

	if len(c.Input.IncludePatterns) == 0 {
		return fmt.Errorf("input.include_patterns cannot be empty")
	}

	for _, ext := range c.Input.IgnoredExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("input.ignored_extensions entries must start with '.', got '%s'", ext)
		}
	}

	if c.Input.MaxFileSizeKB < 0 {
		return fmt.Errorf("input.max_file_size_kb must be >= 0, got %d", c.Input.MaxFileSizeKB)
	}

	if c.Performance.MaxGoroutines < 0 {
		return fmt.Errorf("performance.max_goroutines must be >= 0, got %d", c.Performance.MaxGoroutines)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	return nil
}
