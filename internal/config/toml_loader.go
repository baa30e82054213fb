package config

import (
	"os"
	"path/filepath"

	"github.com/ludo-technologies/srcmatch/internal/constants"
	"github.com/pelletier/go-toml/v2"
)

// SrcmatchTomlConfig represents the structure of .srcmatch.toml. Pointer
// fields distinguish "unset" from an explicit zero value.
type SrcmatchTomlConfig struct {
	Match       TomlMatchConfig       `toml:"match"`
	Input       TomlInputConfig       `toml:"input"`
	Output      TomlOutputConfig      `toml:"output"`
	Logging     TomlLoggingConfig     `toml:"logging"`
	Performance TomlPerformanceConfig `toml:"performance"`
}

type TomlMatchConfig struct {
	Top        *int     `toml:"top"`
	MinScore   *float64 `toml:"min_score"`
	ShowScores *bool    `toml:"show_scores"`
	ShowTokens *bool    `toml:"show_tokens"`
}

type TomlInputConfig struct {
	IncludePatterns   []string `toml:"include_patterns"`
	ExcludePatterns   []string `toml:"exclude_patterns"`
	Recursive         *bool    `toml:"recursive"`
	IgnoredExtensions []string `toml:"ignored_extensions"`
	RespectGitignore  *bool    `toml:"respect_gitignore"`
	MaxFileSizeKB     *int     `toml:"max_file_size_kb"`
}

type TomlOutputConfig struct {
	Format    string `toml:"format"`
	Directory string `toml:"directory"`
}

type TomlLoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type TomlPerformanceConfig struct {
	MaxGoroutines  *int `toml:"max_goroutines"`
	TimeoutSeconds *int `toml:"timeout_seconds"`
}

// TomlConfigLoader discovers and loads .srcmatch.toml
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig finds .srcmatch.toml in startDir or the closest parent and
// merges it over the defaults. It returns the defaults and an empty path
// when no file exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, string, error) {
	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), "", nil
	}

	cfg, err := l.LoadFile(configPath)
	if err != nil {
		return nil, configPath, err
	}
	return cfg, configPath, nil
}

// LoadFile parses a .srcmatch.toml file and merges it over the defaults
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var tomlCfg SrcmatchTomlConfig
	if err := toml.Unmarshal(data, &tomlCfg); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	l.merge(cfg, &tomlCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile walks up from startDir looking for .srcmatch.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		configPath := filepath.Join(dir, constants.ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

func (l *TomlConfigLoader) merge(cfg *Config, t *SrcmatchTomlConfig) {
	if t.Match.Top != nil {
		cfg.Match.Top = *t.Match.Top
	}
	if t.Match.MinScore != nil {
		cfg.Match.MinScore = *t.Match.MinScore
	}
	if t.Match.ShowScores != nil {
		cfg.Match.ShowScores = *t.Match.ShowScores
	}
	if t.Match.ShowTokens != nil {
		cfg.Match.ShowTokens = *t.Match.ShowTokens
	}

	if len(t.Input.IncludePatterns) > 0 {
		cfg.Input.IncludePatterns = t.Input.IncludePatterns
	}
	if len(t.Input.ExcludePatterns) > 0 {
		cfg.Input.ExcludePatterns = t.Input.ExcludePatterns
	}
	if t.Input.Recursive != nil {
		cfg.Input.Recursive = *t.Input.Recursive
	}
	if t.Input.IgnoredExtensions != nil {
		cfg.Input.IgnoredExtensions = t.Input.IgnoredExtensions
	}
	if t.Input.RespectGitignore != nil {
		cfg.Input.RespectGitignore = *t.Input.RespectGitignore
	}
	if t.Input.MaxFileSizeKB != nil {
		cfg.Input.MaxFileSizeKB = *t.Input.MaxFileSizeKB
	}

	if t.Output.Format != "" {
		cfg.Output.Format = t.Output.Format
	}
	if t.Output.Directory != "" {
		cfg.Output.Directory = t.Output.Directory
	}

	if t.Logging.Level != "" {
		cfg.Logging.Level = t.Logging.Level
	}
	if t.Logging.File != "" {
		cfg.Logging.File = t.Logging.File
	}

	if t.Performance.MaxGoroutines != nil {
		cfg.Performance.MaxGoroutines = *t.Performance.MaxGoroutines
	}
	if t.Performance.TimeoutSeconds != nil {
		cfg.Performance.TimeoutSeconds = *t.Performance.TimeoutSeconds
	}
}
