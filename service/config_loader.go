package service

import (
	"time"

	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/config"
	"github.com/ludo-technologies/srcmatch/internal/logging"
	"github.com/sirupsen/logrus"
)

// Flag names that MergeConfig honors when they were set explicitly
const (
	FlagTop         = "top"
	FlagMinScore    = "min-score"
	FlagNoScores    = "no-scores"
	FlagShowTokens  = "show-tokens"
	FlagRecursive   = "recursive"
	FlagInclude     = "include"
	FlagExclude     = "exclude"
	FlagNoGitignore = "no-gitignore"
	FlagMaxFileSize = "max-file-size"
	FlagOutputDir   = "output-dir"
	FlagConcurrency = "max-goroutines"
	FlagTimeout     = "timeout"
	FlagIgnoredExt  = "ignore-ext"
)

// MatchConfigurationLoaderImpl implements the MatchConfigurationLoader interface
type MatchConfigurationLoaderImpl struct {
	toml   *config.TomlConfigLoader
	logger *logrus.Entry
}

// NewMatchConfigurationLoader creates a new configuration loader service
func NewMatchConfigurationLoader() *MatchConfigurationLoaderImpl {
	return &MatchConfigurationLoaderImpl{
		toml:   config.NewTomlConfigLoader(),
		logger: logging.WithComponent("config"),
	}
}

// WithLogger replaces the logger
func (c *MatchConfigurationLoaderImpl) WithLogger(logger *logrus.Entry) *MatchConfigurationLoaderImpl {
	c.logger = logger
	return c
}

// LoadConfig loads configuration from an explicit file
func (c *MatchConfigurationLoaderImpl) LoadConfig(path string) (*domain.MatchRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return c.convertToMatchRequest(cfg), nil
}

// LoadDefaultConfig looks for .srcmatch.toml from targetDir upwards. A file
// that fails to load is logged and the defaults are used instead.
func (c *MatchConfigurationLoaderImpl) LoadDefaultConfig(targetDir string) *domain.MatchRequest {
	cfg, path, err := c.toml.LoadConfig(targetDir)
	if err != nil {
		c.logger.WithError(err).WithField("path", path).Warn("ignoring invalid configuration file")
		cfg = config.DefaultConfig()
	} else if path != "" {
		c.logger.WithField("path", path).Debug("loaded configuration")
	}
	return c.convertToMatchRequest(cfg)
}

// MergeConfig applies the fields of override whose flags were set
// explicitly onto base. Snippet, candidate sources and output targets
// always come from override when present.
func (c *MatchConfigurationLoaderImpl) MergeConfig(base *domain.MatchRequest, override *domain.MatchRequest) *domain.MatchRequest {
	merged := *base
	ft := config.NewFlagTracker()
	for name, set := range override.ExplicitFlags {
		if set {
			ft.Set(name)
		}
	}

	merged.Snippet = override.Snippet
	if len(override.Paths) > 0 {
		merged.Paths = override.Paths
	}
	if len(override.Candidates) > 0 {
		merged.Candidates = override.Candidates
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	merged.OutputDirectory = config.Merge(ft, base.OutputDirectory, override.OutputDirectory, FlagOutputDir)
	merged.NoOpen = base.NoOpen || override.NoOpen

	merged.Top = config.Merge(ft, base.Top, override.Top, FlagTop)
	merged.MinScore = config.Merge(ft, base.MinScore, override.MinScore, FlagMinScore)
	merged.ShowScores = config.Merge(ft, base.ShowScores, override.ShowScores, FlagNoScores)
	merged.ShowTokens = config.Merge(ft, base.ShowTokens, override.ShowTokens, FlagShowTokens)

	merged.Recursive = config.Merge(ft, base.Recursive, override.Recursive, FlagRecursive)
	merged.IncludePatterns = config.MergeSlice(ft, base.IncludePatterns, override.IncludePatterns, FlagInclude)
	merged.ExcludePatterns = config.MergeSlice(ft, base.ExcludePatterns, override.ExcludePatterns, FlagExclude)
	merged.IgnoredExtensions = config.MergeSlice(ft, base.IgnoredExtensions, override.IgnoredExtensions, FlagIgnoredExt)
	merged.RespectGitignore = config.Merge(ft, base.RespectGitignore, override.RespectGitignore, FlagNoGitignore)
	merged.MaxFileSizeKB = config.Merge(ft, base.MaxFileSizeKB, override.MaxFileSizeKB, FlagMaxFileSize)
	merged.MaxConcurrency = config.Merge(ft, base.MaxConcurrency, override.MaxConcurrency, FlagConcurrency)
	merged.Timeout = config.Merge(ft, base.Timeout, override.Timeout, FlagTimeout)
	if len(override.ExcludeFiles) > 0 {
		merged.ExcludeFiles = override.ExcludeFiles
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}
	merged.ExplicitFlags = ft.GetAll()

	return &merged
}

// convertToMatchRequest converts internal config to domain request
func (c *MatchConfigurationLoaderImpl) convertToMatchRequest(cfg *config.Config) *domain.MatchRequest {
	format, err := domain.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		format = domain.OutputFormatText
	}

	return &domain.MatchRequest{
		OutputFormat:      format,
		OutputDirectory:   cfg.Output.Directory,
		Top:               cfg.Match.Top,
		MinScore:          cfg.Match.MinScore,
		ShowScores:        domain.BoolPtr(cfg.Match.ShowScores),
		ShowTokens:        domain.BoolPtr(cfg.Match.ShowTokens),
		Recursive:         domain.BoolPtr(cfg.Input.Recursive),
		IncludePatterns:   cfg.Input.IncludePatterns,
		ExcludePatterns:   cfg.Input.ExcludePatterns,
		IgnoredExtensions: cfg.Input.IgnoredExtensions,
		RespectGitignore:  domain.BoolPtr(cfg.Input.RespectGitignore),
		MaxFileSizeKB:     cfg.Input.MaxFileSizeKB,
		MaxConcurrency:    cfg.Performance.MaxGoroutines,
		Timeout:           time.Duration(cfg.Performance.TimeoutSeconds) * time.Second,
	}
}
