package mcp

import (
	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/config"
	"github.com/ludo-technologies/srcmatch/internal/logging"
)

// NewTestDependencies builds dependencies around a custom candidate reader
func NewTestDependencies(reader domain.CandidateReader, cfg *config.Config, path string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Dependencies{
		reader:     reader,
		config:     cfg,
		configPath: path,
		logger:     logging.Discard(),
	}
}
