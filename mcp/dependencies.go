package mcp

import (
	"github.com/ludo-technologies/srcmatch/app"
	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/config"
	"github.com/ludo-technologies/srcmatch/internal/logging"
	"github.com/ludo-technologies/srcmatch/service"
	"github.com/sirupsen/logrus"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	reader     domain.CandidateReader
	config     *config.Config
	configPath string
	logger     *logrus.Entry
}

// NewDependencies constructs the dependency set with sane defaults.
// Candidate reads never draw progress bars, stdout carries the protocol.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		reader:     service.NewCandidateReader().WithProgress(service.NoOpProgressManager{}),
		config:     cfg,
		configPath: configPath,
		logger:     logging.WithComponent("mcp"),
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildMatchUseCase assembles a fresh MatchUseCase with injected dependencies.
func (d *Dependencies) BuildMatchUseCase() (*app.MatchUseCase, error) {
	return app.NewMatchUseCaseBuilder().
		WithService(service.NewMatchService(d.reader)).
		WithFormatter(service.NewOutputFormatter()).
		WithConfigLoader(service.NewMatchConfigurationLoader()).
		Build()
}
