package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ludo-technologies/srcmatch/domain"
	svc "github.com/ludo-technologies/srcmatch/service"
)

// StdoutPath as OutputPath forces file formats onto OutputWriter
const StdoutPath = "-"

// reportCommand prefixes generated report file names
const reportCommand = "match"

// MatchUseCase orchestrates the snippet attribution workflow
type MatchUseCase struct {
	service      domain.MatchService
	formatter    domain.MatchOutputFormatter
	configLoader domain.MatchConfigurationLoader
	output       domain.ReportWriter
	now          func() time.Time
}

// NewMatchUseCase creates a new match use case
func NewMatchUseCase(
	service domain.MatchService,
	formatter domain.MatchOutputFormatter,
	configLoader domain.MatchConfigurationLoader,
	output domain.ReportWriter,
) *MatchUseCase {
	if output == nil {
		output = svc.NewFileOutputWriter(nil)
	}
	return &MatchUseCase{
		service:      service,
		formatter:    formatter,
		configLoader: configLoader,
		output:       output,
		now:          time.Now,
	}
}

// Execute matches req.Snippet and writes the formatted result
func (uc *MatchUseCase) Execute(ctx context.Context, req domain.MatchRequest) error {
	finalReq, err := uc.prepare(req)
	if err != nil {
		return err
	}

	response, err := uc.service.Match(ctx, finalReq)
	if err != nil {
		return err
	}

	return uc.write(finalReq, func(w io.Writer) error {
		return uc.formatter.Write(response, finalReq.OutputFormat, w)
	})
}

// ExecuteBatch matches every snippet against one candidate set and writes
// a combined report
func (uc *MatchUseCase) ExecuteBatch(ctx context.Context, req domain.MatchRequest, snippets []domain.Snippet) error {
	finalReq, err := uc.prepare(req)
	if err != nil {
		return err
	}

	response, err := uc.service.MatchBatch(ctx, finalReq, snippets)
	if err != nil {
		return err
	}

	return uc.write(finalReq, func(w io.Writer) error {
		return uc.formatter.WriteBatch(response, finalReq.OutputFormat, w)
	})
}

// MatchAndReturn performs the match and returns the response without formatting
func (uc *MatchUseCase) MatchAndReturn(ctx context.Context, req domain.MatchRequest) (*domain.MatchResponse, error) {
	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return uc.service.Match(ctx, finalReq)
}

// prepare validates req, merges configuration and resolves the report path
func (uc *MatchUseCase) prepare(req domain.MatchRequest) (domain.MatchRequest, error) {
	if err := uc.validateRequest(req); err != nil {
		return req, domain.NewInvalidInputError("invalid request", err)
	}

	finalReq, err := uc.loadAndMergeConfig(req)
	if err != nil {
		return req, domain.NewConfigError("failed to load configuration", err)
	}

	finalReq.OutputPath = uc.resolveOutputPath(finalReq)
	return finalReq, nil
}

func (uc *MatchUseCase) write(req domain.MatchRequest, writeFunc func(io.Writer) error) error {
	var out io.Writer
	if req.OutputPath == "" {
		out = req.OutputWriter
	}
	if out == nil && req.OutputPath == "" {
		return domain.NewOutputError("no output writer configured", nil)
	}
	if err := uc.output.Write(out, req.OutputPath, req.OutputFormat, req.NoOpen, writeFunc); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// resolveOutputPath sends file formats to a timestamped report file unless
// a path was given. StdoutPath keeps them on the output writer.
func (uc *MatchUseCase) resolveOutputPath(req domain.MatchRequest) string {
	switch {
	case req.OutputPath == StdoutPath:
		return ""
	case req.OutputPath != "":
		return req.OutputPath
	case req.OutputFormat.IsFileFormat():
		return svc.ReportPath(req.OutputDirectory, reportCommand, req.OutputFormat, uc.now())
	default:
		return ""
	}
}

// validateRequest checks what the config merge cannot fill in
func (uc *MatchUseCase) validateRequest(req domain.MatchRequest) error {
	if len(req.Paths) == 0 && len(req.Candidates) == 0 {
		return fmt.Errorf("no candidate paths specified")
	}
	if req.OutputWriter == nil && req.OutputPath == "" && !req.OutputFormat.IsFileFormat() {
		return fmt.Errorf("output writer or output path is required")
	}
	return nil
}

// loadAndMergeConfig loads configuration from file and merges with request
func (uc *MatchUseCase) loadAndMergeConfig(req domain.MatchRequest) (domain.MatchRequest, error) {
	if uc.configLoader == nil {
		return req, nil
	}

	var configReq *domain.MatchRequest
	if req.ConfigPath != "" {
		loaded, err := uc.configLoader.LoadConfig(req.ConfigPath)
		if err != nil {
			return req, fmt.Errorf("failed to load config from %s: %w", req.ConfigPath, err)
		}
		configReq = loaded
	} else {
		target := ""
		if len(req.Paths) > 0 {
			target = req.Paths[0]
		}
		configReq = uc.configLoader.LoadDefaultConfig(target)
	}

	if configReq == nil {
		return req, nil
	}
	return *uc.configLoader.MergeConfig(configReq, &req), nil
}

// MatchUseCaseBuilder provides a builder pattern for creating MatchUseCase
type MatchUseCaseBuilder struct {
	service      domain.MatchService
	formatter    domain.MatchOutputFormatter
	configLoader domain.MatchConfigurationLoader
	output       domain.ReportWriter
}

// NewMatchUseCaseBuilder creates a new builder
func NewMatchUseCaseBuilder() *MatchUseCaseBuilder {
	return &MatchUseCaseBuilder{}
}

// WithService sets the match service
func (b *MatchUseCaseBuilder) WithService(service domain.MatchService) *MatchUseCaseBuilder {
	b.service = service
	return b
}

// WithFormatter sets the output formatter
func (b *MatchUseCaseBuilder) WithFormatter(formatter domain.MatchOutputFormatter) *MatchUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *MatchUseCaseBuilder) WithConfigLoader(configLoader domain.MatchConfigurationLoader) *MatchUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithOutputWriter sets the report writer
func (b *MatchUseCaseBuilder) WithOutputWriter(output domain.ReportWriter) *MatchUseCaseBuilder {
	b.output = output
	return b
}

// Build creates the MatchUseCase. The config loader is optional.
func (b *MatchUseCaseBuilder) Build() (*MatchUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("match service is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewMatchUseCase(b.service, b.formatter, b.configLoader, b.output), nil
}
