package domain

import (
	"context"
	"io"
	"time"
)

// SnippetSource identifies where a snippet was read from
type SnippetSource string

const (
	SnippetSourceFile   SnippetSource = "file"
	SnippetSourceStdin  SnippetSource = "stdin"
	SnippetSourceText   SnippetSource = "text"
	SnippetSourceInline SnippetSource = "inline"
)

// Snippet is the anonymous code fragment to attribute
type Snippet struct {
	Name    string        `json:"name" yaml:"name"`
	Source  SnippetSource `json:"source" yaml:"source"`
	Content string        `json:"-" yaml:"-"`
}

// CandidateDocument is one file the snippet may have come from
type CandidateDocument struct {
	// ID is the stable label used in results, a slash separated relative path
	// for files read from disk
	ID      string `json:"id" yaml:"id"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Content string `json:"-" yaml:"-"`
	Size    int64  `json:"size" yaml:"size"`
}

// MatchRequest represents a request to attribute a snippet to a candidate
type MatchRequest struct {
	Snippet Snippet

	// Candidate sources. Inline Candidates take precedence over Paths.
	Paths      []string
	Candidates []CandidateDocument

	// Output configuration
	OutputFormat    OutputFormat
	OutputWriter    io.Writer
	OutputPath      string // Path to save output file (for file formats)
	OutputDirectory string // Directory for generated report files when OutputPath is empty
	NoOpen          bool   // Don't auto-open HTML in browser

	// Ranked view
	Top        int
	MinScore   float64
	ShowScores *bool
	ShowTokens *bool

	// Candidate collection
	Recursive         *bool
	IncludePatterns   []string
	ExcludePatterns   []string
	IgnoredExtensions []string
	RespectGitignore  *bool
	MaxFileSizeKB     int
	MaxConcurrency    int
	Timeout           time.Duration

	// ExcludeFiles are never candidates. File snippets are added by the
	// match service, so a snippet inside a walked directory cannot match itself.
	ExcludeFiles []string

	// Configuration
	ConfigPath    string
	ExplicitFlags map[string]bool
}

// Validate checks that the request can be executed
func (r *MatchRequest) Validate() error {
	if len(r.Paths) == 0 && len(r.Candidates) == 0 {
		return NewValidationError("no candidate paths or inline candidates given")
	}
	if r.Top < 0 {
		return NewValidationError("top must be >= 0")
	}
	if r.MinScore < 0.0 || r.MinScore > 1.0 {
		return NewValidationError("min_score must be between 0.0 and 1.0")
	}
	if r.MaxFileSizeKB < 0 {
		return NewValidationError("max_file_size_kb must be >= 0")
	}
	if r.MaxConcurrency < 0 {
		return NewValidationError("max_concurrency must be >= 0")
	}
	return nil
}

// ReadOptions derives the candidate collection options of the request
func (r *MatchRequest) ReadOptions() CandidateReadOptions {
	return CandidateReadOptions{
		Recursive:         BoolValue(r.Recursive, true),
		IncludePatterns:   r.IncludePatterns,
		ExcludePatterns:   r.ExcludePatterns,
		IgnoredExtensions: r.IgnoredExtensions,
		RespectGitignore:  BoolValue(r.RespectGitignore, true),
		MaxFileSize:       int64(r.MaxFileSizeKB) * 1024,
		MaxConcurrency:    r.MaxConcurrency,
		Timeout:           r.Timeout,
		ExcludeFiles:      r.ExcludeFiles,
	}
}

// DefaultMatchRequest returns a MatchRequest with default values
func DefaultMatchRequest() *MatchRequest {
	return &MatchRequest{
		OutputFormat:     OutputFormatText,
		Top:              DefaultTop,
		MinScore:         DefaultMinScore,
		ShowScores:       BoolPtr(true),
		ShowTokens:       BoolPtr(false),
		Recursive:        BoolPtr(true),
		RespectGitignore: BoolPtr(true),
		MaxFileSizeKB:    DefaultMaxFileSizeKB,
		MaxConcurrency:   DefaultMaxConcurrency,
		Timeout:          DefaultTimeoutSeconds * time.Second,
	}
}

// CandidateReadOptions controls which files become candidates
type CandidateReadOptions struct {
	Recursive         bool
	IncludePatterns   []string
	ExcludePatterns   []string
	IgnoredExtensions []string // replaces the built-in list when non-nil
	RespectGitignore  bool
	MaxFileSize       int64 // bytes, 0 means no limit
	MaxConcurrency    int
	Timeout           time.Duration
	ExcludeFiles      []string // compared by absolute path
}

// CandidateScore is one row of the ranked view
type CandidateScore struct {
	Rank   int     `json:"rank" yaml:"rank"`
	ID     string  `json:"id" yaml:"id"`
	Score  float64 `json:"score" yaml:"score"`
	Tokens int     `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// Percent returns the score as a percentage
func (s CandidateScore) Percent() float64 {
	return s.Score * 100
}

// MatchResponse represents the outcome of one snippet match
type MatchResponse struct {
	Snippet       Snippet `json:"snippet" yaml:"snippet"`
	SnippetTokens int     `json:"snippet_tokens" yaml:"snippet_tokens"`

	BestMatch string  `json:"best_match" yaml:"best_match"`
	BestScore float64 `json:"best_score" yaml:"best_score"`

	// Scores is the ranked view after top/min-score filtering
	Scores []CandidateScore `json:"scores,omitempty" yaml:"scores,omitempty"`

	TotalCandidates int `json:"total_candidates" yaml:"total_candidates"`
	VocabularySize  int `json:"vocabulary_size" yaml:"vocabulary_size"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Metadata
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
	DurationMs  int64  `json:"duration_ms" yaml:"duration_ms"`
}

// HasOverlap reports whether the snippet shares any token with the winner
func (r *MatchResponse) HasOverlap() bool {
	return r.BestScore > 0
}

// BatchMatchResponse holds the results of several snippets matched against
// one candidate set
type BatchMatchResponse struct {
	Results         []MatchResponse `json:"results" yaml:"results"`
	TotalCandidates int             `json:"total_candidates" yaml:"total_candidates"`
	GeneratedAt     string          `json:"generated_at" yaml:"generated_at"`
	Version         string          `json:"version" yaml:"version"`
	DurationMs      int64           `json:"duration_ms" yaml:"duration_ms"`
}

// MatchService defines the core business logic for snippet attribution
type MatchService interface {
	// Match attributes req.Snippet to one of the request's candidates
	Match(ctx context.Context, req MatchRequest) (*MatchResponse, error)

	// MatchBatch attributes every snippet against the same candidate set
	MatchBatch(ctx context.Context, req MatchRequest, snippets []Snippet) (*BatchMatchResponse, error)
}

// CandidateReader collects candidate documents from the file system
type CandidateReader interface {
	// ReadCandidates walks paths and returns readable candidates in ID order
	ReadCandidates(ctx context.Context, paths []string, opts CandidateReadOptions) ([]CandidateDocument, error)

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// MatchOutputFormatter formats match results
type MatchOutputFormatter interface {
	// Format formats the response according to the specified format
	Format(response *MatchResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *MatchResponse, format OutputFormat, writer io.Writer) error

	// WriteBatch writes the formatted batch output to the writer
	WriteBatch(response *BatchMatchResponse, format OutputFormat, writer io.Writer) error
}

// MatchConfigurationLoader loads match settings from configuration files
type MatchConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*MatchRequest, error)

	// LoadDefaultConfig discovers a config file from targetDir upwards,
	// falling back to defaults
	LoadDefaultConfig(targetDir string) *MatchRequest

	// MergeConfig applies explicitly set fields of override onto base
	MergeConfig(base *MatchRequest, override *MatchRequest) *MatchRequest
}
