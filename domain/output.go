package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// ParseOutputFormat maps a user supplied name to an OutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch OutputFormat(name) {
	case "":
		return OutputFormatText, nil
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatCSV, OutputFormatHTML:
		return OutputFormat(name), nil
	case "yml":
		return OutputFormatYAML, nil
	}
	return "", NewUnsupportedFormatError(name)
}

// IsFileFormat reports whether the format is written to a report file
// rather than printed on the terminal.
func (f OutputFormat) IsFileFormat() bool {
	return f != OutputFormatText && f != ""
}

// ReportWriter abstracts writing reports to a destination (file or writer)
// and handling side-effects like opening HTML reports in a browser.
//
// Implementations live in the service layer.
type ReportWriter interface {
	// Write passes either the file at outputPath or, when outputPath is empty,
	// writer to writeFunc. HTML reports are opened in a browser unless noOpen.
	Write(writer io.Writer, outputPath string, format OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error
}

// ProgressManager reports progress of long running candidate collection.
type ProgressManager interface {
	// Start begins a progress display for total steps
	Start(description string, total int)

	// Increment advances the progress by one step
	Increment()

	// Complete finishes the current progress display
	Complete()

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool
}

// ParallelExecutor runs independent tasks with bounded concurrency
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
	SetMaxConcurrency(max int)
	SetTimeout(timeout time.Duration)
}

// ExecutableTask represents a task that can be executed in parallel
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) error
}

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryCandidates ErrorCategory = "Candidate Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError represents an error with category information
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// Unwrap returns the original error
func (e *CategorizedError) Unwrap() error {
	return e.Original
}

// ErrorCategorizer categorizes errors for better reporting
type ErrorCategorizer interface {
	// Categorize determines the category of an error
	Categorize(err error) *CategorizedError

	// GetRecoverySuggestions returns recovery suggestions for an error category
	GetRecoverySuggestions(category ErrorCategory) []string
}
