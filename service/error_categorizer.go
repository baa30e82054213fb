package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/srcmatch/domain"
)

// errorPattern maps message fragments to a category
type errorPattern struct {
	category domain.ErrorCategory
	patterns []string
}

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []errorPattern
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorPatterns lists fallback patterns for errors without a
// domain code. Earlier entries win.
func initializeErrorPatterns() []errorPattern {
	return []errorPattern{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"timed out",
			"deadline",
			"context canceled",
		}},
		{domain.ErrorCategoryCandidates, []string{
			"no candidate",
			"candidate set is empty",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"toml",
			"unknown flag",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"snippet",
			"no such file",
			"file not found",
			"cannot access",
			"permission denied",
		}},
		{domain.ErrorCategoryOutput, []string{
			"output",
			"write",
			"cannot create",
			"report",
		}},
	}
}

// codeCategories maps domain error codes to categories
var codeCategories = map[string]domain.ErrorCategory{
	domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
	domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
	domain.ErrCodeReadError:         domain.ErrorCategoryInput,
	domain.ErrCodeEmptyCandidates:   domain.ErrorCategoryCandidates,
	domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
	domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
	domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
	domain.ErrCodeMatchError:        domain.ErrorCategoryProcessing,
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := ec.categoryOf(err)
	message := err.Error()
	if category != domain.ErrorCategoryUnknown {
		message = ec.getCategoryMessage(category)
	}

	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categoryOf(err error) domain.ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrorCategoryTimeout
	}
	if category, ok := codeCategories[domain.ErrorCode(err)]; ok {
		return category
	}

	errMsg := strings.ToLower(err.Error())
	for _, p := range ec.patterns {
		if containsAnyPattern(errMsg, p.patterns) {
			return p.category
		}
	}
	return domain.ErrorCategoryUnknown
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the snippet file and candidate paths exist",
			"Pass the snippet with --snippet FILE, --text STRING or --stdin",
			"Ensure you have read permissions for the target files",
		},
		domain.ErrorCategoryCandidates: {
			"Check that the candidate paths contain readable text files",
			"Relax --include/--exclude patterns or pass --no-gitignore",
			"Try: srcmatch match . --verbose to see which files were skipped",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: srcmatch init to generate a valid config file",
			"Check for syntax errors in .srcmatch.toml",
		},
		domain.ErrorCategoryTimeout: {
			"Narrow the candidate set with --include or more specific paths",
			"Increase [performance] timeout_seconds in .srcmatch.toml",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions of the output directory",
			"Use the default text output to print to the terminal",
		},
		domain.ErrorCategoryProcessing: {
			"Run with --verbose for the per-candidate score table",
			"Report the issue if it persists",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	switch category {
	case domain.ErrorCategoryInput:
		return "Failed to read the snippet or candidate paths"
	case domain.ErrorCategoryCandidates:
		return "No candidate files to match against"
	case domain.ErrorCategoryConfig:
		return "Configuration file or settings error"
	case domain.ErrorCategoryTimeout:
		return "Matching timed out or was cancelled"
	case domain.ErrorCategoryOutput:
		return "Failed to generate or write output"
	case domain.ErrorCategoryProcessing:
		return "Error while ranking candidates"
	default:
		return "An unexpected error occurred"
	}
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
