package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCategorizer(t *testing.T) {
	categorizer := NewErrorCategorizer()
	assert.NotNil(t, categorizer)
	assert.IsType(t, &ErrorCategorizerImpl{}, categorizer)
}

func TestCategorize(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		name         string
		err          error
		wantCategory domain.ErrorCategory
	}{
		{
			name:         "empty candidate set",
			err:          domain.NewEmptyCandidatesError(analyzer.ErrNoCandidates),
			wantCategory: domain.ErrorCategoryCandidates,
		},
		{
			name:         "wrapped empty candidate set",
			err:          fmt.Errorf("match failed: %w", domain.NewEmptyCandidatesError(analyzer.ErrNoCandidates)),
			wantCategory: domain.ErrorCategoryCandidates,
		},
		{
			name:         "missing path",
			err:          domain.NewFileNotFoundError("src", nil),
			wantCategory: domain.ErrorCategoryInput,
		},
		{
			name:         "validation",
			err:          domain.NewValidationError("top must be >= 0"),
			wantCategory: domain.ErrorCategoryInput,
		},
		{
			name:         "config code",
			err:          domain.NewConfigError("bad file", nil),
			wantCategory: domain.ErrorCategoryConfig,
		},
		{
			name:         "unsupported format",
			err:          domain.NewUnsupportedFormatError("xml"),
			wantCategory: domain.ErrorCategoryOutput,
		},
		{
			name:         "match error",
			err:          domain.NewMatchError("failed to rank candidates", errors.New("boom")),
			wantCategory: domain.ErrorCategoryProcessing,
		},
		{
			name:         "deadline wins over code",
			err:          domain.NewReadError("a.go", context.DeadlineExceeded),
			wantCategory: domain.ErrorCategoryTimeout,
		},
		{
			name:         "cancelled",
			err:          fmt.Errorf("batch match cancelled: %w", context.Canceled),
			wantCategory: domain.ErrorCategoryTimeout,
		},
		{
			name:         "plain toml message",
			err:          errors.New("toml: line 3: expected '='"),
			wantCategory: domain.ErrorCategoryConfig,
		},
		{
			name:         "plain permission message",
			err:          errors.New("open x: permission denied"),
			wantCategory: domain.ErrorCategoryInput,
		},
		{
			name:         "unknown",
			err:          errors.New("something odd"),
			wantCategory: domain.ErrorCategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizer.Categorize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.err, got.Original)
			assert.True(t, errors.Is(got, tt.err))
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestCategorize_Nil(t *testing.T) {
	assert.Nil(t, NewErrorCategorizer().Categorize(nil))
}

func TestCategorize_UnknownKeepsMessage(t *testing.T) {
	got := NewErrorCategorizer().Categorize(errors.New("something odd"))
	assert.Equal(t, "something odd", got.Message)
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()

	categories := []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryCandidates,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryUnknown,
	}
	for _, c := range categories {
		assert.NotEmpty(t, categorizer.GetRecoverySuggestions(c), string(c))
	}

	assert.Equal(t, []string{"Check the error message for more details"},
		categorizer.GetRecoverySuggestions(domain.ErrorCategory("other")))
}
