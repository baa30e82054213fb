package domain

import (
	"testing"
)

// TestDefaultValueConsistency ensures all default values are properly defined
// and maintain expected relationships
func TestDefaultValueConsistency(t *testing.T) {
	t.Run("Top shows a bounded view", func(t *testing.T) {
		if DefaultTop < 0 {
			t.Errorf("Top (%d) should be >= 0", DefaultTop)
		}
	})

	t.Run("MinScore is a cosine bound", func(t *testing.T) {
		if DefaultMinScore < 0 || DefaultMinScore > 1 {
			t.Errorf("MinScore (%.2f) should be within [0, 1]", DefaultMinScore)
		}
	})

	t.Run("Performance values are positive", func(t *testing.T) {
		if DefaultMaxFileSizeKB <= 0 {
			t.Errorf("MaxFileSizeKB (%d) should be > 0", DefaultMaxFileSizeKB)
		}
		if DefaultMaxConcurrency < 0 {
			t.Errorf("MaxConcurrency (%d) should be >= 0", DefaultMaxConcurrency)
		}
		if DefaultTimeoutSeconds <= 0 {
			t.Errorf("TimeoutSeconds (%d) should be > 0", DefaultTimeoutSeconds)
		}
	})

	t.Run("Output directory is relative", func(t *testing.T) {
		if DefaultOutputDirectory == "" || DefaultOutputDirectory[0] == '/' {
			t.Errorf("OutputDirectory (%q) should be a relative path", DefaultOutputDirectory)
		}
	})

	t.Run("Log level is a logrus level", func(t *testing.T) {
		switch DefaultLogLevel {
		case "trace", "debug", "info", "warn", "error":
		default:
			t.Errorf("LogLevel (%q) is not a known level", DefaultLogLevel)
		}
	})
}

func TestBoolValue(t *testing.T) {
	tests := []struct {
		name       string
		input      *bool
		defaultVal bool
		want       bool
	}{
		{"nil uses default true", nil, true, true},
		{"nil uses default false", nil, false, false},
		{"explicit false wins", BoolPtr(false), true, false},
		{"explicit true wins", BoolPtr(true), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoolValue(tt.input, tt.defaultVal); got != tt.want {
				t.Errorf("BoolValue() = %v, want %v", got, tt.want)
			}
		})
	}
}
