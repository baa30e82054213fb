package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Level(t *testing.T) {
	tests := []struct {
		input string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"error", logrus.ErrorLevel},
		{"nonsense", logrus.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.NoError(t, Init(tt.input, "", false))
			assert.Equal(t, tt.want, Get().GetLevel())
		})
	}
}

func TestInit_LogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "srcmatch.log")

	require.NoError(t, Init("info", logFile, false))
	WithComponent("test").WithField("candidates", 3).Info("matched")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "matched")
	assert.Contains(t, string(data), "component=test")
	assert.Contains(t, string(data), "candidates=3")
}

func TestGet_WithoutInit(t *testing.T) {
	mu.Lock()
	log = nil
	mu.Unlock()

	logger := Get()
	require.NotNil(t, logger)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.Same(t, logger, Get())
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, "debug", LevelFor("error", true))
	assert.Equal(t, "error", LevelFor("error", false))
	assert.Equal(t, "warning", LevelFor("", false))
}

func TestDiscard(t *testing.T) {
	entry := Discard()
	assert.NotPanics(t, func() { entry.Error("dropped") })
}
