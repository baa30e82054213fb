package constants

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIgnoredExtensions(t *testing.T) {
	seen := make(map[string]bool)
	for _, ext := range DefaultIgnoredExtensions {
		assert.True(t, strings.HasPrefix(ext, "."), "%s should start with a dot", ext)
		assert.Equal(t, strings.ToLower(ext), ext, "%s should be lower case", ext)
		assert.False(t, seen[ext], "%s listed twice", ext)
		seen[ext] = true
	}

	for _, ext := range []string{".png", ".lock", ".log", ".env", ".pptx"} {
		assert.True(t, seen[ext], "%s should be ignored", ext)
	}
}

func TestDefaultSkippedDirectories(t *testing.T) {
	for _, dir := range DefaultSkippedDirectories {
		assert.NotContains(t, dir, "/")
		assert.False(t, strings.HasPrefix(dir, "."), "dot directories are skipped anyway")
	}
}

func TestDefaultIgnoredFileNames(t *testing.T) {
	assert.Contains(t, DefaultIgnoredFileNames, "package-lock.json")
	for _, name := range DefaultIgnoredFileNames {
		assert.NotContains(t, name, "/")
	}
	assert.NotEqual(t, GitignoreFileName, IgnoreFileName)
}
