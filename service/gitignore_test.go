package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitignoreRules_Ignored(t *testing.T) {
	rules := parseGitignore(`# build output
dist/
/config/local.json
*.log
secret
!keep.log

`)

	tests := []struct {
		path    string
		ignored bool
	}{
		{"dist", true},
		{"dist/app.js", true},
		{"web/dist/app.js", true},
		{"distribution/app.js", false},
		{"config/local.json", true},
		{"src/config/local.json", false},
		{"server.log", true},
		{"logs/today.log", true},
		{"keep.log", true},
		{"src/secret_handler.go", true},
		{"src/main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.ignored, rules.Ignored(tt.path))
		})
	}

	assert.Equal(t, 4, rules.Len())
}

func TestGitignoreRules_Nil(t *testing.T) {
	var rules *gitignoreRules
	assert.False(t, rules.Ignored("anything"))
	assert.Equal(t, 0, rules.Len())
}

func TestLoadGitignore(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".gitignore")
	require.NoError(t, os.WriteFile(file, []byte("tmp/\r\n*.bak\n"), 0644))

	rules, err := loadGitignore(file)
	require.NoError(t, err)
	assert.True(t, rules.Ignored("tmp/x.go"))
	assert.True(t, rules.Ignored("a.bak"))

	_, err = loadGitignore(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
