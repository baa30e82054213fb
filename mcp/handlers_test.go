package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/mcp"
	"github.com/ludo-technologies/srcmatch/service"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type args struct {
	arguments interface{}
	setupFS   func(t *testing.T) string
}

type want struct {
	isError      bool
	expectPrefix string
	check        func(t *testing.T, text string)
}

// setupConfig writes an empty config file so discovery never reaches the
// developer's own .srcmatch.toml
func setupConfig(t *testing.T) string {
	t.Helper()
	configFile := filepath.Join(t.TempDir(), ".srcmatch.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(""), 0o644))
	return configFile
}

func setupCandidates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"auth.go":  "func handleLogin(user string) error { return checkPassword(user) }",
		"store.go": "func openDatabase(dsn string) (*DB, error) { return sql.Open(driver, dsn) }",
		"notes.md": "handleLogin is documented here",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func runToolTest(
	t *testing.T,
	setupFS func(t *testing.T) string,
	arguments interface{},
	handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error),
) *mcplib.CallToolResult {
	t.Helper()
	deps := mcp.NewTestDependencies(service.NewCandidateReader().WithProgress(service.NoOpProgressManager{}), nil, setupConfig(t))
	h := mcp.NewHandlerSet(deps)

	if setupFS != nil {
		if m, ok := arguments.(map[string]interface{}); ok {
			m["path"] = setupFS(t)
		}
	}

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handlerFunc(h, context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func checkResult(t *testing.T, res *mcplib.CallToolResult, w want) {
	t.Helper()
	require.Equal(t, w.isError, res.IsError)
	require.NotEmpty(t, res.Content)

	text := mcplib.GetTextFromContent(res.Content[0])
	if w.expectPrefix != "" {
		assert.True(t, strings.HasPrefix(text, w.expectPrefix), "text %q does not start with %q", text, w.expectPrefix)
	}
	if w.check != nil {
		w.check(t, text)
	}
}

func TestHandleFindBestMatch(t *testing.T) {
	tests := map[string]struct {
		args args
		want want
	}{
		"invalid_arguments_format": {
			args: args{arguments: "not-a-map"},
			want: want{isError: true, expectPrefix: "invalid arguments format"},
		},
		"snippet_missing": {
			args: args{arguments: map[string]interface{}{"path": "."}},
			want: want{isError: true, expectPrefix: "snippet parameter is required"},
		},
		"no_candidate_source": {
			args: args{arguments: map[string]interface{}{"snippet": "x"}},
			want: want{isError: true, expectPrefix: "either path or candidates"},
		},
		"path_not_exist": {
			args: args{arguments: map[string]interface{}{"snippet": "x", "path": "/non/existing/path"}},
			want: want{isError: true, expectPrefix: "path does not exist"},
		},
		"empty_inline_candidates": {
			args: args{arguments: map[string]interface{}{"snippet": "x", "candidates": map[string]interface{}{}}},
			want: want{isError: true, expectPrefix: "no candidate files"},
		},
		"empty_directory": {
			args: args{
				setupFS:   func(t *testing.T) string { return t.TempDir() },
				arguments: map[string]interface{}{"snippet": "x"},
			},
			want: want{isError: true, expectPrefix: "no candidate files"},
		},
		"non_string_candidate": {
			args: args{arguments: map[string]interface{}{"snippet": "x", "candidates": map[string]interface{}{"a": 1.0}}},
			want: want{isError: true, expectPrefix: "content of candidate"},
		},
		"path_success": {
			args: args{
				setupFS:   setupCandidates,
				arguments: map[string]interface{}{"snippet": "openDatabase(dsn)"},
			},
			want: want{check: func(t *testing.T, text string) {
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Equal(t, "store.go", result["best_match"])
				assert.EqualValues(t, 3, result["total_candidates"])
				assert.Len(t, result["scores"], 3)
			}},
		},
		"include_patterns": {
			args: args{
				setupFS: setupCandidates,
				arguments: map[string]interface{}{
					"snippet":          "handleLogin",
					"include_patterns": []interface{}{"*.md"},
				},
			},
			want: want{check: func(t *testing.T, text string) {
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Equal(t, "notes.md", result["best_match"])
				assert.EqualValues(t, 1, result["total_candidates"])
			}},
		},
		"inline_candidates_with_top": {
			args: args{arguments: map[string]interface{}{
				"snippet": "alpha beta",
				"top":     1.0,
				"candidates": map[string]interface{}{
					"b.txt": "gamma delta",
					"a.txt": "alpha beta",
				},
			}},
			want: want{check: func(t *testing.T, text string) {
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				assert.Equal(t, "a.txt", result["best_match"])
				assert.Equal(t, string(service.ConfidenceHigh), result["confidence"])
				assert.Len(t, result["scores"], 1)
			}},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			res := runToolTest(t, tc.args.setupFS, tc.args.arguments, (*mcp.HandlerSet).HandleFindBestMatch)
			checkResult(t, res, tc.want)
		})
	}
}

func TestHandleRankCandidates(t *testing.T) {
	res := runToolTest(t, nil, map[string]interface{}{
		"snippet": "shared",
		"candidates": map[string]interface{}{
			"z.go": "shared",
			"a.go": "shared",
			"m.go": "other",
		},
	}, (*mcp.HandlerSet).HandleRankCandidates)

	checkResult(t, res, want{check: func(t *testing.T, text string) {
		var response domain.MatchResponse
		require.NoError(t, json.Unmarshal([]byte(text), &response))

		require.Len(t, response.Scores, 3)
		assert.Equal(t, "a.go", response.BestMatch, "ties go to the first candidate in id order")
		assert.Equal(t, "a.go", response.Scores[0].ID)
		assert.Equal(t, "z.go", response.Scores[1].ID)
		assert.Equal(t, "m.go", response.Scores[2].ID)
		assert.NotEmpty(t, response.Warnings)
	}})
}
