package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files relative to root
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func candidateIDs(docs []domain.CandidateDocument) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

func newTestReader() *CandidateReaderImpl {
	return NewCandidateReader().WithLogger(logging.Discard())
}

func TestCandidateReader_ReadCandidates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":               "package main",
		"internal/store/db.go":  "package store",
		"web/app.ts":            "export const x = 1",
		"README.md":             "# readme",
		"logo.PNG":              "not really a png",
		"go.lock":               "lock",
		".env":                  "SECRET=1",
		".git/config":           "[core]",
		".vscode/settings.json": "{}",
		"node_modules/x/i.js":   "module.exports = 1",
		"dist/bundle.js":        "bundle",
	})

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, domain.DefaultMatchRequest().ReadOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "internal/store/db.go", "main.go", "web/app.ts"}, candidateIDs(docs))
	assert.Equal(t, "package store", docs[1].Content)
	assert.Equal(t, int64(len("package store")), docs[1].Size)
	assert.Equal(t, filepath.Join(root, "internal", "store", "db.go"), docs[1].Path)
}

func TestCandidateReader_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "generated/\n/local.go\n*.tmp\n",
		"generated/api.go": "package generated",
		"local.go":         "package local",
		"sub/local.go":     "package sub",
		"scratch.tmp":      "tmp",
		"app.go":           "package app",
	})

	opts := domain.DefaultMatchRequest().ReadOptions()

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.go", "sub/local.go"}, candidateIDs(docs))

	opts.RespectGitignore = false
	docs, err = newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"app.go", "generated/api.go", "local.go", "scratch.tmp", "sub/local.go"}, candidateIDs(docs))
}

func TestCandidateReader_Patterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":              "package a",
		"a_test.go":         "package a",
		"pkg/b.go":          "package b",
		"pkg/testdata/c.go": "package c",
		"pkg/d.py":          "import os",
	})

	opts := domain.DefaultMatchRequest().ReadOptions()
	opts.IncludePatterns = []string{"**/*.go"}
	opts.ExcludePatterns = []string{"*_test.go", "**/testdata/**"}

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "pkg/b.go"}, candidateIDs(docs))
}

func TestCandidateReader_NonRecursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"top.go":        "package top",
		"nested/low.go": "package low",
	})

	opts := domain.DefaultMatchRequest().ReadOptions()
	opts.Recursive = false

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"top.go"}, candidateIDs(docs))
}

func TestCandidateReader_SkipsLargeAndBinaryFiles(t *testing.T) {
	root := t.TempDir()
	big := make([]byte, 3*1024)
	for i := range big {
		big[i] = 'x'
	}
	writeTree(t, root, map[string]string{
		"big.txt":    string(big),
		"binary.dat": "abc\x00def",
		"latin1.txt": "caf\xe9",
		"ok.txt":     "fine",
	})

	opts := domain.DefaultMatchRequest().ReadOptions()
	opts.MaxFileSize = 2 * 1024

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok.txt"}, candidateIDs(docs))
}

func TestCandidateReader_CustomIgnoredExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":   "package a",
		"b.lock": "lock",
		"c.md":   "doc",
	})

	opts := domain.DefaultMatchRequest().ReadOptions()
	opts.IgnoredExtensions = []string{".MD"}

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.lock"}, candidateIDs(docs))
}

func TestCandidateReader_MultipleRootsAndFiles(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "first")
	second := filepath.Join(base, "second")
	writeTree(t, first, map[string]string{"main.go": "package first"})
	writeTree(t, second, map[string]string{"main.go": "package second"})
	single := filepath.Join(base, "single.go")
	require.NoError(t, os.WriteFile(single, []byte("package single"), 0644))

	docs, err := newTestReader().ReadCandidates(context.Background(),
		[]string{second, first, single, first}, domain.DefaultMatchRequest().ReadOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.ToSlash(filepath.Join(first, "main.go")),
		filepath.ToSlash(filepath.Join(second, "main.go")),
		filepath.ToSlash(single),
	}, candidateIDs(docs))
}

func TestCandidateReader_MissingPath(t *testing.T) {
	_, err := newTestReader().ReadCandidates(context.Background(),
		[]string{filepath.Join(t.TempDir(), "missing")}, domain.DefaultMatchRequest().ReadOptions())

	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
}

func TestCandidateReader_EmptyDirectory(t *testing.T) {
	docs, err := newTestReader().ReadCandidates(context.Background(),
		[]string{t.TempDir()}, domain.DefaultMatchRequest().ReadOptions())

	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCandidateReader_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "package a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestReader().ReadCandidates(ctx, []string{root}, domain.DefaultMatchRequest().ReadOptions())
	assert.True(t, errors.Is(err, context.Canceled))
}

type countingProgress struct {
	NoOpProgressManager
	started   int
	total     int
	increment int
	completed int
}

func (p *countingProgress) Start(_ string, total int) { p.started++; p.total = total }
func (p *countingProgress) Increment()                { p.increment++ }
func (p *countingProgress) Complete()                 { p.completed++ }

func TestCandidateReader_ReportsProgress(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.go": "a", "b.go": "b", "c.go": "c"})

	progress := &countingProgress{}
	_, err := newTestReader().WithProgress(progress).ReadCandidates(context.Background(),
		[]string{root}, domain.DefaultMatchRequest().ReadOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, progress.started)
	assert.Equal(t, 3, progress.total)
	assert.Equal(t, 3, progress.increment)
	assert.Equal(t, 1, progress.completed)
}

func TestCandidateReader_FileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	reader := newTestReader()

	ok, err := reader.FileExists(file)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = reader.FileExists(dir)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = reader.FileExists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsBinary(t *testing.T) {
	assert.False(t, isBinary([]byte("plain text")))
	assert.False(t, isBinary([]byte("変数 = 1")))
	assert.False(t, isBinary([]byte("caf\xe9")), "latin-1 text is not binary")
	assert.True(t, isBinary([]byte{0x00, 0x01}))
	assert.True(t, isBinary([]byte{0xff, 0xfe, 0x00, 'a'}))

	// NUL past the sniffed prefix is not looked at
	long := make([]byte, binarySniffLen+1)
	for i := range long {
		long[i] = 'a'
	}
	long[binarySniffLen] = 0
	assert.False(t, isBinary(long))
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{"utf8 unchanged", []byte("変数 := \"é\""), "変数 := \"é\""},
		{"latin-1", []byte("caf\xe9 na\xefve"), "café naïve"},
		{"windows-1252 quotes", []byte("\x93quoted\x94"), "\u201cquoted\u201d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeText(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCandidateReader_ReadsLatin1Files(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "legacy.c"), []byte("/* r\xe9sum\xe9 */ int parse_resume(void);"), 0644))
	writeTree(t, root, map[string]string{"modern.c": "int main(void);"})

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, domain.DefaultMatchRequest().ReadOptions())
	require.NoError(t, err)

	require.Equal(t, []string{"legacy.c", "modern.c"}, candidateIDs(docs))
	assert.Contains(t, docs[0].Content, "résumé")
	assert.Equal(t, int64(len("/* r\xe9sum\xe9 */ int parse_resume(void);")), docs[0].Size)
}

func TestCandidateReader_ExcludeFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"clip.go":     "func handleLogin() { checkPassword() }",
		"auth.go":     "func handleLogin() { checkPassword(); audit() }",
		"sub/clip.go": "package sub",
	})

	opts := domain.DefaultMatchRequest().ReadOptions()
	opts.ExcludeFiles = []string{filepath.Join(root, "clip.go")}

	t.Run("directory walk", func(t *testing.T) {
		docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
		require.NoError(t, err)
		assert.Equal(t, []string{"auth.go", "sub/clip.go"}, candidateIDs(docs))
	})

	t.Run("explicit file", func(t *testing.T) {
		docs, err := newTestReader().ReadCandidates(context.Background(), []string{filepath.Join(root, "clip.go"), filepath.Join(root, "auth.go")}, opts)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, filepath.Join(root, "auth.go"), docs[0].Path)
	})

	t.Run("relative exclude path", func(t *testing.T) {
		wd, err := os.Getwd()
		require.NoError(t, err)
		rel, err := filepath.Rel(wd, filepath.Join(root, "clip.go"))
		require.NoError(t, err)

		relOpts := opts
		relOpts.ExcludeFiles = []string{rel}
		docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, relOpts)
		require.NoError(t, err)
		assert.Equal(t, []string{"auth.go", "sub/clip.go"}, candidateIDs(docs))
	})
}

func TestCandidateReader_IgnoredFileNames(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json":      `{"name": "app"}`,
		"package-lock.json": `{"lockfileVersion": 3}`,
		"server.log":        "GET /login 200",
		"index.js":          "module.exports = login",
	})

	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, domain.DefaultMatchRequest().ReadOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"index.js", "package.json"}, candidateIDs(docs))
}

func TestCandidateReader_SrcmatchIgnore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".srcmatchignore":  "fixtures/\n",
		".gitignore":       "*.gen.go\n",
		"fixtures/data.go": "package fixtures",
		"api.gen.go":       "package api",
		"api.go":           "package api",
	})

	opts := domain.DefaultMatchRequest().ReadOptions()
	docs, err := newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"api.go"}, candidateIDs(docs))

	// .srcmatchignore still applies without .gitignore handling
	opts.RespectGitignore = false
	docs, err = newTestReader().ReadCandidates(context.Background(), []string{root}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"api.gen.go", "api.go"}, candidateIDs(docs))
}
