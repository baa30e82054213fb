package service

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/srcmatch/domain"
	"github.com/ludo-technologies/srcmatch/internal/constants"
	"github.com/ludo-technologies/srcmatch/internal/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding/charmap"
)

// binarySniffLen is how many leading bytes are checked for NUL when
// deciding whether a file is binary
const binarySniffLen = 8000

// CandidateReaderImpl implements the CandidateReader interface
type CandidateReaderImpl struct {
	progress domain.ProgressManager
	logger   *logrus.Entry
}

// NewCandidateReader creates a new candidate reader
func NewCandidateReader() *CandidateReaderImpl {
	return &CandidateReaderImpl{
		logger: logging.WithComponent("candidates"),
	}
}

// WithProgress reports file reads to pm
func (r *CandidateReaderImpl) WithProgress(pm domain.ProgressManager) *CandidateReaderImpl {
	r.progress = pm
	return r
}

// WithLogger replaces the logger
func (r *CandidateReaderImpl) WithLogger(logger *logrus.Entry) *CandidateReaderImpl {
	r.logger = logger
	return r
}

// candidateFile is a file selected during the walk, not read yet
type candidateFile struct {
	id   string
	path string
	size int64
}

// ReadCandidates walks paths and reads every selected file. Results are
// ordered by ID. Files that turn out to be binary, unreadable or too large
// are skipped with a debug log entry. Content that is not valid UTF-8 is
// decoded as Windows-1252.
func (r *CandidateReaderImpl) ReadCandidates(ctx context.Context, paths []string, opts domain.CandidateReadOptions) ([]domain.CandidateDocument, error) {
	files, err := r.collect(ctx, paths, opts)
	if err != nil {
		return nil, err
	}

	docs, err := r.read(ctx, files, opts)
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"selected": len(files),
		"read":     len(docs),
	}).Debug("candidate collection finished")

	return docs, nil
}

// FileExists checks if a regular file exists
func (r *CandidateReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (r *CandidateReaderImpl) collect(ctx context.Context, paths []string, opts domain.CandidateReadOptions) ([]candidateFile, error) {
	var files []candidateFile
	seen := make(map[string]bool)
	excluded := absPaths(opts.ExcludeFiles)

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, domain.NewFileNotFoundError(root, err)
			}
			return nil, domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", root), err)
		}

		var found []candidateFile
		if info.IsDir() {
			found, err = r.collectFromDirectory(ctx, root, len(paths) > 1, excluded, opts)
			if err != nil {
				return nil, err
			}
		} else {
			// an explicitly named file is only checked against the extension list
			if !r.hasIgnoredExtension(root, opts.IgnoredExtensions) && !r.isExcluded(root, excluded) {
				found = []candidateFile{{id: filepath.ToSlash(filepath.Clean(root)), path: root, size: info.Size()}}
			}
		}

		for _, f := range found {
			if !seen[f.id] {
				seen[f.id] = true
				files = append(files, f)
			}
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].id < files[j].id
	})
	return files, nil
}

func (r *CandidateReaderImpl) collectFromDirectory(ctx context.Context, root string, prefixRoot bool, excluded map[string]bool, opts domain.CandidateReadOptions) ([]candidateFile, error) {
	rules := r.ignoreRules(root, opts.RespectGitignore)

	var files []candidateFile
	walkFn := func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			r.logger.WithError(err).WithField("path", p).Debug("skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == root {
			return nil
		}

		relPath, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel := filepath.ToSlash(relPath)

		if d.IsDir() {
			if !opts.Recursive || r.shouldSkipDirectory(d.Name()) || rules.Ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if r.hasIgnoredExtension(rel, opts.IgnoredExtensions) || isIgnoredFileName(d.Name()) || rules.Ignored(rel) {
			return nil
		}
		if r.isExcluded(p, excluded) {
			r.logger.WithField("path", rel).Debug("skipping snippet file")
			return nil
		}
		if !r.shouldIncludeFile(rel, opts.IncludePatterns, opts.ExcludePatterns) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			r.logger.WithFields(logrus.Fields{"path": rel, "size": info.Size()}).Debug("skipping large file")
			return nil
		}

		id := rel
		if prefixRoot {
			id = filepath.ToSlash(filepath.Join(root, relPath))
		}
		files = append(files, candidateFile{id: id, path: p, size: info.Size()})
		return nil
	}

	if err := filepath.WalkDir(root, walkFn); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}
	return files, nil
}

// read loads file contents concurrently and keeps the walk order
func (r *CandidateReaderImpl) read(ctx context.Context, files []candidateFile, opts domain.CandidateReadOptions) ([]domain.CandidateDocument, error) {
	if len(files) == 0 {
		return nil, nil
	}

	results := make([]*domain.CandidateDocument, len(files))
	var progressMu sync.Mutex

	if r.progress != nil {
		r.progress.Start("Reading candidates", len(files))
		defer r.progress.Complete()
	}

	tasks := make([]domain.ExecutableTask, len(files))
	for i, f := range files {
		tasks[i] = NewSimpleTask(f.id, func(ctx context.Context) error {
			defer func() {
				if r.progress != nil {
					progressMu.Lock()
					r.progress.Increment()
					progressMu.Unlock()
				}
			}()

			content, err := os.ReadFile(f.path)
			if err != nil {
				r.logger.WithError(err).WithField("path", f.id).Debug("skipping unreadable file")
				return nil
			}
			if isBinary(content) {
				r.logger.WithField("path", f.id).Debug("skipping binary file")
				return nil
			}
			if !utf8.Valid(content) {
				r.logger.WithField("path", f.id).Info("reading non UTF-8 file as windows-1252")
			}
			text, err := decodeText(content)
			if err != nil {
				r.logger.WithError(err).WithField("path", f.id).Info("skipping file with unknown encoding")
				return nil
			}
			results[i] = &domain.CandidateDocument{
				ID:      f.id,
				Path:    f.path,
				Content: text,
				Size:    int64(len(content)),
			}
			return nil
		})
	}

	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(opts.MaxConcurrency)
	executor.SetTimeout(opts.Timeout)
	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, err
	}

	docs := make([]domain.CandidateDocument, 0, len(files))
	for _, doc := range results {
		if doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

// ignoreRules combines the root's .gitignore, when respected, with its
// .srcmatchignore, which is always honored
func (r *CandidateReaderImpl) ignoreRules(root string, respectGitignore bool) *gitignoreRules {
	names := []string{constants.IgnoreFileName}
	if respectGitignore {
		names = append([]string{constants.GitignoreFileName}, names...)
	}

	var rules *gitignoreRules
	for _, name := range names {
		loaded, err := loadGitignore(filepath.Join(root, name))
		if err != nil {
			continue
		}
		r.logger.WithField("rules", loaded.Len()).Debugf("using %s", name)
		rules = rules.merge(loaded)
	}
	return rules
}

// isExcluded reports whether p is one of the excluded absolute paths
func (r *CandidateReaderImpl) isExcluded(p string, excluded map[string]bool) bool {
	if len(excluded) == 0 {
		return false
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return false
	}
	return excluded[abs]
}

func absPaths(paths []string) map[string]bool {
	set := make(map[string]bool, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			set[abs] = true
		}
	}
	return set
}

func isIgnoredFileName(name string) bool {
	for _, ignored := range constants.DefaultIgnoredFileNames {
		if strings.EqualFold(name, ignored) {
			return true
		}
	}
	return false
}

// shouldIncludeFile checks rel against the include and exclude patterns.
// Patterns match either the whole relative path or its base name.
func (r *CandidateReaderImpl) shouldIncludeFile(rel string, includePatterns, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matchesPattern(pattern, rel) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matchesPattern(pattern, rel) {
			return true
		}
	}
	return false
}

func matchesPattern(pattern, rel string) bool {
	if ok, _ := doublestar.Match(pattern, rel); ok {
		return true
	}
	ok, _ := doublestar.Match(pattern, path.Base(rel))
	return ok
}

// hasIgnoredExtension compares case-insensitively. A nil list falls back to
// the built-in one.
func (r *CandidateReaderImpl) hasIgnoredExtension(name string, ignored []string) bool {
	if ignored == nil {
		ignored = constants.DefaultIgnoredExtensions
	}
	ext := strings.ToLower(path.Ext(filepath.ToSlash(name)))
	if ext == "" {
		return false
	}
	for _, e := range ignored {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// shouldSkipDirectory skips dot directories and well known dependency and
// build output directories
func (r *CandidateReaderImpl) shouldSkipDirectory(name string) bool {
	if strings.HasPrefix(name, ".") && len(name) > 1 {
		return true
	}
	for _, skip := range constants.DefaultSkippedDirectories {
		if strings.EqualFold(name, skip) {
			return true
		}
	}
	return false
}

// isBinary reports NUL bytes in the leading bytes
func isBinary(content []byte) bool {
	head := content
	if len(head) > binarySniffLen {
		head = head[:binarySniffLen]
	}
	return bytes.IndexByte(head, 0) >= 0
}

// decodeText returns content unchanged when it is valid UTF-8 and decodes
// it as Windows-1252 otherwise, which also covers Latin-1 text
func decodeText(content []byte) (string, error) {
	if utf8.Valid(content) {
		return string(content), nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
	if err != nil {
		return "", fmt.Errorf("failed to decode as windows-1252: %w", err)
	}
	return string(decoded), nil
}
