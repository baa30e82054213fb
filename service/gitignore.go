package service

import (
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// gitignoreRules implements a small subset of .gitignore semantics:
//
//	dir/      ignores dir and everything below it
//	/path     ignores path anchored at the walk root
//	*.log     glob patterns match the relative path or the base name
//	name      anything else ignores paths containing name
//
// Negations (!) are not supported and are skipped.
type gitignoreRules struct {
	dirs      []string
	anchored  []string
	globs     []string
	substring []string
}

func loadGitignore(file string) (*gitignoreRules, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return parseGitignore(string(data)), nil
}

func parseGitignore(content string) *gitignoreRules {
	rules := &gitignoreRules{}
	for _, line := range strings.Split(content, "\n") {
		rules.add(line)
	}
	return rules
}

func (g *gitignoreRules) add(line string) {
	pattern := strings.TrimSpace(line)
	if pattern == "" || strings.HasPrefix(pattern, "#") || strings.HasPrefix(pattern, "!") {
		return
	}

	switch {
	case strings.HasSuffix(pattern, "/"):
		if dir := strings.Trim(pattern, "/"); dir != "" {
			g.dirs = append(g.dirs, dir)
		}
	case strings.HasPrefix(pattern, "/"):
		g.anchored = append(g.anchored, strings.TrimPrefix(pattern, "/"))
	case strings.ContainsAny(pattern, "*?["):
		g.globs = append(g.globs, pattern)
	default:
		g.substring = append(g.substring, pattern)
	}
}

// Ignored reports whether rel, a slash separated path relative to the walk
// root, is excluded.
func (g *gitignoreRules) Ignored(rel string) bool {
	if g == nil {
		return false
	}

	for _, dir := range g.dirs {
		if rel == dir || strings.HasPrefix(rel, dir+"/") || strings.Contains(rel, "/"+dir+"/") {
			return true
		}
	}
	for _, p := range g.anchored {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	for _, p := range g.globs {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, path.Base(rel)); ok {
			return true
		}
	}
	for _, p := range g.substring {
		if strings.Contains(rel, p) {
			return true
		}
	}
	return false
}

// Len returns the number of active rules
func (g *gitignoreRules) Len() int {
	if g == nil {
		return 0
	}
	return len(g.dirs) + len(g.anchored) + len(g.globs) + len(g.substring)
}

// merge returns the union of g and other. Either may be nil.
func (g *gitignoreRules) merge(other *gitignoreRules) *gitignoreRules {
	if g == nil {
		return other
	}
	if other == nil {
		return g
	}
	return &gitignoreRules{
		dirs:      append(append([]string(nil), g.dirs...), other.dirs...),
		anchored:  append(append([]string(nil), g.anchored...), other.anchored...),
		globs:     append(append([]string(nil), g.globs...), other.globs...),
		substring: append(append([]string(nil), g.substring...), other.substring...),
	}
}
