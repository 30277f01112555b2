// File: pkg/selector/selector.go

// Package selector resolves include/exclude glob patterns and literal
// substring exclusions into the ordered set of files to aggregate.
package selector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Config carries every input the selection pass needs, so tests can supply
// arbitrary pattern sets instead of process-wide constants.
type Config struct {
	Root              string   // directory to scan; defaults to "."
	IncludePatterns   []string // doublestar globs; ** matches any depth
	ExcludePatterns   []string // doublestar globs; always win over includes
	ExcludeSubstrings []string // literal substrings matched anywhere in the path
	SelfPaths         []string // absolute paths never returned (binary, outputs)
	IgnoreFile        string   // optional file of extra exclude patterns
	MaxFileSizeKB     int      // skip files larger than this; 0 means no cap
}

// Select returns the files under cfg.Root matched by any include pattern and
// not excluded by any rule, as slash-separated paths relative to the root in
// lexical ascending order. Zero matches is a valid outcome, not an error.
// Invalid patterns are logged and skipped.
func Select(cfg Config, logger *zap.Logger) ([]string, error) {
	root := cfg.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		logger.Warn("Root directory is not accessible", zap.String("root", absRoot), zap.Error(err))
	}

	fsys := os.DirFS(absRoot)

	excludePatterns := cfg.ExcludePatterns
	if cfg.IgnoreFile != "" {
		ignorePath := cfg.IgnoreFile
		if !filepath.IsAbs(ignorePath) {
			ignorePath = filepath.Join(absRoot, ignorePath)
		}
		extra, err := LoadIgnoreFile(ignorePath)
		if err != nil {
			logger.Warn("Failed to load ignore file", zap.String("file", ignorePath), zap.Error(err))
		} else if len(extra) > 0 {
			logger.Debug("Loaded extra exclude patterns from ignore file",
				zap.String("file", ignorePath),
				zap.Int("patternCount", len(extra)))
			excludePatterns = append(append([]string{}, excludePatterns...), extra...)
		}
	}

	// The exclude set holds everything any exclude glob matches, directories
	// included, so that subtraction mirrors layering includes on top of it.
	excluded := make(map[string]struct{})
	for _, pattern := range excludePatterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			logger.Warn("Skipping invalid exclude pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		for _, m := range matches {
			excluded[m] = struct{}{}
		}
	}

	self := make(map[string]struct{}, len(cfg.SelfPaths))
	for _, p := range cfg.SelfPaths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		self[abs] = struct{}{}
	}

	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range cfg.IncludePatterns {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			logger.Warn("Skipping invalid include pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}

			if _, ok := excluded[m]; ok {
				logger.Debug("Excluded by pattern", zap.String("file", m))
				continue
			}
			if sub, ok := matchesSubstring(m, cfg.ExcludeSubstrings); ok {
				logger.Debug("Excluded by substring", zap.String("file", m), zap.String("substring", sub))
				continue
			}
			if _, ok := self[filepath.Join(absRoot, filepath.FromSlash(m))]; ok {
				logger.Debug("Excluded self path", zap.String("file", m))
				continue
			}
			if cfg.MaxFileSizeKB > 0 {
				if info, err := fs.Stat(fsys, m); err == nil && info.Size() > int64(cfg.MaxFileSizeKB)*1024 {
					logger.Debug("Excluded by size cap",
						zap.String("file", m),
						zap.Int64("sizeBytes", info.Size()),
						zap.Int("maxSizeKB", cfg.MaxFileSizeKB))
					continue
				}
			}

			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// LoadIgnoreFile reads extra exclude patterns from path, one per line.
// Blank lines and lines starting with '#' are skipped. A missing file
// yields no patterns and no error.
func LoadIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// matchesSubstring reports whether path contains any of the literal
// substrings, and which one. The check is positional-blind: a substring
// matches anywhere in the path string, not just on directory segments.
func matchesSubstring(path string, subs []string) (string, bool) {
	for _, sub := range subs {
		if sub != "" && strings.Contains(path, sub) {
			return sub, true
		}
	}
	return "", false
}
