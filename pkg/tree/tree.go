// File: pkg/tree/tree.go

// Package tree renders the textual directory listing embedded at the top of
// the combined document. The listing comes from the external tree utility
// when it is installed, and from a built-in walker otherwise.
package tree

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// excludedNames are the directory names kept out of every listing. They are
// the same names passed to the external utility via -I.
var excludedNames = []string{"node_modules", ".git", ".vscode", "build", "ios", "android", "web"}

// Renderer produces a textual, indentation-based listing of a directory.
type Renderer interface {
	Render(root string) (string, error)
}

// NewRenderer selects the subprocess-backed renderer when the external tree
// utility is on PATH, and the built-in walker otherwise. The choice is made
// once, at startup.
func NewRenderer(logger *zap.Logger) Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if binary, err := exec.LookPath("tree"); err == nil {
		logger.Debug("Using external tree utility", zap.String("binary", binary))
		return NewCommandRenderer(binary, logger)
	}
	logger.Debug("External tree utility not found, using built-in walker")
	return NewWalkRenderer(logger)
}

// CommandRenderer shells out to the tree utility. When the subprocess fails
// it falls back to the built-in walker for that render.
type CommandRenderer struct {
	binary   string
	fallback *WalkRenderer
	logger   *zap.Logger
}

// NewCommandRenderer returns a renderer invoking the given tree binary.
func NewCommandRenderer(binary string, logger *zap.Logger) *CommandRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandRenderer{
		binary:   binary,
		fallback: NewWalkRenderer(logger),
		logger:   logger,
	}
}

// Render runs the tree utility in root with the fixed exclusion flags.
func (c *CommandRenderer) Render(root string) (string, error) {
	cmd := exec.Command(c.binary, "--noreport", "-I", strings.Join(excludedNames, "|"))
	cmd.Dir = root

	output, err := cmd.Output()
	if err != nil {
		c.logger.Warn("External tree utility failed, falling back to walker",
			zap.String("binary", c.binary),
			zap.Error(err))
		return c.fallback.Render(root)
	}
	return strings.TrimSpace(string(output)), nil
}

// WalkRenderer renders the listing by walking the filesystem directly:
// sorted entries, directories first, with box-drawing connectors.
type WalkRenderer struct {
	Excludes []string
	logger   *zap.Logger
}

// NewWalkRenderer returns a walker renderer with the default exclusions.
func NewWalkRenderer(logger *zap.Logger) *WalkRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalkRenderer{
		Excludes: append([]string(nil), excludedNames...),
		logger:   logger,
	}
}

// Render lists root recursively. The root itself appears as ".".
func (w *WalkRenderer) Render(root string) (string, error) {
	var b strings.Builder
	b.WriteString(".")
	if err := w.walk(root, "", &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// walk appends one directory level to the listing.
func (w *WalkRenderer) walk(dir, prefix string, b *strings.Builder) error {
	all, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	entries := all[:0]
	for _, entry := range all {
		if !w.excluded(entry.Name()) {
			entries = append(entries, entry)
		}
	}

	// Directories first, then files, alphabetically.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	for i, entry := range entries {
		connector, extension := "├── ", "│   "
		if i == len(entries)-1 {
			connector, extension = "└── ", "    "
		}

		if entry.IsDir() {
			fmt.Fprintf(b, "\n%s%s%s/", prefix, connector, entry.Name())
			if err := w.walk(filepath.Join(dir, entry.Name()), prefix+extension, b); err != nil {
				w.logger.Warn("Failed to render subtree", zap.String("directory", entry.Name()), zap.Error(err))
			}
		} else {
			fmt.Fprintf(b, "\n%s%s%s", prefix, connector, entry.Name())
		}
	}
	return nil
}

func (w *WalkRenderer) excluded(name string) bool {
	for _, ex := range w.Excludes {
		if name == ex {
			return true
		}
	}
	return false
}
