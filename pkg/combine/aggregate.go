// File: pkg/combine/aggregate.go
package combine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"cursorruler/pkg/minify"

	"go.uber.org/zap"
)

// Aggregate reads each selected file in order, normalizes its content by
// kind, and returns the resulting sections. Files that cannot be read as
// text are reported and skipped; one bad file never aborts the run.
func Aggregate(root string, files []string, logger *zap.Logger) []FileSection {
	sections := make([]FileSection, 0, len(files))

	for _, rel := range files {
		fmt.Printf("Processing: %s\n", rel)

		raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			logger.Warn("Failed to read file, skipping",
				zap.String("file", rel),
				zap.Error(err))
			continue
		}
		if !isText(raw) {
			logger.Warn("File is not valid text, skipping",
				zap.String("file", rel))
			continue
		}

		content, err := minify.Normalize(string(raw), minify.KindForPath(rel))
		if err != nil {
			// Non-fatal: Normalize already fell back to generic minification.
			logger.Warn("Could not parse JSON file",
				zap.String("file", rel),
				zap.Error(err))
		}

		sections = append(sections, FileSection{Path: rel, Content: content})
	}

	return sections
}

// isText reports whether raw is usable as text: valid UTF-8 with no NUL
// bytes.
func isText(raw []byte) bool {
	return utf8.Valid(raw) && !bytes.Contains(raw, []byte{0})
}
