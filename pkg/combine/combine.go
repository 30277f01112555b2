// File: pkg/combine/combine.go

// Package combine orchestrates a full run: select the project files,
// aggregate their normalized content into the combined document, and merge
// that document into the rules template.
package combine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cursorruler/pkg/selector"
	"cursorruler/pkg/tree"

	"go.uber.org/zap"
)

// Run executes the whole pipeline with the given configuration. Per-file
// problems are reported and skipped; a missing template or an unwritable
// output fails the run.
func Run(cfg Config, logger *zap.Logger) error {
	startTime := time.Now()
	logger.Debug("Starting combine run", zap.String("root", cfg.Root))

	absCombined, err := filepath.Abs(cfg.CombinedPath)
	if err != nil {
		return fmt.Errorf("failed to resolve combined output path: %w", err)
	}
	absRules, err := filepath.Abs(cfg.RulesPath)
	if err != nil {
		return fmt.Errorf("failed to resolve rules path: %w", err)
	}

	fmt.Println("Configuration:")
	fmt.Printf(" Output file: %s\n", cfg.CombinedPath)
	fmt.Printf(" Including: %s\n", strings.Join(cfg.IncludePatterns, ", "))
	fmt.Printf(" Excluding: %s\n", strings.Join(cfg.ExcludePatterns, ", "))

	if err := ensureDirectory(filepath.Dir(absCombined), logger); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := ensureDirectory(filepath.Dir(absRules), logger); err != nil {
		return fmt.Errorf("failed to create rules directory: %w", err)
	}

	fmt.Printf("\nGenerating file tree...\n\n")
	treeListing, err := tree.NewRenderer(logger).Render(cfg.Root)
	if err != nil {
		logger.Warn("Failed to render directory tree", zap.Error(err))
		treeListing = ""
	}
	fmt.Println(treeListing)

	selfPaths := []string{absCombined, absRules}
	if exe, err := os.Executable(); err == nil {
		selfPaths = append(selfPaths, exe)
	}

	files, err := selector.Select(selector.Config{
		Root:              cfg.Root,
		IncludePatterns:   cfg.IncludePatterns,
		ExcludePatterns:   cfg.ExcludePatterns,
		ExcludeSubstrings: cfg.excludeSubstrings(),
		SelfPaths:         selfPaths,
		IgnoreFile:        cfg.IgnoreFile,
		MaxFileSizeKB:     cfg.MaxFileSizeKB,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to select files: %w", err)
	}

	fmt.Printf("\nStarting file combination...\n\n")
	sections := Aggregate(cfg.Root, files, logger)
	document := RenderDocument(treeListing, sections)

	if err := writeToFile(absCombined, []byte(document), 0644, logger); err != nil {
		return fmt.Errorf("failed to write combined output: %w", err)
	}

	fmt.Println("\nSummary:")
	fmt.Printf(" Files processed: %d\n", len(sections))
	fmt.Printf(" Output location: %s\n", cfg.CombinedPath)
	fmt.Printf(" Total size: %d bytes\n", len(document))

	fmt.Println("\nPerforming post-processing...")
	if err := MergeTemplate(cfg.TemplatePath, absRules, cfg.Placeholder, document, logger); err != nil {
		return err
	}

	if !cfg.KeepCombined {
		if err := os.Remove(absCombined); err != nil {
			logger.Warn("Failed to remove intermediate output",
				zap.String("file", absCombined),
				zap.Error(err))
		}
	}

	fmt.Println("Post-processing completed successfully:")
	fmt.Printf(" - Created: %s\n", cfg.RulesPath)
	if !cfg.KeepCombined {
		fmt.Printf(" - Removed: %s\n", cfg.CombinedPath)
	}

	logger.Info("Combine run completed",
		zap.Int("filesProcessed", len(sections)),
		zap.String("rulesFile", absRules),
		zap.Duration("elapsed", time.Since(startTime)))
	return nil
}

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(path string, logger *zap.Logger) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// writeToFile writes data to a file and logs the operation.
func writeToFile(path string, data []byte, perm os.FileMode, logger *zap.Logger) error {
	if err := os.WriteFile(path, data, perm); err != nil {
		logger.Error("Failed to write file", zap.String("path", path), zap.Error(err))
		return err
	}
	logger.Debug("Successfully wrote file", zap.String("path", path))
	return nil
}
