// File: pkg/combine/config.go
package combine

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Default paths and the placeholder token the merge step replaces.
const (
	DefaultCombinedPath = "combined_output.txt"
	DefaultTemplatePath = ".cursorrules-template"
	DefaultRulesPath    = ".cursorrules"
	DefaultPlaceholder  = "${CODEBASE}"
	DefaultIgnoreFile   = ".cursorrulerignore"
)

// Environment variables honored by FromEnv. A .env file in the working
// directory is loaded first.
const (
	envRoot       = "CURSORRULER_ROOT"
	envTemplate   = "CURSORRULER_TEMPLATE"
	envRules      = "CURSORRULER_RULES"
	envIgnoreFile = "CURSORRULER_IGNORE_FILE"
	envMaxSizeKB  = "CURSORRULER_MAX_FILE_SIZE_KB"
	envKeepOutput = "CURSORRULER_KEEP_COMBINED"
)

// Config holds every knob of a combine run.
type Config struct {
	Root         string // directory to process
	CombinedPath string // intermediate combined output file
	TemplatePath string // template containing the placeholder
	RulesPath    string // final rules file written by the merge
	Placeholder  string // token replaced by the combined document

	IncludePatterns  []string // globs selecting candidate files
	ExcludePatterns  []string // globs removed from the candidates
	ExcludeDirNames  []string // directory name fragments excluded anywhere in a path
	ExcludeFileNames []string // file name fragments excluded anywhere in a path

	IgnoreFile    string // optional file of extra exclude patterns
	MaxFileSizeKB int    // skip files larger than this; 0 disables the cap
	KeepCombined  bool   // keep the intermediate file after a successful merge
}

// FileSection is one aggregated file: its path relative to the root and its
// normalized content.
type FileSection struct {
	Path    string
	Content string
}

// DefaultConfig returns the stock configuration the tool ships with.
func DefaultConfig() Config {
	return Config{
		Root:         ".",
		CombinedPath: DefaultCombinedPath,
		TemplatePath: DefaultTemplatePath,
		RulesPath:    DefaultRulesPath,
		Placeholder:  DefaultPlaceholder,
		IgnoreFile:   DefaultIgnoreFile,
		IncludePatterns: []string{
			"**/*.dart",
			"**/*.yaml",
			"**/*.ts",
			"**/*.tsx",
			"**/*.json",
			"**/*.js",
			"**/*.jsx",
			"**/*.md",
			"**/*.html",
			"**/*.css",
			"**/*.scss",
			"**/*.less",
			"**/*.styl",
		},
		ExcludePatterns: []string{
			"**/Makefile",
			"**/*.md",
			"**/*.txt",
			".vscode/**",
			"**/node_modules/**",
			"**/.git/**",
			"**/.cursorrules",
			"**/.cursorrules-template",
			"**/*.env",
			"**/*.pem",
			"**/*.pub",
			"**/*.tfstate",
			"**/*.tfstate.backup",
			"**/*.tfplan",
			"**/*.tfplan.json",
			"build/**",
			"**/build/**",
			"ios",
			"android",
			"web",
			"macos",
		},
		ExcludeDirNames: []string{
			".git",
			"node_modules",
			".vscode",
			".next",
			".pytest_cache",
			"build",
			".idea",
			".dart_tool",
			"ios",
			"android",
			"web",
			"macos",
		},
		ExcludeFileNames: []string{
			".cursorrules",
			".cursorrules-template",
			".d.ts",
			".tool-versions",
			".lock",
			".env",
			".g.dart",
			".g.yaml",
			".g.json",
			".freezed.dart",
			".arb",
			"README.md",
		},
	}
}

// FromEnv returns the default configuration with environment overrides
// applied. Missing .env files are fine.
func FromEnv() Config {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if v := os.Getenv(envRoot); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv(envTemplate); v != "" {
		cfg.TemplatePath = v
	}
	if v := os.Getenv(envRules); v != "" {
		cfg.RulesPath = v
	}
	if v := os.Getenv(envIgnoreFile); v != "" {
		cfg.IgnoreFile = v
	}
	if v := os.Getenv(envMaxSizeKB); v != "" {
		if kb, err := strconv.Atoi(v); err == nil && kb >= 0 {
			cfg.MaxFileSizeKB = kb
		}
	}
	if v := os.Getenv(envKeepOutput); v != "" {
		cfg.KeepCombined = v == "1" || strings.EqualFold(v, "true")
	}
	return cfg
}

// excludeSubstrings is the combined substring filter handed to the selector:
// directory names first, then file name fragments.
func (c Config) excludeSubstrings() []string {
	subs := make([]string, 0, len(c.ExcludeDirNames)+len(c.ExcludeFileNames))
	subs = append(subs, c.ExcludeDirNames...)
	subs = append(subs, c.ExcludeFileNames...)
	return subs
}
