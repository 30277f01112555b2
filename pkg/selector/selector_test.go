package selector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// writeFixture creates a file (and its parents) under root.
func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func fixtureTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFixture(t, root, "a.json", `{"a": 1}`)
	writeFixture(t, root, "b.json", `{bad`)
	writeFixture(t, root, "src/app.dart", "void main() {}")
	writeFixture(t, root, "src/legacy/old.dart", "// old")
	writeFixture(t, root, "node_modules/pkg/x.json", "{}")
	writeFixture(t, root, "build/gen.json", "{}")
	writeFixture(t, root, "notes.txt", "skip me")
	return root
}

func TestSelect(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name string
		cfg  func(root string) Config
		want []string
	}{
		{
			name: "includes minus excludes minus substrings in lexical order",
			cfg: func(root string) Config {
				return Config{
					Root:              root,
					IncludePatterns:   []string{"**/*.json", "**/*.dart"},
					ExcludePatterns:   []string{"**/legacy/**", "build/**"},
					ExcludeSubstrings: []string{"node_modules"},
				}
			},
			want: []string{"a.json", "b.json", "src/app.dart"},
		},
		{
			name: "exclusion wins even when a file matches an include",
			cfg: func(root string) Config {
				return Config{
					Root:            root,
					IncludePatterns: []string{"**/*.json"},
					ExcludePatterns: []string{"**/*.json"},
				}
			},
			want: nil,
		},
		{
			name: "substring matches anywhere in the path",
			cfg: func(root string) Config {
				return Config{
					Root:              root,
					IncludePatterns:   []string{"**/*.dart"},
					ExcludeSubstrings: []string{"legacy"},
				}
			},
			want: []string{"src/app.dart"},
		},
		{
			name: "duplicate includes yield each file once",
			cfg: func(root string) Config {
				return Config{
					Root:            root,
					IncludePatterns: []string{"a.json", "**/a.json", "a.json"},
				}
			},
			want: []string{"a.json"},
		},
		{
			name: "zero matches is a valid empty result",
			cfg: func(root string) Config {
				return Config{
					Root:            root,
					IncludePatterns: []string{"**/*.nothing"},
				}
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := fixtureTree(t)
			got, err := Select(tt.cfg(root), logger)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectNeverReturnsExcluded(t *testing.T) {
	root := fixtureTree(t)
	cfg := Config{
		Root:              root,
		IncludePatterns:   []string{"**/*.json", "**/*.dart", "**/*.txt"},
		ExcludePatterns:   []string{"**/*.txt", "build/**"},
		ExcludeSubstrings: []string{"node_modules", "legacy"},
	}

	got, err := Select(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for _, path := range got {
		assert.False(t, strings.HasSuffix(path, ".txt"), "excluded glob leaked: %s", path)
		assert.False(t, strings.HasPrefix(path, "build/"), "excluded glob leaked: %s", path)
		assert.NotContains(t, path, "node_modules")
		assert.NotContains(t, path, "legacy")
	}
}

func TestSelectRemovesSelfPaths(t *testing.T) {
	root := fixtureTree(t)
	cfg := Config{
		Root:            root,
		IncludePatterns: []string{"**/*.json"},
		SelfPaths:       []string{filepath.Join(root, "a.json")},
	}

	got, err := Select(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"b.json"}, got)
}

func TestSelectIgnoreFile(t *testing.T) {
	root := fixtureTree(t)
	writeFixture(t, root, ".cursorrulerignore", "# drop dart sources\n**/*.dart\n\n")

	cfg := Config{
		Root:            root,
		IncludePatterns: []string{"**/*.dart", "a.json"},
		IgnoreFile:      ".cursorrulerignore",
	}

	got, err := Select(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, got)
}

func TestSelectSizeCap(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "small.yaml", "a: 1\n")
	writeFixture(t, root, "big.yaml", strings.Repeat("x: y\n", 1024)) // ~5KB

	cfg := Config{
		Root:            root,
		IncludePatterns: []string{"**/*.yaml"},
		MaxFileSizeKB:   1,
	}
	got, err := Select(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"small.yaml"}, got)

	cfg.MaxFileSizeKB = 0
	got, err = Select(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"big.yaml", "small.yaml"}, got)
}

func TestSelectInvalidPatternIsSkipped(t *testing.T) {
	root := fixtureTree(t)
	cfg := Config{
		Root:            root,
		IncludePatterns: []string{"[", "a.json"},
		ExcludePatterns: []string{"["},
	}

	got, err := Select(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json"}, got)
}

func TestLoadIgnoreFile(t *testing.T) {
	t.Run("missing file yields nothing", func(t *testing.T) {
		patterns, err := LoadIgnoreFile(filepath.Join(t.TempDir(), "absent"))
		require.NoError(t, err)
		assert.Empty(t, patterns)
	})

	t.Run("comments and blanks are skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ignore")
		require.NoError(t, os.WriteFile(path, []byte("  \n# comment\n**/gen/**\n\t*.lock  \n"), 0o644))

		patterns, err := LoadIgnoreFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"**/gen/**", "*.lock"}, patterns)
	})
}
