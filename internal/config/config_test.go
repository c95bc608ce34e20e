package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "docsmith.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "docs", cfg.Output.Dir)
		assert.Equal(t, "markdown", cfg.Output.Format)
		assert.False(t, cfg.ExcludePrivate)
	})

	t.Run("yaml values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docsmith.yaml")
		content := `output:
  dir: site/api
  format: tsx
github:
  repo: https://github.com/org/imglib
  branch: develop
exclude_private: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "site/api", cfg.Output.Dir)
		assert.Equal(t, "tsx", cfg.Output.Format)
		assert.Equal(t, "https://github.com/org/imglib", cfg.GitHub.Repo)
		assert.Equal(t, "develop", cfg.GitHub.Branch)
		assert.True(t, cfg.ExcludePrivate)
	})

	t.Run("environment overrides yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docsmith.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  format: tsx\n"), 0644))

		t.Setenv("DOCSMITH_FORMAT", "json")
		t.Setenv("DOCSMITH_GITHUB_REPO", "https://github.com/org/other")

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "json", cfg.Output.Format)
		assert.Equal(t, "https://github.com/org/other", cfg.GitHub.Repo)
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "docsmith.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: [not a mapping"), 0644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})
}
