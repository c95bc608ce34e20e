// Package config loads docsmith.yaml plus environment overrides.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where generate looks for a config file when none is given.
const DefaultPath = "docsmith.yaml"

type Config struct {
	Output struct {
		Dir    string `yaml:"dir"`
		Format string `yaml:"format"` // markdown, tsx or json
	} `yaml:"output"`
	GitHub struct {
		Repo   string `yaml:"repo"` // https://github.com/<org>/<repo>
		Branch string `yaml:"branch"`
	} `yaml:"github"`
	ExcludePrivate bool `yaml:"exclude_private"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	var cfg Config
	cfg.Output.Dir = "docs"
	cfg.Output.Format = "markdown"
	return &cfg
}

// LoadConfig reads the YAML config at path, falling back to defaults when the
// file is absent. Environment variables (optionally from a .env file)
// override file values.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if dir := os.Getenv("DOCSMITH_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}
	if format := os.Getenv("DOCSMITH_FORMAT"); format != "" {
		cfg.Output.Format = format
	}
	if repo := os.Getenv("DOCSMITH_GITHUB_REPO"); repo != "" {
		cfg.GitHub.Repo = repo
	}
	if branch := os.Getenv("DOCSMITH_GITHUB_BRANCH"); branch != "" {
		cfg.GitHub.Branch = branch
	}

	return cfg, nil
}
