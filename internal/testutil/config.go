package testutil

import (
	"path/filepath"
	"testing"

	"git.home.luguber.info/inful/devlog/internal/config"
)

// ConfigBuilder provides a fluent interface for creating test configurations.
type ConfigBuilder struct {
	config *config.Config
	t      *testing.T
}

// NewConfigBuilder starts from the defaults with the output under t.TempDir().
func NewConfigBuilder(t *testing.T) *ConfigBuilder {
	cfg := config.Default()
	cfg.Site.BaseURL = "https://blog.example.com"
	cfg.Site.Title = "Test Blog"
	cfg.Output.Directory = filepath.Join(t.TempDir(), "site")
	cfg.Build.Concurrency = 2
	return &ConfigBuilder{config: cfg, t: t}
}

// WithContentRoot sets the content root.
func (cb *ConfigBuilder) WithContentRoot(root string) *ConfigBuilder {
	cb.config.Content.Root = root
	return cb
}

// WithStrict toggles strict builds.
func (cb *ConfigBuilder) WithStrict(strict bool) *ConfigBuilder {
	cb.config.Build.Strict = strict
	return cb
}

// WithVerifyAssets toggles relative image verification.
func (cb *ConfigBuilder) WithVerifyAssets(verify bool) *ConfigBuilder {
	cb.config.Content.VerifyAssets = verify
	return cb
}

// WithOutputDir sets the export directory.
func (cb *ConfigBuilder) WithOutputDir(dir string) *ConfigBuilder {
	cb.config.Output.Directory = dir
	return cb
}

// Build validates and returns the configuration.
func (cb *ConfigBuilder) Build() *config.Config {
	cb.t.Helper()
	if err := config.Validate(cb.config); err != nil {
		cb.t.Fatalf("invalid test config: %v", err)
	}
	return cb.config
}
