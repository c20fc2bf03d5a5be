// Package config loads and validates the devlog configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
)

// Config is the root of devlog.yaml.
type Config struct {
	Content  ContentConfig  `yaml:"content"`
	Site     SiteConfig     `yaml:"site"`
	Listing  ListingConfig  `yaml:"listing"`
	Sitemap  SitemapConfig  `yaml:"sitemap"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Build    BuildConfig    `yaml:"build"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// ContentConfig describes where authored documents live and how they are published.
type ContentConfig struct {
	Root         string   `yaml:"root"`          // Directory holding one unit per post
	PublicPath   string   `yaml:"public_path"`   // URL segment posts and assets are served under
	Extensions   []string `yaml:"extensions"`    // Document extensions in precedence order
	VerifyAssets bool     `yaml:"verify_assets"` // Fail a post whose relative image is missing
}

// SiteConfig holds site-wide identity used for canonical URLs and the sitemap.
type SiteConfig struct {
	BaseURL     string `yaml:"base_url"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ListingConfig controls the paged post list.
type ListingConfig struct {
	PageSize   int `yaml:"page_size"`
	Recent     int `yaml:"recent"`
	PageWindow int `yaml:"page_window"`
}

// SitemapConfig holds the change frequency and priority per entry kind.
type SitemapConfig struct {
	Home    SitemapRule `yaml:"home"`
	Listing SitemapRule `yaml:"listing"`
	Post    SitemapRule `yaml:"post"`
}

// SitemapRule is a single sitemap entry policy. A zero priority selects the
// default; posts default to no priority at all.
type SitemapRule struct {
	ChangeFrequency ChangeFrequency `yaml:"change_frequency"`
	Priority        float64         `yaml:"priority"`
}

// MarkdownConfig toggles goldmark behavior.
type MarkdownConfig struct {
	SafeMode   bool     `yaml:"safe_mode"`  // Drop raw HTML from bodies
	Extensions []string `yaml:"extensions"` // gfm, footnote, typographer, definition_list
}

// BuildConfig tunes the build pipeline.
type BuildConfig struct {
	Concurrency int  `yaml:"concurrency"` // 0 means GOMAXPROCS
	Strict      bool `yaml:"strict"`      // Any per-post issue fails the build
}

// OutputConfig describes the static export target.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// ServerConfig configures the preview server and its rebuild triggers.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	Debounce        string `yaml:"debounce"`
	RebuildInterval string `yaml:"rebuild_interval"` // empty disables periodic rebuilds
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// NotifyConfig enables NATS build notifications when NATSURL is set.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// DebounceDuration returns the parsed debounce window. Validation guarantees it parses.
func (s ServerConfig) DebounceDuration() time.Duration {
	d, _ := time.ParseDuration(s.Debounce)
	return d
}

// RebuildIntervalDuration returns the periodic rebuild interval, zero when disabled.
func (s ServerConfig) RebuildIntervalDuration() time.Duration {
	if strings.TrimSpace(s.RebuildInterval) == "" {
		return 0
	}
	d, _ := time.ParseDuration(s.RebuildInterval)
	return d
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads, expands, normalizes, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ferrors.ConfigError("configuration file not found").
				WithContext("path", configPath).Build()
		}
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read config file").
			Fatal().WithContext("path", configPath).Build()
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but falls back to Default when the file does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		loadEnvFiles()
		return Default(), nil
	}
	return Load(configPath)
}

// Parse decodes configuration bytes. ${VAR} references are expanded from the environment.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Default()
	example.Site = SiteConfig{
		BaseURL:     "https://blog.example.com",
		Title:       "Notes from the terminal",
		Description: "Writing about Go, infrastructure and the tools in between",
	}
	example.Server.RebuildInterval = "1h"
	example.Notify = NotifyConfig{NATSURL: "${DEVLOG_NATS_URL}", Subject: DefaultNotifySubject}

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}
