package config

import "strings"

const (
	DefaultContentRoot   = "./public/post"
	DefaultPublicPath    = "post"
	DefaultBaseURL       = "http://localhost:8080"
	DefaultPageSize      = 4
	DefaultRecent        = 4
	DefaultPageWindow    = 5
	DefaultOutputDir     = "./site"
	DefaultAddr          = ":8080"
	DefaultDebounce      = "300ms"
	DefaultNotifySubject = "devlog.builds"
)

// DefaultExtensions is the document extension precedence.
var DefaultExtensions = []string{".mdx", ".md"}

// DefaultMarkdownExtensions are the goldmark extensions enabled when none are configured.
var DefaultMarkdownExtensions = []string{"gfm", "footnote"}

func applyDefaults(cfg *Config) {
	c := &cfg.Content
	if c.Root == "" {
		c.Root = DefaultContentRoot
	}
	c.PublicPath = strings.Trim(c.PublicPath, "/")
	if c.PublicPath == "" {
		c.PublicPath = DefaultPublicPath
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
	}

	if cfg.Site.BaseURL == "" {
		cfg.Site.BaseURL = DefaultBaseURL
	}
	cfg.Site.BaseURL = strings.TrimRight(cfg.Site.BaseURL, "/")

	l := &cfg.Listing
	if l.PageSize == 0 {
		l.PageSize = DefaultPageSize
	}
	if l.Recent == 0 {
		l.Recent = DefaultRecent
	}
	if l.PageWindow == 0 {
		l.PageWindow = DefaultPageWindow
	}

	applyRuleDefaults(&cfg.Sitemap.Home, FrequencyMonthly, 0.8)
	applyRuleDefaults(&cfg.Sitemap.Listing, FrequencyWeekly, 1.0)
	applyRuleDefaults(&cfg.Sitemap.Post, FrequencyWeekly, 0) // posts carry no <priority> unless configured

	if len(cfg.Markdown.Extensions) == 0 {
		cfg.Markdown.Extensions = append([]string(nil), DefaultMarkdownExtensions...)
	}

	if cfg.Output.Directory == "" {
		cfg.Output.Directory = DefaultOutputDir
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if cfg.Server.Debounce == "" {
		cfg.Server.Debounce = DefaultDebounce
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}

	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNotifySubject
	}
}

func applyRuleDefaults(r *SitemapRule, freq ChangeFrequency, priority float64) {
	if r.ChangeFrequency == "" {
		r.ChangeFrequency = freq
	}
	if r.Priority == 0 {
		r.Priority = priority
	}
}
