package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
)

// KnownMarkdownExtensions lists the goldmark extensions the compiler can enable.
var KnownMarkdownExtensions = map[string]bool{
	"gfm":             true,
	"footnote":        true,
	"typographer":     true,
	"definition_list": true,
}

// Validate checks a defaulted configuration. The first problem found is returned
// as a classified validation error naming the offending field.
func Validate(cfg *Config) error {
	v := configurationValidator{cfg: cfg}
	for _, check := range []func() error{
		v.validateContent,
		v.validateSite,
		v.validateListing,
		v.validateSitemap,
		v.validateMarkdown,
		v.validateBuild,
		v.validateServer,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// reservedPaths are top-level routes of the preview server.
var reservedPaths = map[string]bool{
	"api": true, "healthz": true, "metrics": true, "sitemap.xml": true, "robots.txt": true,
}

type configurationValidator struct {
	cfg *Config
}

func invalid(field, format string, args ...any) error {
	return ferrors.ValidationError(fmt.Sprintf(format, args...)).WithContext("field", field).Build()
}

func (v configurationValidator) validateContent() error {
	c := v.cfg.Content
	if strings.TrimSpace(c.Root) == "" {
		return invalid("content.root", "content root cannot be empty")
	}
	if strings.ContainsAny(c.PublicPath, " ?#") {
		return invalid("content.public_path", "public path %q must be a plain URL path", c.PublicPath)
	}
	if first, _, _ := strings.Cut(c.PublicPath, "/"); reservedPaths[first] {
		return invalid("content.public_path", "public path %q collides with a server route", c.PublicPath)
	}
	seen := make(map[string]bool, len(c.Extensions))
	for _, ext := range c.Extensions {
		if len(ext) < 2 {
			return invalid("content.extensions", "invalid document extension %q", ext)
		}
		if seen[ext] {
			return invalid("content.extensions", "duplicate document extension %q", ext)
		}
		seen[ext] = true
	}
	return nil
}

func (v configurationValidator) validateSite() error {
	u, err := url.Parse(v.cfg.Site.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("site.base_url", "base URL %q must be an absolute http(s) URL", v.cfg.Site.BaseURL)
	}
	return nil
}

func (v configurationValidator) validateListing() error {
	l := v.cfg.Listing
	if l.PageSize < 1 {
		return invalid("listing.page_size", "page size must be at least 1, got %d", l.PageSize)
	}
	if l.Recent < 0 {
		return invalid("listing.recent", "recent count cannot be negative, got %d", l.Recent)
	}
	if l.PageWindow < 1 {
		return invalid("listing.page_window", "page window must be at least 1, got %d", l.PageWindow)
	}
	return nil
}

func (v configurationValidator) validateSitemap() error {
	rules := []struct {
		field string
		rule  SitemapRule
	}{
		{"sitemap.home", v.cfg.Sitemap.Home},
		{"sitemap.listing", v.cfg.Sitemap.Listing},
		{"sitemap.post", v.cfg.Sitemap.Post},
	}
	for _, r := range rules {
		if r.rule.Priority < 0 || r.rule.Priority > 1 {
			return invalid(r.field+".priority", "priority must be within [0, 1], got %v", r.rule.Priority)
		}
	}
	return nil
}

func (v configurationValidator) validateMarkdown() error {
	for _, ext := range v.cfg.Markdown.Extensions {
		if !KnownMarkdownExtensions[ext] {
			return invalid("markdown.extensions", "unknown markdown extension %q", ext)
		}
	}
	return nil
}

func (v configurationValidator) validateBuild() error {
	if v.cfg.Build.Concurrency < 0 {
		return invalid("build.concurrency", "concurrency cannot be negative, got %d", v.cfg.Build.Concurrency)
	}
	return nil
}

func (v configurationValidator) validateServer() error {
	s := v.cfg.Server
	d, err := time.ParseDuration(s.Debounce)
	if err != nil || d < 0 {
		return invalid("server.debounce", "invalid debounce duration %q", s.Debounce)
	}
	if strings.TrimSpace(s.RebuildInterval) != "" {
		d, err := time.ParseDuration(s.RebuildInterval)
		if err != nil || d <= 0 {
			return invalid("server.rebuild_interval", "invalid rebuild interval %q", s.RebuildInterval)
		}
	}
	return nil
}
