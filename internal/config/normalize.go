package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
)

// normalize case-folds enumerations and tidies list values before defaults apply.
// Unknown enum spellings are rejected rather than silently defaulted.
func normalize(cfg *Config) error {
	level, err := logLevelNormalizer.Parse(string(cfg.Logging.Level))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid logging.level").Fatal().Build()
	}
	if cfg.Logging.Level != "" {
		cfg.Logging.Level = level
	}

	format, err := logFormatNormalizer.Parse(string(cfg.Logging.Format))
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid logging.format").Fatal().Build()
	}
	if cfg.Logging.Format != "" {
		cfg.Logging.Format = format
	}

	rules := map[string]*SitemapRule{
		"sitemap.home":    &cfg.Sitemap.Home,
		"sitemap.listing": &cfg.Sitemap.Listing,
		"sitemap.post":    &cfg.Sitemap.Post,
	}
	for field, rule := range rules {
		if rule.ChangeFrequency == "" {
			continue
		}
		freq, ferr := frequencyNormalizer.Parse(string(rule.ChangeFrequency))
		if ferr != nil {
			return ferrors.WrapError(ferr, ferrors.CategoryValidation, "invalid change_frequency").
				Fatal().WithContext("field", field).Build()
		}
		rule.ChangeFrequency = freq
	}

	for i, ext := range cfg.Content.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.Content.Extensions[i] = ext
	}
	for i, ext := range cfg.Markdown.Extensions {
		cfg.Markdown.Extensions[i] = strings.ToLower(strings.TrimSpace(ext))
	}
	return nil
}
