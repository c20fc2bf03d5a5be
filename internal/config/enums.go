package config

import (
	"git.home.luguber.info/inful/devlog/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// ChangeFrequency is a sitemaps.org changefreq value.
type ChangeFrequency string

const (
	FrequencyAlways  ChangeFrequency = "always"
	FrequencyHourly  ChangeFrequency = "hourly"
	FrequencyDaily   ChangeFrequency = "daily"
	FrequencyWeekly  ChangeFrequency = "weekly"
	FrequencyMonthly ChangeFrequency = "monthly"
	FrequencyYearly  ChangeFrequency = "yearly"
	FrequencyNever   ChangeFrequency = "never"
)

var frequencyNormalizer = normalization.NewNormalizer(map[string]ChangeFrequency{
	"always":  FrequencyAlways,
	"hourly":  FrequencyHourly,
	"daily":   FrequencyDaily,
	"weekly":  FrequencyWeekly,
	"monthly": FrequencyMonthly,
	"yearly":  FrequencyYearly,
	"never":   FrequencyNever,
}, FrequencyWeekly)

func NormalizeChangeFrequency(raw string) ChangeFrequency {
	return frequencyNormalizer.Normalize(raw)
}
