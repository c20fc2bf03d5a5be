package errors

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/devlog/internal/logfields"
)

// CLIErrorAdapter turns command errors into exit codes, messages and log records.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor returns ExitOK for nil and ExitGeneric for unclassified errors.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}
	classified, ok := AsClassified(err)
	if !ok {
		return ExitGeneric
	}
	return classified.category.ExitCode()
}

// FormatError renders err for stderr. Verbose output adds the category,
// severity and fields.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if !a.verbose {
		if classified.cause == nil {
			return classified.message
		}
		return fmt.Sprintf("%s: %v", classified.message, classified.cause)
	}

	var b strings.Builder
	b.WriteString(classified.Error())
	for _, f := range classified.fields {
		fmt.Fprintf(&b, " %s=%s", f.Key, f.Value)
	}
	return b.String()
}

// Log writes err at a level derived from its severity.
func (a *CLIErrorAdapter) Log(err error) {
	if err == nil {
		return
	}
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", logfields.Error(err))
		return
	}

	attrs := append([]slog.Attr{slog.String("category", string(classified.category))}, classified.fields...)
	if classified.cause != nil {
		attrs = append(attrs, logfields.Error(classified.cause))
	}
	level := slog.LevelError
	if classified.severity == SeverityWarning {
		level = slog.LevelWarn
	}
	a.logger.LogAttrs(context.Background(), level, classified.message, attrs...)
}
