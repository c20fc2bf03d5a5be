package frontmatter

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
)

// DateLayout is the canonical rendering of a post date.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Meta is the validated header of a post.
type Meta struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"` // calendar day at 00:00 UTC
	Tags        []string  `json:"tags"` // source order
}

// HasTag reports whether tag is present, compared case-sensitively.
func (m Meta) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FieldError describes one problem with one header field.
type FieldError struct {
	Field   string
	Problem string
}

func (f FieldError) String() string { return f.Field + ": " + f.Problem }

// ValidationError collects every field problem of a document header.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return cerrors.ErrMalformedFrontmatter.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return cerrors.ErrMalformedFrontmatter }

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Problem: fmt.Sprintf(format, args...)})
}

// ParseMeta decodes and validates the header of content and returns it with the body.
// It is a pure function of its input.
func ParseMeta(content []byte) (Meta, []byte, error) {
	fields, body, err := Decode(content)
	if err != nil {
		return Meta{}, nil, err
	}
	meta, err := MetaFromFields(fields)
	if err != nil {
		return Meta{}, nil, err
	}
	return meta, body, nil
}

// MetaFromFields validates a decoded header map. All problems are reported
// together in a *ValidationError.
func MetaFromFields(fields map[string]any) (Meta, error) {
	var meta Meta
	verr := &ValidationError{}

	meta.Title = requireText(verr, fields, "title")
	meta.Description = requireText(verr, fields, "description")

	if raw, ok := fields["date"]; !ok || raw == nil {
		verr.add("date", "missing")
	} else if d, err := ParseDate(raw); err != nil {
		verr.add("date", "%v", err)
	} else {
		meta.Date = d
	}

	if raw, ok := fields["tags"]; !ok || raw == nil {
		verr.add("tags", "missing")
	} else {
		meta.Tags = parseTags(verr, raw)
	}

	if len(verr.Fields) > 0 {
		return Meta{}, verr
	}
	return meta, nil
}

func requireText(verr *ValidationError, fields map[string]any, key string) string {
	raw, ok := fields[key]
	if !ok || raw == nil {
		verr.add(key, "missing")
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		verr.add(key, "expected string, got %T", raw)
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		verr.add(key, "blank")
	}
	return s
}

// ParseDate coerces a header date into the written calendar day at 00:00 UTC.
// Accepted inputs are time.Time and strings in DateLayout, RFC 3339 (seconds
// optional) or date-time without zone.
func ParseDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return calendarDay(v), nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return calendarDay(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", v)
	default:
		return time.Time{}, fmt.Errorf("expected date, got %T", raw)
	}
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseTags(verr *ValidationError, raw any) []string {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		verr.add("tags", "expected list of strings, got %T", raw)
		return nil
	}

	tags := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			verr.add("tags", "item %d: expected string, got %T", i, item)
			continue
		}
		s = norm.NFC.String(strings.TrimSpace(s))
		if s == "" {
			verr.add("tags", "item %d: blank", i)
			continue
		}
		tags = append(tags, s)
	}
	return tags
}
