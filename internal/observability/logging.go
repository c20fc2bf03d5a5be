// Package observability carries build-scoped logging context (build ID,
// stage, revision) through a context.Context so that log lines emitted deep
// inside the pipeline can be correlated with the build that produced them.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/devlog/internal/logfields"
)

// Scope identifies the build a log record belongs to.
type Scope struct {
	BuildID  string
	Stage    string
	Revision string
}

type scopeKey struct{}

func withScope(ctx context.Context, update func(*Scope)) context.Context {
	s := ScopeFrom(ctx)
	update(&s)
	return context.WithValue(ctx, scopeKey{}, s)
}

func WithBuildID(ctx context.Context, id string) context.Context {
	return withScope(ctx, func(s *Scope) { s.BuildID = id })
}

func WithStage(ctx context.Context, stage string) context.Context {
	return withScope(ctx, func(s *Scope) { s.Stage = stage })
}

func WithRevision(ctx context.Context, rev string) context.Context {
	return withScope(ctx, func(s *Scope) { s.Revision = rev })
}

// ScopeFrom returns the scope stored in ctx, zero when there is none.
func ScopeFrom(ctx context.Context) Scope {
	if ctx == nil {
		return Scope{}
	}
	s, _ := ctx.Value(scopeKey{}).(Scope)
	return s
}

// Attrs returns the non-empty scope fields as log attributes.
func (s Scope) Attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 3)
	if s.BuildID != "" {
		attrs = append(attrs, logfields.BuildID(s.BuildID))
	}
	if s.Stage != "" {
		attrs = append(attrs, logfields.Stage(s.Stage))
	}
	if s.Revision != "" {
		attrs = append(attrs, logfields.Revision(s.Revision))
	}
	return attrs
}

// Handler adds the scope found in a record's context to the record.
type Handler struct {
	next slog.Handler
}

// NewHandler wraps next. Wrapping an already wrapped handler is a no-op.
func NewHandler(next slog.Handler) *Handler {
	if h, ok := next.(*Handler); ok {
		return h
	}
	return &Handler{next: next}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := ScopeFrom(ctx).Attrs(); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.next.Handle(ctx, r)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{next: h.next.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name)}
}
