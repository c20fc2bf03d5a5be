package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(NewHandler(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func TestScopeAccumulates(t *testing.T) {
	ctx := WithBuildID(context.Background(), "b-1")
	ctx = WithStage(ctx, "compile")
	ctx = WithRevision(ctx, "abc1234")

	require.Equal(t, Scope{BuildID: "b-1", Stage: "compile", Revision: "abc1234"}, ScopeFrom(ctx))
	require.Equal(t, Scope{}, ScopeFrom(context.Background()))
	require.Empty(t, Scope{}.Attrs())
}

func TestHandlerAddsScope(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf).With(slog.String("component", "build"))
	ctx := WithStage(WithBuildID(context.Background(), "b-2"), "index")

	logger.InfoContext(ctx, "indexed", slog.Int("count", 3))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "indexed", line["msg"])
	require.Equal(t, "build", line["component"])
	require.Equal(t, "b-2", line["build_id"])
	require.Equal(t, "index", line["stage"])
	require.EqualValues(t, 3, line["count"])
	_, hasRev := line["revision"]
	require.False(t, hasRev)
}

func TestHandlerWithoutScope(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf).Info("plain")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	_, has := line["build_id"]
	require.False(t, has)
}

func TestNewHandlerDoesNotDoubleWrap(t *testing.T) {
	h := NewHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))
	require.Same(t, h, NewHandler(h))
}
