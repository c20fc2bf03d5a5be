package metrics

import "time"

// ResultLabel enumerates per-document result categories.
type ResultLabel string

const (
	ResultIndexed ResultLabel = "indexed"
	ResultSkipped ResultLabel = "skipped"
)

// BuildOutcomeLabel enumerates final build outcomes.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess BuildOutcomeLabel = "success"
	BuildOutcomeWarning BuildOutcomeLabel = "warning" // built with skipped posts
	BuildOutcomeFailed  BuildOutcomeLabel = "failed"
)

// Recorder defines observability hooks for the build pipeline.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncDocumentResult(result ResultLabel, reason string)
	SetIndexedPosts(n int)
	IncBuildOutcome(outcome BuildOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncDocumentResult(ResultLabel, string)      {}
func (NoopRecorder) SetIndexedPosts(int)                        {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)          {}
