package build

import (
	"time"

	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/metrics"
)

// Stage names used in logs, metrics and Report.Stages.
const (
	StageLocate  = "locate"
	StageCompile = "compile"
	StageIndex   = "index"
)

// Issue is a post that was left out of the index.
type Issue struct {
	ID    string
	Path  string
	Stage string
	Err   *ferrors.ClassifiedError
}

func (i Issue) Error() string { return i.Err.Error() }

func (i Issue) Unwrap() error { return i.Err }

// Report summarizes one build.
type Report struct {
	BuildID   string
	Revision  string
	StartedAt time.Time
	Duration  time.Duration
	Located   int
	Indexed   int
	Issues    []Issue
	Stages    map[string]time.Duration
}

// Skipped is the number of located posts missing from the index.
func (r *Report) Skipped() int { return len(r.Issues) }

// Outcome classifies the build for metrics and notifications.
func (r *Report) Outcome(err error) metrics.BuildOutcomeLabel {
	switch {
	case err != nil:
		return metrics.BuildOutcomeFailed
	case len(r.Issues) > 0:
		return metrics.BuildOutcomeWarning
	default:
		return metrics.BuildOutcomeSuccess
	}
}
