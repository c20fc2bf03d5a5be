package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"git.home.luguber.info/inful/devlog/internal/build"
	"git.home.luguber.info/inful/devlog/internal/index"
	"git.home.luguber.info/inful/devlog/internal/seo"
	"git.home.luguber.info/inful/devlog/internal/server/responses"
)

// Snapshot is one successful build as served to readers.
type Snapshot struct {
	Index   *index.Index
	SEO     *seo.Adapter
	Report  *build.Report
	BuiltAt time.Time
}

// NewSnapshot wraps a successful build result.
func NewSnapshot(res *build.Result, builtAt time.Time) *Snapshot {
	return &Snapshot{Index: res.Index, SEO: res.SEO, Report: res.Report, BuiltAt: builtAt}
}

// SnapshotSource returns the snapshot to serve, nil before the first successful build.
type SnapshotSource interface {
	Snapshot() *Snapshot
}

// current returns the snapshot or aborts the request with 503.
func current(c *gin.Context, src SnapshotSource) (*Snapshot, bool) {
	snap := src.Snapshot()
	if snap == nil || snap.Index == nil {
		responses.SendError(c, http.StatusServiceUnavailable, responses.ErrorCodeIndexUnavailable, "no successful build yet")
		return nil, false
	}
	return snap, true
}
