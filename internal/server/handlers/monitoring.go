package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"git.home.luguber.info/inful/devlog/internal/server/responses"
	"git.home.luguber.info/inful/devlog/internal/version"
)

// MonitoringHandlers contains health and metrics handlers.
type MonitoringHandlers struct {
	source  SnapshotSource
	started time.Time
	metrics http.Handler
}

// NewMonitoringHandlers creates monitoring handlers. metrics may be nil.
func NewMonitoringHandlers(source SnapshotSource, metrics http.Handler) *MonitoringHandlers {
	return &MonitoringHandlers{source: source, started: time.Now(), metrics: metrics}
}

// HandleHealth serves GET /healthz. It reports 503 until the first build succeeded.
func (h *MonitoringHandlers) HandleHealth(c *gin.Context) {
	resp := responses.HealthResponse{
		Status:  "starting",
		Version: version.Version,
		Uptime:  time.Since(h.started).Seconds(),
	}
	snap := h.source.Snapshot()
	if snap == nil || snap.Index == nil {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	resp.Status = "healthy"
	resp.Posts = snap.Index.Len()
	builtAt := snap.BuiltAt.UTC()
	resp.BuiltAt = &builtAt
	if snap.Report != nil {
		resp.BuildID = snap.Report.BuildID
		resp.Revision = snap.Report.Revision
		resp.Skipped = snap.Report.Skipped()
	}
	c.JSON(http.StatusOK, resp)
}

// HandleMetrics serves GET /metrics.
func (h *MonitoringHandlers) HandleMetrics(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.metrics.ServeHTTP(c.Writer, c.Request)
}
