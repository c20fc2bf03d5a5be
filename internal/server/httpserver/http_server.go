// Package httpserver wires the devlog preview server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"git.home.luguber.info/inful/devlog/internal/config"
	"git.home.luguber.info/inful/devlog/internal/logfields"
	"git.home.luguber.info/inful/devlog/internal/server/handlers"
	smw "git.home.luguber.info/inful/devlog/internal/server/middleware"
)

// Options carries optional server dependencies.
type Options struct {
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// IsDocument identifies document sources so they are never served as assets.
	IsDocument func(name string) bool
}

// Server serves the read API over the latest successful build.
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	srv      *http.Server
	snapshot atomic.Pointer[handlers.Snapshot]
}

// New constructs a server. It serves 503 until Swap is called.
func New(cfg *config.Config, opts Options) *Server {
	if opts.IsDocument == nil {
		opts.IsDocument = func(string) bool { return false }
	}
	s := &Server{cfg: cfg}

	router := gin.New()
	router.Use(smw.Recovery(slog.Default()), smw.Logging(slog.Default()))

	monitoring := handlers.NewMonitoringHandlers(s, opts.Metrics)
	posts := handlers.NewPostHandlers(s, cfg.Listing.PageSize, cfg.Listing.Recent, cfg.Listing.PageWindow)
	site := handlers.NewSiteHandlers(s, opts.IsDocument)

	router.GET("/healthz", monitoring.HandleHealth)
	router.GET("/metrics", monitoring.HandleMetrics)
	router.GET("/sitemap.xml", site.HandleSitemap)
	router.GET("/robots.txt", site.HandleRobots)

	api := router.Group("/api")
	{
		api.GET("/posts", posts.HandleList)
		api.GET("/posts/:id", posts.HandleGet)
		api.GET("/posts/:id/meta", posts.HandleMeta)
		api.GET("/tags", posts.HandleTags)
		api.GET("/recent", posts.HandleRecent)
		api.GET("/routes", posts.HandleRoutes)
	}

	router.GET("/"+strings.Trim(cfg.Content.PublicPath, "/")+"/:id/*asset", site.HandleAsset)

	s.router = router
	return s
}

// Snapshot returns the snapshot currently served.
func (s *Server) Snapshot() *handlers.Snapshot {
	return s.snapshot.Load()
}

// Swap replaces the served snapshot. In-flight requests finish on the old one.
func (s *Server) Swap(snap *handlers.Snapshot) {
	s.snapshot.Store(snap)
	if snap != nil && snap.Index != nil {
		slog.Info("Serving new index", logfields.Count(snap.Index.Len()))
	}
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.router }

// Start binds the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("http startup failed: %w", err)
	}
	s.srv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("preview server error", logfields.Error(err))
		}
	}()
	slog.Info("Preview server started", slog.String("addr", ln.Addr().String()))
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("preview server shutdown: %w", err)
	}
	slog.Info("Preview server stopped")
	return nil
}
