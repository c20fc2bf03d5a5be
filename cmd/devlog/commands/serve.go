package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/devlog/internal/build"
	"git.home.luguber.info/inful/devlog/internal/metrics"
	"git.home.luguber.info/inful/devlog/internal/notify"
	"git.home.luguber.info/inful/devlog/internal/server/httpserver"
	"git.home.luguber.info/inful/devlog/internal/watch"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr    string `help:"Override server.addr"`
	NoWatch bool   `name:"no-watch" help:"Do not rebuild on content changes"`
}

func (s *ServeCmd) Run(root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Server.Addr = s.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheusRecorder(reg)

	publisher, err := notify.New(cfg.Notify.NATSURL, cfg.Notify.Subject)
	if err != nil {
		slog.Warn("Build notifications disabled", "error", err)
		publisher = notify.NoopPublisher{}
	}
	defer publisher.Close()

	pipeline := build.New(cfg, build.WithRecorder(recorder), build.WithPublisher(publisher))
	srv := httpserver.New(cfg, httpserver.Options{
		Metrics:    metrics.HTTPHandler(reg),
		IsDocument: newLocator(cfg).IsDocument,
	})
	reload := watch.Reload(pipeline, srv)

	if err := reload(ctx, "startup"); err != nil {
		slog.Warn("Initial build failed; serving 503 until a rebuild succeeds", "error", err)
	}
	if err := srv.Start(ctx); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Warn("HTTP server shutdown error", "error", err)
		}
	}()

	if s.NoWatch {
		<-ctx.Done()
		return nil
	}
	w := watch.New(cfg.Content.Root, cfg.Server.DebounceDuration(), cfg.Server.RebuildIntervalDuration(), reload)
	return w.Run(ctx)
}
