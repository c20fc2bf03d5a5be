package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/devlog/internal/compiler"
	"git.home.luguber.info/inful/devlog/internal/config"
	"git.home.luguber.info/inful/devlog/internal/content"
	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
	"git.home.luguber.info/inful/devlog/internal/foundation"
	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/frontmatter"
	"git.home.luguber.info/inful/devlog/internal/index"
	"git.home.luguber.info/inful/devlog/internal/logfields"
	"git.home.luguber.info/inful/devlog/internal/markdown"
	"git.home.luguber.info/inful/devlog/internal/metrics"
	"git.home.luguber.info/inful/devlog/internal/notify"
	"git.home.luguber.info/inful/devlog/internal/observability"
	"git.home.luguber.info/inful/devlog/internal/revision"
	"git.home.luguber.info/inful/devlog/internal/seo"
)

const notifyTimeout = 5 * time.Second

// Result is the output of a build. Index and SEO are nil when the build failed.
type Result struct {
	Index  *index.Index
	SEO    *seo.Adapter
	Report *Report
}

// Pipeline runs builds for one configuration. It keeps no state between runs.
type Pipeline struct {
	cfg       *config.Config
	locator   *content.Locator
	compiler  *compiler.Compiler
	recorder  metrics.Recorder
	publisher notify.Publisher
	now       func() time.Time
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(p *Pipeline) {
		if r != nil {
			p.recorder = r
		}
	}
}

// WithPublisher sets where build events are sent.
func WithPublisher(pub notify.Publisher) Option {
	return func(p *Pipeline) {
		if pub != nil {
			p.publisher = pub
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New creates a pipeline for cfg.
func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:       cfg,
		locator:   content.NewLocator(cfg.Content.Root, cfg.Content.Extensions),
		compiler:  compiler.New(CompilerOptions(cfg)),
		recorder:  metrics.NoopRecorder{},
		publisher: notify.NoopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CompilerOptions derives body compiler settings from cfg.
func CompilerOptions(cfg *config.Config) compiler.Options {
	host := ""
	if u, err := url.Parse(cfg.Site.BaseURL); err == nil {
		host = u.Host
	}
	return compiler.Options{
		PublicPath:   cfg.Content.PublicPath,
		SiteHost:     host,
		VerifyAssets: cfg.Content.VerifyAssets,
		Markdown: markdown.Options{
			Safe:       cfg.Markdown.SafeMode,
			Extensions: cfg.Markdown.Extensions,
		},
	}
}

// SEOOptions derives static enumeration settings from cfg.
func SEOOptions(cfg *config.Config) seo.Options {
	rule := func(r config.SitemapRule) seo.Rule {
		return seo.Rule{ChangeFrequency: string(r.ChangeFrequency), Priority: r.Priority}
	}
	return seo.Options{
		BaseURL:    cfg.Site.BaseURL,
		PublicPath: cfg.Content.PublicPath,
		SiteName:   cfg.Site.Title,
		Home:       rule(cfg.Sitemap.Home),
		Listing:    rule(cfg.Sitemap.Listing),
		Post:       rule(cfg.Sitemap.Post),
	}
}

// Run executes one full build. The returned Result always carries the
// Report, also when err is non-nil.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := p.now()
	report := &Report{
		BuildID:   uuid.NewString(),
		StartedAt: start.UTC(),
		Stages:    make(map[string]time.Duration, 3),
	}
	rev, err := revision.Lookup(p.locator.Root())
	if err != nil {
		slog.Debug("Revision lookup failed", logfields.Path(p.locator.Root()), logfields.Error(err))
	}
	report.Revision = rev

	ctx = observability.WithBuildID(ctx, report.BuildID)
	ctx = observability.WithRevision(ctx, rev)
	slog.InfoContext(ctx, "Build started", logfields.Path(p.locator.Root()))

	result, err := p.run(ctx, report)
	report.Duration = p.now().Sub(start)
	p.finish(ctx, report, err)
	if result == nil {
		result = &Result{}
	}
	result.Report = report
	return result, err
}

func (p *Pipeline) run(ctx context.Context, report *Report) (*Result, error) {
	var docs []content.Document
	err := p.stage(ctx, report, StageLocate, func(ctx context.Context) error {
		located, err := p.locator.Locate()
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryDiscovery, "failed to locate content").
				Fatal().WithContext("root", p.locator.Root()).Build()
		}
		ids := make([]string, len(located))
		for i, d := range located {
			ids[i] = d.ID
		}
		if err := index.CheckUnique(ids); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryIndex, "duplicate post identifiers").
				Fatal().Build()
		}
		docs = located
		report.Located = len(located)
		slog.DebugContext(ctx, "Content located", logfields.Count(len(located)))
		return nil
	})
	if err != nil {
		return nil, err
	}

	var posts []*index.Post
	err = p.stage(ctx, report, StageCompile, func(ctx context.Context) error {
		results := runOrdered(docs, p.cfg.Build.Concurrency, func(d content.Document) foundation.Result[*index.Post, Issue] {
			return p.process(d)
		})
		var issues []Issue
		posts, issues = foundation.Partition(results)
		for _, issue := range issues {
			slog.WarnContext(ctx, "Post skipped",
				logfields.PostID(issue.ID),
				logfields.Path(issue.Path),
				logfields.Stage(issue.Stage),
				logfields.Error(issue.Err))
			p.recorder.IncDocumentResult(metrics.ResultSkipped, string(issue.Err.Category()))
		}
		for range posts {
			p.recorder.IncDocumentResult(metrics.ResultIndexed, "")
		}
		report.Issues = issues
		if len(issues) > 0 && p.cfg.Build.Strict {
			errs := make([]error, len(issues))
			for i, issue := range issues {
				errs[i] = issue
			}
			return ferrors.WrapError(errors.Join(errs...), ferrors.CategoryBuild,
				fmt.Sprintf("%d post(s) failed in strict mode", len(issues))).
				Fatal().WithContext("skipped", len(issues)).Build()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var idx *index.Index
	err = p.stage(ctx, report, StageIndex, func(context.Context) error {
		built, err := index.Build(posts)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryIndex, "failed to build index").Fatal().Build()
		}
		idx = built
		report.Indexed = built.Len()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Index: idx, SEO: seo.New(idx, SEOOptions(p.cfg))}, nil
}

// process reads, parses and compiles one document.
func (p *Pipeline) process(d content.Document) foundation.Result[*index.Post, Issue] {
	fail := func(stage string, category ferrors.ErrorCategory, err error) foundation.Result[*index.Post, Issue] {
		classified := ferrors.WrapError(err, category, "post skipped").Warning().ForPost(d.ID, d.Path).Build()
		return foundation.Err[*index.Post](Issue{ID: d.ID, Path: d.Path, Stage: stage, Err: classified})
	}

	raw, err := d.Read()
	if err != nil {
		return fail("read", ferrors.CategoryFileSystem, err)
	}
	meta, body, err := frontmatter.ParseMeta(raw)
	if err != nil {
		return fail("frontmatter", ferrors.CategoryFrontmatter, err)
	}
	compiled, err := p.compiler.Compile(d.ID, body, d.Assets())
	if err != nil {
		return fail("compile", ferrors.CategoryCompilation, err)
	}
	fp, err := index.Fingerprint(meta, body)
	if err != nil {
		return fail("fingerprint", ferrors.CategoryInternal, fmt.Errorf("%w: fingerprint: %w", cerrors.ErrCompilation, err))
	}
	return foundation.Ok[*index.Post, Issue](&index.Post{
		ID:          d.ID,
		Frontmatter: meta,
		Body:        compiled,
		Fingerprint: fp,
		Source:      d.Path,
		AssetDir:    d.AssetDir,
		Unit:        d.Unit,
	})
}

func (p *Pipeline) stage(ctx context.Context, report *Report, name string, fn func(context.Context) error) error {
	ctx = observability.WithStage(ctx, name)
	start := p.now()
	err := fn(ctx)
	d := p.now().Sub(start)
	report.Stages[name] = d
	p.recorder.ObserveStageDuration(name, d)
	if err != nil {
		slog.ErrorContext(ctx, "Stage failed", logfields.Error(err))
	}
	return err
}

func (p *Pipeline) finish(ctx context.Context, report *Report, err error) {
	outcome := report.Outcome(err)
	p.recorder.ObserveBuildDuration(report.Duration)
	p.recorder.IncBuildOutcome(outcome)
	if err == nil {
		p.recorder.SetIndexedPosts(report.Indexed)
		slog.InfoContext(ctx, "Build completed",
			logfields.Count(report.Indexed),
			slog.Int("skipped", report.Skipped()),
			logfields.DurationMS(float64(report.Duration.Milliseconds())))
	}

	event := notify.BuildCompleted{
		BuildID:    report.BuildID,
		Revision:   report.Revision,
		Outcome:    string(outcome),
		Posts:      report.Indexed,
		Skipped:    report.Skipped(),
		DurationMS: float64(report.Duration.Milliseconds()),
		Timestamp:  p.now().UTC(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if perr := p.publisher.PublishBuildCompleted(pubCtx, event); perr != nil {
		slog.WarnContext(ctx, "Failed to publish build event", logfields.Error(perr))
	}
}
