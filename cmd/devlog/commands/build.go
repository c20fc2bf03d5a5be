package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/devlog/internal/build"
	"git.home.luguber.info/inful/devlog/internal/export"
	"git.home.luguber.info/inful/devlog/internal/notify"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override output.directory"`
	Clean  bool   `help:"Replace the output directory instead of writing over it"`
	Strict bool   `help:"Fail when any post is skipped"`
	DryRun bool   `name:"dry-run" help:"Build the index without exporting"`
}

func (b *BuildCmd) Run(root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.Clean {
		cfg.Output.Clean = true
	}
	if b.Strict {
		cfg.Build.Strict = true
	}

	publisher, err := notify.New(cfg.Notify.NATSURL, cfg.Notify.Subject)
	if err != nil {
		slog.Warn("Build notifications disabled", "error", err)
		publisher = notify.NoopPublisher{}
	}
	defer publisher.Close()

	ctx := context.Background()
	res, err := runBuild(ctx, cfg, build.WithPublisher(publisher))
	if err != nil {
		return err
	}
	report := res.Report
	fmt.Fprintf(root.out(), "Indexed %d of %d posts", report.Indexed, report.Located)
	if report.Skipped() > 0 {
		fmt.Fprintf(root.out(), " (%d skipped)", report.Skipped())
	}
	fmt.Fprintf(root.out(), " in %s\n", report.Duration.Round(time.Millisecond))
	for _, issue := range report.Issues {
		fmt.Fprintf(root.out(), "  skipped %s: %v\n", issue.ID, issue.Err.Cause())
	}
	if b.DryRun {
		return nil
	}

	exp := export.New(export.Options{
		Directory:  cfg.Output.Directory,
		Clean:      cfg.Output.Clean,
		PublicPath: cfg.Content.PublicPath,
		IsDocument: newLocator(cfg).IsDocument,
	})
	summary, err := exp.Export(ctx, res.Index, res.SEO)
	if err != nil {
		return err
	}
	fmt.Fprintf(root.out(), "Exported %d posts and %d assets to %s\n", summary.Posts, summary.Assets, summary.Directory)
	return nil
}
