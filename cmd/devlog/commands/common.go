// Package commands implements the devlog subcommands.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/devlog/internal/build"
	"git.home.luguber.info/inful/devlog/internal/config"
	"git.home.luguber.info/inful/devlog/internal/content"
	"git.home.luguber.info/inful/devlog/internal/observability"
)

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"devlog.yaml" env:"DEVLOG_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Build the index and export the static site"`
	List  ListCmd  `cmd:"" help:"List posts newest first"`
	Show  ShowCmd  `cmd:"" help:"Show the metadata and outline of one post"`
	Serve ServeCmd `cmd:"" help:"Serve the read API and rebuild on change"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration file"`

	// Out receives command output. nil means stdout.
	Out io.Writer `kong:"-"`
	// Err receives logs. nil means stderr.
	Err io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; set up logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(observability.NewHandler(slog.NewTextHandler(c.errWriter(), &slog.HandlerOptions{Level: level}))))
	return nil
}

// LoadConfig loads the configuration, falling back to defaults when the file
// does not exist, and switches logging to the configured handler.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(c.Config)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(cfg.Logging.NewLogger(c.errWriter(), c.Verbose))
	return cfg, nil
}

func (c *CLI) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *CLI) errWriter() io.Writer {
	if c.Err == nil {
		return os.Stderr
	}
	return c.Err
}

// runBuild runs one build for cfg.
func runBuild(ctx context.Context, cfg *config.Config, opts ...build.Option) (*build.Result, error) {
	return build.New(cfg, opts...).Run(ctx)
}

func newLocator(cfg *config.Config) *content.Locator {
	return content.NewLocator(cfg.Content.Root, cfg.Content.Extensions)
}
