package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/devlog/cmd/devlog/commands"
	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("devlog"),
		kong.Description("Build, query and preview a Markdown blog"),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)
	if err := parser.Run(cli); err != nil {
		adapter := ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default())
		adapter.Log(err)
		fmt.Fprintln(os.Stderr, adapter.FormatError(err))
		os.Exit(adapter.ExitCodeFor(err))
	}
}
