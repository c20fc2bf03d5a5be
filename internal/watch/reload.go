package watch

import (
	"context"
	"time"

	"git.home.luguber.info/inful/devlog/internal/build"
	"git.home.luguber.info/inful/devlog/internal/server/handlers"
)

// Runner runs one build.
type Runner interface {
	Run(ctx context.Context) (*build.Result, error)
}

// Target receives new snapshots.
type Target interface {
	Swap(snap *handlers.Snapshot)
}

// Reload returns a RebuildFunc that builds and swaps the result into target.
// A failed build leaves the served snapshot untouched.
func Reload(runner Runner, target Target) RebuildFunc {
	return func(ctx context.Context, _ string) error {
		res, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		target.Swap(handlers.NewSnapshot(res, time.Now()))
		return nil
	}
}
