package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/oktasync/internal/flagx"
	"github.com/dmitrijs2005/oktasync/internal/syncer"
)

// sync runs one full mirror pass. Per-record skips and failures are reported
// in the summary and do not fail the command; only a fatal remote error does.
func (a *App) sync(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	fs.SetOutput(a.errw)
	n := fs.Int("n", a.cfg.SyncConcurrency, "sync concurrency (0 = auto)")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-n"})); err != nil {
		return err
	}
	a.cfg.SyncConcurrency = *n

	if err := a.connect(ctx); err != nil {
		return err
	}

	sum, err := a.runSyncPass(ctx)
	if sum != nil {
		a.printSummary(sum)
	}
	return err
}

func (a *App) printSummary(sum *syncer.Summary) {
	fmt.Fprintf(a.out, "synced %d users over %d pages in %s\n", sum.Seen, sum.Pages, sum.Duration.Round(10*time.Millisecond))
	fmt.Fprintf(a.out, "  upserted:  %d\n", sum.Upserted)
	fmt.Fprintf(a.out, "  unchanged: %d\n", sum.Unchanged)
	fmt.Fprintf(a.out, "  skipped:   %d\n", sum.Skipped)
	fmt.Fprintf(a.out, "  failed:    %d\n", sum.Failed)

	for _, s := range sum.Skips {
		fmt.Fprintf(a.out, "  skipped %s: %s\n", s.ID, s.Reason)
	}
	for _, f := range sum.Failures {
		fmt.Fprintf(a.out, "  failed %s: %s\n", f.ID, f.Reason)
	}
}
