package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/flagx"
)

func (a *App) list(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(a.errw)
	page := fs.Int("page", 1, "page number, starting at 1")
	limit := fs.Int("limit", 20, "users per page")

	allowed := []string{"-page", "--page", "-limit", "--limit"}
	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		return err
	}
	if *page < 1 || *limit < 1 {
		return fmt.Errorf("--page and --limit must be positive: %w", common.ErrValidation)
	}

	if err := a.connect(ctx); err != nil {
		return err
	}

	records, total, err := a.users.List(ctx, (*page-1)*(*limit), *limit)
	if err != nil {
		return err
	}

	a.printRecords(records...)
	fmt.Fprintf(a.out, "page %d, showing %d of %d users\n", *page, len(records), total)
	return nil
}
