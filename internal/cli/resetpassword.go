package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/flagx"
)

func (a *App) resetPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	fs.SetOutput(a.errw)
	id := fs.String("id", "", "user id")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-id", "--id"})); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("--id is required: %w", common.ErrValidation)
	}

	if err := a.connect(ctx); err != nil {
		return err
	}

	url, err := a.users.ResetPassword(ctx, *id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "password reset started for %s, notification email sent\n", *id)
	if url != "" {
		fmt.Fprintf(a.out, "reset link: %s\n", url)
	}
	return nil
}
