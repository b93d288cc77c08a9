package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/flagx"
)

func (a *App) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(a.errw)
	id := fs.String("id", "", "user id")
	profileJSON := fs.String("profile", "", `partial profile as JSON, e.g. '{"firstName":"Ada"}'`)

	allowed := []string{"-id", "--id", "-profile", "--profile"}
	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		return err
	}

	if *id == "" {
		return fmt.Errorf("--id is required: %w", common.ErrValidation)
	}
	var profile map[string]any
	if err := json.Unmarshal([]byte(*profileJSON), &profile); err != nil {
		return fmt.Errorf("--profile is not valid JSON: %w", common.ErrValidation)
	}
	if len(profile) == 0 {
		return fmt.Errorf("--profile must set at least one field: %w", common.ErrValidation)
	}

	if err := a.connect(ctx); err != nil {
		return err
	}

	rec, err := a.users.Update(ctx, *id, profile)
	if err != nil {
		return err
	}
	a.printRecords(*rec)
	return nil
}
