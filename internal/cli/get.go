package cli

import (
	"context"
	"flag"

	"github.com/dmitrijs2005/oktasync/internal/flagx"
	"github.com/dmitrijs2005/oktasync/internal/service"
)

func (a *App) get(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	fs.SetOutput(a.errw)
	id := fs.String("id", "", "user id")
	email := fs.String("email", "", "profile email")
	source := fs.String("source", "local", "where to read from: local or remote")

	allowed := []string{"-id", "--id", "-email", "--email", "-source", "--source"}
	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		return err
	}

	src, err := service.ParseSource(*source)
	if err != nil {
		return err
	}
	if err := a.connect(ctx); err != nil {
		return err
	}

	rec, err := a.users.Get(ctx, service.Selector{ID: *id, Email: *email}, src)
	if err != nil {
		return err
	}
	a.printRecords(*rec)
	return nil
}
