package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/oktasync/internal/flagx"
	"github.com/dmitrijs2005/oktasync/internal/service"
)

func (a *App) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(a.errw)
	id := fs.String("id", "", "user id")
	email := fs.String("email", "", "profile email")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")

	allowed := []string{"-id", "--id", "-email", "--email", "-yes", "--yes"}
	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		return err
	}

	if err := a.connect(ctx); err != nil {
		return err
	}

	if !*yes {
		target := *id
		if target == "" {
			target = *email
		}
		ok, err := a.confirm(fmt.Sprintf("delete user %s? This cannot be undone.", target))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "aborted")
			return nil
		}
	}

	deletedID, err := a.users.Delete(ctx, service.Selector{ID: *id, Email: *email})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted %s\n", deletedID)
	return nil
}

// confirm asks a y/N question; anything but an explicit yes declines.
func (a *App) confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(a.out, "%s [y/N] ", question); err != nil {
		return false, err
	}
	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
