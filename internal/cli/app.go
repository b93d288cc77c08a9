package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/oktasync/internal/common"
	"github.com/dmitrijs2005/oktasync/internal/config"
	"github.com/dmitrijs2005/oktasync/internal/logging"
	"github.com/dmitrijs2005/oktasync/internal/models"
	"github.com/dmitrijs2005/oktasync/internal/okta"
	"github.com/dmitrijs2005/oktasync/internal/service"
	"github.com/dmitrijs2005/oktasync/internal/storage"
	"github.com/dmitrijs2005/oktasync/internal/syncer"
)

// directory is the slice of the service layer the commands need.
type directory interface {
	Get(ctx context.Context, sel service.Selector, src service.Source) (*models.UserRecord, error)
	Update(ctx context.Context, id string, profile map[string]any) (*models.UserRecord, error)
	Delete(ctx context.Context, sel service.Selector) (string, error)
	ResetPassword(ctx context.Context, id string) (string, error)
	List(ctx context.Context, offset, limit int) ([]models.UserRecord, int, error)
}

type App struct {
	cfg  *config.Config
	log  logging.Logger
	out  io.Writer
	errw io.Writer
	in   *bufio.Reader

	// wired lazily on first use; preset in tests
	users       directory
	runSyncPass func(ctx context.Context) (*syncer.Summary, error)
	closeDB     func() error
}

func NewApp(cfg *config.Config, log logging.Logger, out, errw io.Writer, in io.Reader) *App {
	return &App{
		cfg:  cfg,
		log:  log,
		out:  out,
		errw: errw,
		in:   bufio.NewReader(in),
	}
}

// Close releases the mirror database, if one was opened.
func (a *App) Close() {
	if a.closeDB != nil {
		_ = a.closeDB()
	}
}

// connect opens the mirror database and builds the remote client and the
// service layer. configure is the only command that works without it.
func (a *App) connect(ctx context.Context) error {
	if a.users != nil {
		return nil
	}

	if a.cfg.APIURL == "" || a.cfg.APIToken == "" {
		return fmt.Errorf("no API credentials, run \"oktasync configure\" first: %w", common.ErrValidation)
	}

	db, err := storage.Open(ctx, a.cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening mirror database %s: %w", a.cfg.DatabasePath, err)
	}
	a.closeDB = db.Close

	repo := storage.NewSQLiteRepository(db)
	client := okta.New(a.cfg.APIURL, a.cfg.APIToken, a.cfg.RequestTimeout, a.log)

	a.users = service.NewUsers(client, repo, a.log)
	a.runSyncPass = func(ctx context.Context) (*syncer.Summary, error) {
		e := syncer.New(client, repo, a.log, a.cfg.SyncConcurrency)
		return e.WithProgress(func(p syncer.Progress) {
			fmt.Fprintf(a.out, "page %d, %d users seen\n", p.Pages, p.Seen)
		}).Run(ctx)
	}
	return nil
}

// Run dispatches to the named subcommand and returns the process exit code.
// args is the raw argument list after the program name; global flags before
// the command name are skipped (the config package owns them).
func (a *App) Run(ctx context.Context, args []string) int {
	cmd, rest := splitCommand(args)

	var err error
	switch cmd {
	case "configure":
		err = a.configure(rest)
	case "sync":
		err = a.sync(ctx, rest)
	case "get":
		err = a.get(ctx, rest)
	case "update":
		err = a.update(ctx, rest)
	case "delete":
		err = a.delete(ctx, rest)
	case "reset-password":
		err = a.resetPassword(ctx, rest)
	case "list":
		err = a.list(ctx, rest)
	case "help":
		a.usage(a.out)
		return 0
	case "":
		a.usage(a.errw)
		return 1
	}

	if err != nil {
		fmt.Fprintf(a.errw, "error: %v\n", err)
		return 1
	}
	return 0
}

// splitCommand finds the first recognized command name in args, skipping any
// global flags that precede it.
func splitCommand(args []string) (string, []string) {
	for i, arg := range args {
		switch arg {
		case "configure", "sync", "get", "update", "delete", "reset-password", "list", "help":
			return arg, args[i+1:]
		}
	}
	return "", nil
}

func (a *App) usage(w io.Writer) {
	fmt.Fprint(w, `Usage: oktasync [global flags] <command> [command flags]

Commands:
  configure       store the Okta organization URL and API token
  sync            mirror the remote user directory into the local database
  get             show one user  (--id | --email) [--source local|remote]
  update          update a user profile  --id <id> --profile '<json>'
  delete          delete a user remotely and locally  (--id | --email) [--yes]
  reset-password  start the password reset flow  --id <id>
  list            list mirrored users  [--page N] [--limit N]
  help            print this message

Global flags:
  -v              verbose (debug) logging
  -c <file>       config file (default $XDG_CONFIG_HOME/oktasync/config.json)
  -d <file>       local database file
  -n <count>      sync concurrency, 0 = auto
  -t <seconds>    request timeout
`)
}
