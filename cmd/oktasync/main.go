package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/oktasync/internal/cli"
	"github.com/dmitrijs2005/oktasync/internal/config"
	"github.com/dmitrijs2005/oktasync/internal/flagx"
	"github.com/dmitrijs2005/oktasync/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verbose := len(flagx.FilterArgs(os.Args[1:], []string{"-v", "--verbose"})) > 0
	log := logging.NewTextLogger(os.Stderr, verbose)

	cfg := config.Load()
	app := cli.NewApp(cfg, log, os.Stdout, os.Stderr, os.Stdin)
	defer app.Close()

	return app.Run(ctx, os.Args[1:])
}
