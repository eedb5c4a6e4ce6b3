package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"homecal/internal/cli"
	"homecal/internal/core"
	"homecal/internal/log"
	"homecal/internal/services"
	"homecal/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)
	logger = cli.SetupLogger(cfg.LogLevel)

	dbPath := flag.String("db", "", "Calendar database file (defaults to the last opened file)")
	fresh := flag.Bool("fresh", false, "Discard any existing database at -db and start a new one")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := session.Load(cfg.SessionFile)
	if err != nil {
		logger.WithComponent(log.ComponentSession).Warn("Ignoring unreadable session file",
			log.FieldPath, cfg.SessionFile, log.FieldError, err)
		st = &session.State{}
	}

	var opts []services.Option
	if *fresh {
		opts = append(opts, services.WithFreshDatabase())
	}

	notifier, err := cli.NewNotifier(ctx, logger, cfg)
	if err != nil {
		logger.WithComponent(log.ComponentAMQP).Warn("Change notifications disabled", log.FieldError, err)
	}
	if notifier != nil {
		defer notifier.Close()
		opts = append(opts, services.WithNotifier(notifier))
	}

	path := cli.ResolveDBPath(*dbPath, st, cfg)
	cal, err := cli.OpenCalendar(ctx, logger, cfg, st, path, opts...)
	if err != nil {
		logger.Error("Failed to open calendar", log.FieldPath, path, log.FieldError, err, log.FieldErrorKind, core.KindOf(err))
		return 1
	}
	defer cal.Close()

	app := &app{cal: cal, out: os.Stdout, notifier: notifier}
	if err := app.dispatch(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		logger.WithComponent(log.ComponentCLI).Error("Command failed",
			"command", flag.Arg(0), log.FieldError, err, log.FieldErrorKind, core.KindOf(err))
		fmt.Fprintf(os.Stderr, "homecal: %v\n", err)
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: homecal [-db file] [-fresh] <command> [flags]

Commands:
  items            list calendar items (-by none|month|category|both)
  categories       list categories
  add-category     add a category
  update-category  change a category's description or type
  delete-category  delete a category and all of its events
  add-event        add an event
  update-event     change an event
  delete-event     delete an event
  export           write calendar items as iCalendar
  watch            print change notifications as they arrive

Run "homecal <command> -h" for command flags.

Global flags:
`)
	flag.PrintDefaults()
}
