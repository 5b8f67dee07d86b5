package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avetisov/deadlinebot/internal/advisor"
	"github.com/avetisov/deadlinebot/internal/bot"
	"github.com/avetisov/deadlinebot/internal/cli"
	"github.com/avetisov/deadlinebot/internal/db"
	"github.com/avetisov/deadlinebot/internal/dialog"
	"github.com/avetisov/deadlinebot/internal/reminder"
	"github.com/avetisov/deadlinebot/internal/repository"
	"github.com/avetisov/deadlinebot/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := cli.NewRootCmd(runBot)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func runBot(ctx context.Context, opts cli.Options) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dbPath, err := cli.ResolveDBPath(opts)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	now := time.Now
	assignments := service.NewAssignmentService(assignmentRepo, uow, now)

	advisorCfg := advisor.LoadConfig()
	var observer advisor.Observer = advisor.NoopObserver{}
	if os.Getenv("DEADLINEBOT_ADVISOR_LOG_CALLS") != "" {
		observer = advisor.NewLogObserver(os.Stderr)
	}
	adv := advisor.NewService(advisor.NewHTTPClient(advisorCfg, observer), logger)

	dialogs := dialog.NewEngine(assignments, adv, now, logger)

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	var sender bot.Sender
	var chatSender *cli.ChannelSender
	if interactive {
		chatSender = cli.NewChannelSender()
		sender = chatSender
	} else {
		sender = cli.NewWriterSender(os.Stdout)
	}

	dispatcher := bot.NewDispatcher(assignments, dialogs, adv, sender, now, logger)
	handle := func(ctx context.Context, text string) {
		dispatcher.HandleMessage(ctx, opts.Owner, text)
	}

	sweeper := reminder.NewSweeper(assignments, sender, opts.ReminderInterval, opts.ReminderDelay, now, logger)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go sweeper.Run(runCtx)

	if interactive {
		return cli.RunConsole(runCtx, handle, chatSender)
	}
	return cli.RunPipe(runCtx, handle, os.Stdin)
}
