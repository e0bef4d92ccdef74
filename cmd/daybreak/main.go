package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/daybreak/adapter/cli"
	cliEvent "github.com/felixgeelhaar/daybreak/adapter/cli/event"
	cliMemo "github.com/felixgeelhaar/daybreak/adapter/cli/memo"
	"github.com/felixgeelhaar/daybreak/internal/app"
	"github.com/felixgeelhaar/daybreak/pkg/config"
	"github.com/felixgeelhaar/daybreak/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(&cli.App{
		CreateMemoHandler:         container.CreateMemoHandler,
		AcceptMemoHandler:         container.AcceptMemoHandler,
		RejectMemoHandler:         container.RejectMemoHandler,
		CompleteMemoHandler:       container.CompleteMemoHandler,
		UndoReactionHandler:       container.UndoReactionHandler,
		ArchiveMemoHandler:        container.ArchiveMemoHandler,
		RolloverDayHandler:        container.RolloverDayHandler,
		ComputeSuggestionsHandler: container.ComputeSuggestionsHandler,
		GetMemoHandler:            container.GetMemoHandler,
		ListMemosHandler:          container.ListMemosHandler,
		EventService:              container.EventService,
	})

	cli.AddCommand(cliMemo.Cmd)
	cli.AddCommand(cliEvent.Cmd)

	cli.Execute()
}
