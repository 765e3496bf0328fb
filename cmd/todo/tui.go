package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"todolists/internal/client"
	"todolists/internal/storage/sqlite"
	"todolists/internal/todo"
	"todolists/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a, local)
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "Use the sqlite database directly instead of the API")
	return cmd
}

func runTUI(a *app, local bool) error {
	logFile, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := a.newLogger(logFile)

	svc, closeSvc, err := a.openService(logger, local)
	if err != nil {
		logger.Error("unable to open service", slog.String("error", err.Error()))
		return err
	}
	defer closeSvc()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting tui", slog.Bool("local", local))
	return tui.Run(ctx, svc, tui.Options{Logger: logger, Timeout: a.cfg.RequestTimeout.Duration})
}

// openService returns the API client, or with local the sqlite store guarded
// by the writer lock.
func (a *app) openService(logger *slog.Logger, local bool) (todo.Service, func(), error) {
	if !local {
		c, err := client.New(a.cfg.APIURL, nil)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}

	lock, err := sqlite.Lock(a.cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.Open(a.cfg.DBPath, logger)
	if err != nil {
		lock.Unlock()
		return nil, nil, err
	}
	return store, func() {
		store.Close()
		lock.Unlock()
	}, nil
}
