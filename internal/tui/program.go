package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todolists/internal/todo"
)

// Options configures Run.
type Options struct {
	Logger *slog.Logger
	// Timeout bounds each service call. Zero means unbounded.
	Timeout time.Duration
}

// Run shows the board over svc until the user quits or ctx is done.
func Run(ctx context.Context, svc todo.Service, opts Options) error {
	var program *tea.Program
	loop := todo.NewEventLoop(opts.Timeout, func(fn func()) {
		program.Send(runMsg(fn))
	})
	defer loop.Close()

	program = tea.NewProgram(
		New(svc, loop, opts.Logger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
