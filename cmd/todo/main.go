package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"todolists/internal/config"
)

const version = "1.0.0"

// app carries the resolved configuration into subcommands.
type app struct {
	configPath string

	addr    string
	dbPath  string
	apiURL  string
	level   string
	timeout time.Duration

	cfg config.Config
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "todo",
		Short:        "Todo lists server and terminal client",
		Version:      version,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Serve the JSON API over a sqlite database
  todo serve --addr :8080 --db data/todo.db

  # Open the board against a running server
  todo tui --api http://localhost:8080

  # Open the board straight on the database
  todo tui --local
`),
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "TOML config file (default todo.toml, env TODO_CONFIG)")
	flags.StringVar(&a.addr, "addr", "", "HTTP listen address")
	flags.StringVar(&a.dbPath, "db", "", "Path to sqlite database file")
	flags.StringVar(&a.apiURL, "api", "", "Base URL of the todo API")
	flags.StringVar(&a.level, "log-level", "", "Log level: debug, info, warn or error")
	flags.DurationVar(&a.timeout, "timeout", 0, "Timeout of each service call")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.resolve(cmd)
	}

	cmd.AddCommand(newServeCmd(a), newTUICmd(a), newListsCmd(a))
	return cmd
}

// resolve loads the config and applies explicitly set flags on top.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = a.addr
	}
	if flags.Changed("db") {
		cfg.DBPath = a.dbPath
	}
	if flags.Changed("api") {
		cfg.APIURL = a.apiURL
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.level
	}
	if flags.Changed("timeout") {
		cfg.RequestTimeout.Duration = a.timeout
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	a.cfg = cfg
	return nil
}

func (a *app) newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: a.cfg.Level()}))
}
