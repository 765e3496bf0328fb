package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"todolists/internal/client"
	"todolists/internal/storage/sqlite"
	"todolists/internal/todo"
)

func newListsCmd(a *app) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print every list with its remaining item count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeSvc, err := a.readService(local)
			if err != nil {
				return err
			}
			defer closeSvc()

			ctx, cancel := context.WithTimeout(cmd.Context(), a.cfg.RequestTimeout.Duration)
			defer cancel()
			return printLists(ctx, cmd.OutOrStdout(), svc)
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "Read the sqlite database directly instead of the API")
	return cmd
}

// readService opens a service for reading. Local reads skip the writer lock.
func (a *app) readService(local bool) (todo.Service, func(), error) {
	if !local {
		c, err := client.New(a.cfg.APIURL, nil)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	}
	store, err := sqlite.Open(a.cfg.DBPath, a.newLogger(os.Stderr))
	if err != nil {
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}

func printLists(ctx context.Context, w io.Writer, svc todo.Service) error {
	snap, err := svc.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list all: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tREMAINING\tTOTAL")
	for _, list := range snap.Lists {
		remaining := 0
		for _, item := range list.Items {
			if !item.Done {
				remaining++
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\n", list.ID, list.Title, remaining, len(list.Items))
	}
	return tw.Flush()
}
