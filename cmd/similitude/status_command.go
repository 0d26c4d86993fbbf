package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/justinmckeown/similitude/internal/adapter/sqlite"
)

func newStatusCommand(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show index statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := sqlite.Open(app.cfg.Database.Path)
			if err != nil {
				return err
			}
			defer index.Close()

			stats, err := index.Stats()
			if err != nil {
				return err
			}

			lastScan := "never"
			if at, ok, err := index.GetMeta("last_scan_at"); err == nil && ok {
				lastScan = at
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"metric", "value"})
			tw.AppendRow(table.Row{"index", app.cfg.Database.Path})
			tw.AppendRow(table.Row{"indexed files", strconv.FormatInt(stats.TotalFiles, 10)})
			tw.AppendRow(table.Row{"hashed files", strconv.FormatInt(stats.HashedFiles, 10)})
			tw.AppendRow(table.Row{"duplicate clusters", strconv.FormatInt(stats.DuplicateClusters, 10)})
			tw.AppendRow(table.Row{"files in clusters", strconv.FormatInt(stats.DuplicateFiles, 10)})
			tw.AppendRow(table.Row{"last scan", lastScan})

			fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the similitude version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "similitude "+version)
		},
	}
}
