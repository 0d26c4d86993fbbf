package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/justinmckeown/similitude/internal/adapter/sqlite"
	"github.com/justinmckeown/similitude/internal/service/report"
)

func newReportCommand(app *appContext) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a duplicate report from the index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg

			if format == "" {
				format = cfg.Report.Format
			}
			if out == "" {
				out = cfg.Report.Out
			}

			index, err := sqlite.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer index.Close()

			target := resolveReportTarget(out, format)
			written, err := report.New(index).WriteDuplicates(target, format)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", format, written)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "fmt", "", "output format (json, ndjson, csv)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "report destination (file or existing directory)")
	return cmd
}

// resolveReportTarget turns the --out flag into a file path: omitted means
// duplicates.<fmt> in the working directory, an existing directory gets
// duplicates.<fmt> inside it, anything else is taken as a file path.
func resolveReportTarget(out, format string) string {
	if out == "" {
		return "duplicates." + format
	}
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		return filepath.Join(out, "duplicates."+format)
	}
	return out
}
