package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justinmckeown/similitude/internal/adapter/localfs"
	"github.com/justinmckeown/similitude/internal/adapter/similarity"
	"github.com/justinmckeown/similitude/internal/adapter/sqlite"
	"github.com/justinmckeown/similitude/internal/hasher"
	"github.com/justinmckeown/similitude/internal/logger"
	"github.com/justinmckeown/similitude/internal/port"
	"github.com/justinmckeown/similitude/internal/service/scan"
)

func newScanCommand(app *appContext) *cobra.Command {
	var (
		enable []string
		ignore []string
	)

	cmd := &cobra.Command{
		Use:   "scan PATH",
		Short: "Scan a directory, compute hashes, and update the index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.cfg

			features := enable
			if len(features) == 0 {
				features = cfg.Scan.Enable
			}
			var (
				enablePHash  bool
				enableSSDeep bool
			)
			for _, f := range features {
				switch f {
				case "phash":
					enablePHash = true
				case "ssdeep":
					enableSSDeep = true
				default:
					return fmt.Errorf("unknown feature %q (valid: phash, ssdeep)", f)
				}
			}

			index, err := sqlite.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer index.Close()

			var adapters []port.SimilarityAdapter
			if enablePHash {
				adapters = append(adapters, similarity.NewPHash())
			}
			if enableSSDeep {
				adapters = append(adapters, similarity.NewFuzzy())
			}

			patterns := append([]string{}, cfg.Scan.Ignore...)
			patterns = append(patterns, ignore...)

			scanner := scan.New(
				localfs.New(),
				hasher.NewPreHasher(cfg.Scan.PreHashWindow()),
				hasher.NewSHA256(),
				index,
				scan.Options{
					IgnorePatterns:  patterns,
					InlineThreshold: cfg.Scan.InlineThreshold(),
					EnablePHash:     enablePHash,
					EnableSSDeep:    enableSSDeep,
					Adapters:        adapters,
				},
				logger.L(),
			)

			count, err := scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scanned %s; processed %d files; index: %s\n",
				args[0], count, cfg.Database.Path)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&enable, "enable", nil, "enrichment features (phash, ssdeep)")
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "glob pattern to skip (repeatable)")
	return cmd
}
