package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"pictura/internal/config"
	"pictura/internal/library"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				counts, err := store.ClassificationCounts(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Library: %s\n", cfg.Paths.LibraryDB)
				fmt.Fprintf(out, "  Images:         %d\n", stats.TotalImages)
				fmt.Fprintf(out, "  Cached:         %d\n", stats.CachedImages)
				if stats.AverageRating > 0 {
					fmt.Fprintf(out, "  Average rating: %.1f\n", stats.AverageRating)
				}

				if len(stats.FormatCounts) > 0 {
					rows := sortedCountRows(stats.FormatCounts)
					fmt.Fprintln(out, renderTable(
						[]string{"Format", "Count"}, rows,
						[]columnAlignment{alignLeft, alignRight},
					))
				}
				if len(counts) > 0 {
					rows := sortedCountRows(counts)
					fmt.Fprintln(out, renderTable(
						[]string{"Classifier", "Count"}, rows,
						[]columnAlignment{alignLeft, alignRight},
					))
				}
				return nil
			})
		},
	}
}

func sortedCountRows(counts map[string]int) [][]string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, strconv.Itoa(counts[key])})
	}
	return rows
}
