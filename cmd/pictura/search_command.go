package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pictura/internal/config"
	"pictura/internal/library"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var tags, keywords, categories []string
	var minRating int

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find images by tags, keywords, categories, or rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := library.SearchFilter{
				Tags:       tags,
				Keywords:   keywords,
				Categories: categories,
			}
			if cmd.Flags().Changed("min-rating") {
				filter.MinRating = &minRating
			}
			if len(tags) == 0 && len(keywords) == 0 && len(categories) == 0 && filter.MinRating == nil {
				return fmt.Errorf("provide at least one of --tag, --keyword, --category, or --min-rating")
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				records, err := store.Search(cmd.Context(), filter)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(records) == 0 {
					fmt.Fprintln(out, "No matches")
					return nil
				}

				rows := make([][]string, 0, len(records))
				for _, record := range records {
					rows = append(rows, []string{
						record.Path,
						strconv.Itoa(record.Rating),
						strings.Join(record.Tags, ", "),
						strings.Join(record.Categories, ", "),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Path", "Rating", "Tags", "Categories"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Require a tag (repeatable)")
	cmd.Flags().StringArrayVar(&keywords, "keyword", nil, "Require a keyword (repeatable)")
	cmd.Flags().StringArrayVar(&categories, "category", nil, "Require a category (repeatable)")
	cmd.Flags().IntVar(&minRating, "min-rating", 0, "Minimum rating")
	return cmd
}
