package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"pictura/internal/config"
	"pictura/internal/imagefiles"
	"pictura/internal/library"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Register images under a directory without classifying them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				paths, err := imagefiles.Scan(root, cfg.Library.Extensions, recursive)
				if err != nil {
					return err
				}

				var filter *imagefiles.DuplicateFilter
				if cfg.Library.DetectDuplicates {
					filter = imagefiles.NewDuplicateFilter()
				}

				var added, skipped, duplicates int
				for _, path := range paths {
					existing, err := store.Get(cmd.Context(), path)
					if err != nil {
						return err
					}
					if existing != nil {
						skipped++
						continue
					}
					if filter != nil && filter.IsDuplicatePath(path) {
						duplicates++
						continue
					}

					record, err := imagefiles.Probe(path)
					if err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %v\n", path, err)
						continue
					}
					if err := store.Put(cmd.Context(), record); err != nil {
						return err
					}
					added++
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Found", "Added", "Known", "Duplicates"},
					[][]string{{
						strconv.Itoa(len(paths)),
						strconv.Itoa(added),
						strconv.Itoa(skipped),
						strconv.Itoa(duplicates),
					}},
					[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	return cmd
}
