package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"pictura/internal/config"
	"pictura/internal/library"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var exif bool

	cmd := &cobra.Command{
		Use:   "show <image>",
		Short: "Display the stored record for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				record, err := store.Get(cmd.Context(), path)
				if err != nil {
					return err
				}
				if record == nil {
					return fmt.Errorf("no record for %s; run `pictura scan` or `pictura process` first", path)
				}

				printRecord(cmd, record)
				if exif && len(record.EXIF) > 0 {
					out := cmd.OutOrStdout()
					keys := make([]string, 0, len(record.EXIF))
					for key := range record.EXIF {
						keys = append(keys, key)
					}
					sort.Strings(keys)
					for _, key := range keys {
						fmt.Fprintf(out, "    %s: %s\n", key, record.EXIF[key])
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&exif, "exif", false, "List EXIF tags")
	return cmd
}
