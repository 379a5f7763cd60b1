package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pictura/internal/classify"
	"pictura/internal/config"
	"pictura/internal/imagefiles"
	"pictura/internal/library"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Classify every image under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			return ctx.withClassifier(func(cfg *config.Config, store *library.Store, classifier *classify.Classifier) error {
				paths, err := imagefiles.Scan(root, cfg.Library.Extensions, recursive)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No images found")
					return nil
				}

				out := cmd.OutOrStdout()
				records, err := classifier.ProcessBatch(cmd.Context(), paths,
					func(completed, total int, path string) {
						fmt.Fprintf(out, "[%d/%d] %s\n", completed, total, path)
					})
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "Classified %d of %d images\n", len(records), len(paths))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	return cmd
}
