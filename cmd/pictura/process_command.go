package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pictura/internal/classify"
	"pictura/internal/config"
	"pictura/internal/library"
)

func newProcessCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "process <image>",
		Short: "Classify a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			return ctx.withClassifier(func(cfg *config.Config, store *library.Store, classifier *classify.Classifier) error {
				record, err := classifier.Process(cmd.Context(), path, force)
				if err != nil {
					return err
				}
				printRecord(cmd, record)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reclassify even when a fresh cached result exists")
	return cmd
}

func printRecord(cmd *cobra.Command, record *library.Record) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s\n", colorize(out, ansiGreen, record.Path))
	fmt.Fprintf(out, "  Format:      %s (%dx%d, %d bytes)\n", record.Format, record.Width, record.Height, record.FileSize)
	if record.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", record.Description)
	}
	if len(record.Tags) > 0 {
		fmt.Fprintf(out, "  Tags:        %s\n", strings.Join(record.Tags, ", "))
	}
	if len(record.Keywords) > 0 {
		fmt.Fprintf(out, "  Keywords:    %s\n", strings.Join(record.Keywords, ", "))
	}
	if len(record.Categories) > 0 {
		fmt.Fprintf(out, "  Categories:  %s\n", strings.Join(record.Categories, ", "))
	}
	if record.Rating > 0 {
		fmt.Fprintf(out, "  Rating:      %d\n", record.Rating)
	}
	if record.HasProvenance() {
		fmt.Fprintf(out, "  Classified:  %s (%s)\n", record.AIProvider, record.AIModel)
	} else {
		fmt.Fprintf(out, "  Classified:  local heuristic\n")
	}
	fmt.Fprintf(out, "  Cached:      %s", yesNo(record.Cached))
	if record.CacheDate != nil {
		fmt.Fprintf(out, " %s", colorize(out, ansiDim, "("+record.CacheDate.Format("2006-01-02 15:04")+")"))
	}
	fmt.Fprintln(out)
	if len(record.EXIF) > 0 {
		fmt.Fprintf(out, "  EXIF:        %d tags\n", len(record.EXIF))
	}
}
