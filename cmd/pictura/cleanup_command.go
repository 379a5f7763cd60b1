package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pictura/internal/config"
	"pictura/internal/library"
)

// timeNow is swappable in tests.
var timeNow = time.Now

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Expire cached classifications older than the cache window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *library.Store) error {
				cutoff := timeNow().Add(-cfg.CacheWindow())
				cleared, err := store.CleanupCache(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Expired %d cached classifications\n", cleared)
				return nil
			})
		},
	}
}
