package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"entail/internal/driver"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the rewrite cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached rewrite",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sess, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer sess.close()

		cache, err := driver.OpenDiskCache("entail", sess.cfg.Cache.Dir)
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return err
		}
		if !sess.quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir()) //nolint:errcheck
		}
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}
