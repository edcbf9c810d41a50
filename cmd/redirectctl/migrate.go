package main

import (
	"fmt"

	"go_redirect/internal/store"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the redirect table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.sqlitePath == "" {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				if cfg.Redirect.Store == store.KindRedis {
					fmt.Fprintln(cmd.OutOrStdout(), "Redis store needs no migration")
					return nil
				}
				cfg.Migrate = true
			}

			_, closeFn, err := opts.openStore()
			if err != nil {
				return err
			}
			closeFn()

			fmt.Fprintln(cmd.OutOrStdout(), "Migration completed")
			return nil
		},
	}
}
