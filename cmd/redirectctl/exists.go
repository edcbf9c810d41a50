package main

import (
	"fmt"

	"go_redirect/internal/redirect"

	"github.com/spf13/cobra"
)

func newExistsCmd(opts *options) *cobra.Command {
	var url, column string

	cmd := &cobra.Command{
		Use:   "exists",
		Short: "Check whether a URL is used as a source or target",
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := redirect.ParseColumn(column)
			if err != nil {
				return err
			}

			m, closeFn, err := opts.openManager()
			if err != nil {
				return err
			}
			defer closeFn()

			ok, err := m.HasURL(cmd.Context(), url, col)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "URL to look up (required)")
	cmd.Flags().StringVar(&column, "column", string(redirect.ColumnSource), "column to check: source or target")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
