package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(opts *options) *cobra.Command {
	var source, target string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a redirect rule",
		Long: `Add saves a new source => target redirect rule.

The rule is rejected when the target is already used as a source, or when
the source already has a rule.

Example:
  redirectctl add --source https://example.com/from/ --target https://example.com/to/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := opts.openManager()
			if err != nil {
				return err
			}
			defer closeFn()

			if err := m.AddRule(cmd.Context(), source, target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added redirect: %s => %s\n", source, target)
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "source URL (required)")
	cmd.Flags().StringVar(&target, "target", "", "target URL (required)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
