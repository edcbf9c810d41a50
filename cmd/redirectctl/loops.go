package main

import (
	"errors"

	"go_redirect/internal/redirect"

	"github.com/spf13/cobra"
)

var errLoopsFound = errors.New("redirect loops found")

func newLoopsCmd(opts *options) *cobra.Command {
	var output string
	var failOnLoops bool

	cmd := &cobra.Command{
		Use:   "loops",
		Short: "Report targets that are also used as sources",
		Long: `Loops scans every rule and lists each target URL that is itself the
source of another rule. Only one hop loops are reported; longer cycles
such as A => B => C => A are not detected.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := opts.openManager()
			if err != nil {
				return err
			}
			defer closeFn()

			urls, err := m.FindLoopURLs(cmd.Context())
			if err != nil {
				return err
			}
			if err := redirect.WriteLoopReport(cmd.OutOrStdout(), urls, output); err != nil {
				return err
			}
			if failOnLoops && len(urls) > 0 {
				return errLoopsFound
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", redirect.FormatTable, "output format: table, json or yaml")
	cmd.Flags().BoolVar(&failOnLoops, "fail-on-loops", false, "exit with code 3 when loops are found")
	return cmd
}
