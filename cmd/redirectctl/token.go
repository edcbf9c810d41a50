package main

import (
	"fmt"
	"time"

	"go_redirect/internal/auth"

	"github.com/spf13/cobra"
)

func newTokenCmd(opts *options) *cobra.Command {
	var subject string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWT.ExpireMinutes) * time.Minute
			}

			auth.InitJWT(cfg.JWT.Secret)
			token, err := auth.GenerateToken(subject, time.Now().Add(ttl), cfg.JWT.Issuer)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default: JWT_EXPIRE_MINUTES)")
	return cmd
}
