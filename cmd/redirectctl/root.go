package main

import (
	"fmt"

	"go_redirect/internal/bootstrap"
	"go_redirect/internal/config"
	"go_redirect/internal/model"
	"go_redirect/internal/redirect"
	"go_redirect/internal/store"

	"github.com/spf13/cobra"
)

// options holds the global flag values shared by subcommands
type options struct {
	configFile string
	sqlitePath string
	table      string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "redirectctl",
		Short: "Manage URL redirect rules",
		Long: `redirectctl manages the redirect rule table used by redirectd.

By default it connects to the store configured through the environment
(MYSQL_DSN, REDIRECT_STORE, ...) or the INI file given with --config.
With --sqlite it works on a local SQLite file instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "INI configuration file (default: environment only)")
	cmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite", "", "use a local SQLite database file instead of the configured store")
	cmd.PersistentFlags().StringVar(&opts.table, "table", "", "redirect table name (overrides configuration)")

	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newExistsCmd(opts))
	cmd.AddCommand(newLoopsCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newTokenCmd(opts))
	return cmd
}

// loadConfig reads and caches the service configuration
func (o *options) loadConfig() (*config.Config, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}

	var cfg *config.Config
	var err error
	if o.configFile != "" {
		cfg, err = config.LoadFromINI(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.table != "" {
		cfg.Redirect.Table = o.table
	}
	o.cfg = cfg
	return cfg, nil
}

// openStore returns the SQLite store when --sqlite is set, else the configured backend
func (o *options) openStore() (redirect.Store, func(), error) {
	if o.sqlitePath != "" {
		table := o.table
		if table == "" {
			table = model.DefaultRedirectTable
		}
		return bootstrap.OpenSQLite(o.sqlitePath, table, store.DefaultBatchSize)
	}

	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return bootstrap.OpenStore(cfg)
}

func (o *options) openManager() (*redirect.Manager, func(), error) {
	s, closeFn, err := o.openStore()
	if err != nil {
		return nil, nil, err
	}
	m, err := redirect.NewManager(s)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return m, closeFn, nil
}
