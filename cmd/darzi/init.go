package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/darzi/internal/session"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config and data directories and the database",
		Long: `Init writes a default config.yaml if there is none, creates the database
file with its tables, and seeds the admin password on first run. Running it
again changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			flags, err := a.openFlags()
			if err != nil {
				return err
			}
			if err := flags.SetBool(session.KeyDatabaseInitialized, true); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "darzi initialized")
			fmt.Fprintln(cmd.OutOrStdout(), "  config:", a.configDir)
			fmt.Fprintln(cmd.OutOrStdout(), "  database:", store.Path())
			return nil
		},
	}
}
