package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <kind> <json>",
		Short: "Add a record and print its id",
		Long: `Add stores a new record from a JSON object. Fields left out are stored
empty; registrationDate defaults to today. Any id in the JSON is ignored.

Example:
  darzi add customer '{"name":"Ali","phoneNumber":"0700000000","qad":"40"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			rec, err := parseRecordJSON(kind, args[1])
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			id, err := store.Insert(rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
