package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUpdateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "update <kind> <id> <json>",
		Short: "Replace every field of a record",
		Long: `Update overwrites the record with the given JSON object. Fields left out
become empty, so pass the full record. Prints the number of rows changed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			id, err := parseIDArg(args[1])
			if err != nil {
				return err
			}
			rec, err := parseRecordJSON(kind, args[2])
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			n, err := store.Update(id, rec)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
