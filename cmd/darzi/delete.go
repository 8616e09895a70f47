package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <kind> <id>",
		Short: "Delete a record",
		Long:  `Delete removes the record and prints the number of rows removed. Deleting an id that is not there prints 0.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			id, err := parseIDArg(args[1])
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			removed, err := store.Delete(kind, id)
			if err != nil {
				return err
			}
			n := 0
			if removed {
				n = 1
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
