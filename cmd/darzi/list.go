package main

import (
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List customer or waskat records",
		Long: `List prints every record of the kind as JSON, in id order. With --search
only records whose name or phone number contains the text are shown.

Example:
  darzi list customer
  darzi list waskat --search 0700`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			recs, err := store.Fetch(kind, search)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recs)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "substring of name or phone number")
	return cmd
}
