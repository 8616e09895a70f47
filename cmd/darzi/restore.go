package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/darzi/internal/backup"
)

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Merge a JSON backup file into the database",
		Long: `Restore adds every record from the backup whose id is not in the database
yet. Existing records are never changed. A file that is not a valid backup
is rejected before anything is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return usagef("read backup: %v", err)
			}
			doc, err := backup.ParseDocument(data)
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			report, err := backup.NewImporter(store).Restore(doc)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "customers: %d inserted, %d errors\n", report.Customers.Inserted, report.Customers.Errors)
			fmt.Fprintf(w, "waskat: %d inserted, %d errors\n", report.Waskat.Inserted, report.Waskat.Errors)
			return nil
		},
	}
}
