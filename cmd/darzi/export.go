package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/darzi/internal/backup"
	"github.com/mesh-intelligence/darzi/internal/fileio"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export <kind>",
		Short: "Write one kind of record as CSV",
		Long:  `Export writes every record of the kind as CSV with a header row, to --out or standard output.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			if out == "" {
				return backup.WriteCSV(cmd.OutOrStdout(), store, kind)
			}
			return fileio.WriteAtomic(out, 0o644, func(w io.Writer) error {
				return backup.WriteCSV(w, store, kind)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}
