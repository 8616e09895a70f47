package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/darzi/pkg/darzi"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the darzi version",
		Args:  cobra.NoArgs,
		// version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "darzi", darzi.Version)
		},
	}
}
