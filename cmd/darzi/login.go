package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/darzi/internal/session"
	"github.com/mesh-intelligence/darzi/pkg/types"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check the admin password and record a login",
		Long: `Login compares the password with the stored admin password. Without
--password the first line of standard input is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("password") {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return usagef("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			ok, err := store.VerifyCredential(password)
			if err != nil {
				return err
			}
			if !ok {
				return types.ErrCredentialMismatch
			}

			flags, err := a.openFlags()
			if err != nil {
				return err
			}
			if _, err := session.Login(flags); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged in")
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "admin password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the recorded login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := a.openFlags()
			if err != nil {
				return err
			}
			if err := session.Logout(flags); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
