package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/darzi/internal/session"
)

func newBiometricCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "biometric on|off|status",
		Short:     "Enable, disable or show biometric unlock",
		Long:      `Biometric records whether the device should offer fingerprint unlock. The prompt itself is handled by the device.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags, err := a.openFlags()
			if err != nil {
				return err
			}
			switch args[0] {
			case "on", "off":
				if err := flags.SetBool(session.KeyFingerprintEnabled, args[0] == "on"); err != nil {
					return err
				}
			case "status":
			default:
				return usagef("unknown argument %q (valid: on, off, status)", args[0])
			}
			state := "off"
			if flags.Bool(session.KeyFingerprintEnabled) {
				state = "on"
			}
			fmt.Fprintln(cmd.OutOrStdout(), "biometric", state)
			return nil
		},
	}
}
