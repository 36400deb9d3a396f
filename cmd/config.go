/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/config"
)

// NewConfigCmd builds the config command with its get, set and reset
// subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and change the genesis configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Print a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := config.Get(args[0])
			if value == nil {
				return fmt.Errorf("unknown configuration key %q", args[0])
			}
			fmt.Println(value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Set(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Set %s = %s\n", args[0], args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ConfirmKey("Reset the configuration to its defaults?") {
				fmt.Println("Reset cancelled.")
				return nil
			}
			if err := config.Reset(); err != nil {
				return err
			}
			fmt.Printf("Configuration reset, defaults written to %s\n", config.Path())
			return nil
		},
	})

	return cmd
}
