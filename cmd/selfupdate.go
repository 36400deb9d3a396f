/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/selfupdate"
)

// NewSelfUpdateCmd builds the self-update command.
func NewSelfUpdateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "self-update",
		Short: "Update genesis from its upstream repository",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Checking for updates to genesis...")
			status, err := selfupdate.Check()
			if err != nil {
				return fmt.Errorf("unable to contact the remote repository: %w", err)
			}
			if !status.HasUpdates() {
				fmt.Println("Genesis is already up to date.")
				if status.Dirty {
					fmt.Println("Local changes detected but no updates were required.")
				}
				return nil
			}
			fmt.Printf("Updates available: %d new commit(s) ready to apply.\n", status.Behind)
			if checkOnly {
				return nil
			}
			if err := selfupdate.Apply(); err != nil {
				return err
			}
			fmt.Println("Update completed successfully.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check, do not apply")
	return cmd
}
