/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/log"
	"github.com/Raindancer118/genesis/pkgmgr"
	"github.com/Raindancer118/genesis/selfupdate"
)

// NewInstallCmd builds the install command.
func NewInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install <package>...",
		Short: "Install packages with the best available package manager",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pkgmgr.Detect(cfg.System.PackageManagerPriority)
			if err != nil {
				return err
			}
			argv := m.InstallArgs(args...)
			fmt.Printf("Installing %s via %s...\n", strings.Join(args, ", "), m.Name)
			log.FileLogger.Infof("install: %s", strings.Join(argv, " "))
			return pkgmgr.Run(argv)
		},
	}
}

// NewRemoveCmd builds the remove command.
func NewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <package>...",
		Short: "Remove installed packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := pkgmgr.Detect(cfg.System.PackageManagerPriority)
			if err != nil {
				return err
			}
			if !ConfirmKey(fmt.Sprintf("Remove %s and unused dependencies?", strings.Join(args, ", "))) {
				fmt.Println("Removal cancelled.")
				return nil
			}
			argv := m.RemoveArgs(args...)
			log.FileLogger.Infof("remove: %s", strings.Join(argv, " "))
			return pkgmgr.Run(argv)
		},
	}
}

// NewUpdateCmd builds the update command: a full system upgrade,
// preceded by a genesis self-update when one is pending.
func NewUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Run a full system update",
		RunE: func(cmd *cobra.Command, args []string) error {
			if status, err := selfupdate.Check(); err == nil && status.Behind > 0 {
				fmt.Println("A genesis update is available, applying it first...")
				if err := selfupdate.Apply(); err != nil {
					log.CombinedLogger.Warnf("self-update failed: %v", err)
				}
				fmt.Println("---")
			}

			m, err := pkgmgr.Detect(cfg.System.PackageManagerPriority)
			if err != nil {
				return err
			}
			if !cfg.System.AutoConfirmUpdate && !ConfirmKey("Proceed with system update?") {
				fmt.Println("Update cancelled.")
				return nil
			}
			argv := m.UpdateArgs()
			fmt.Printf("Starting full system update via %s...\n", m.Name)
			log.FileLogger.Infof("update: %s", strings.Join(argv, " "))
			return pkgmgr.Run(argv)
		},
	}
}
