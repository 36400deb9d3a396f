/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"fmt"
	"os/exec"
	"os/user"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/selfupdate"
)

// NewGreetCmd builds the greet command shown at login: a time-of-day
// greeting plus pending system and genesis update counts.
func NewGreetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greet",
		Short: "Print a greeting with pending update information",
		Run: func(cmd *cobra.Command, args []string) {
			username := "there"
			if u, err := user.Current(); err == nil && u.Username != "" {
				username = capitalize(u.Username)
			}

			greeting := greetingFor(time.Now().Hour())
			fmt.Printf("%s, %s!\n", greeting, username)

			if n := pendingUpdates(); n > 0 {
				fmt.Printf("You have %d updates pending.\n", n)
			} else {
				fmt.Println("System is up to date.")
			}

			status, err := selfupdate.Check()
			switch {
			case err != nil:
				fmt.Println("Could not check for genesis updates.")
			case status.Behind > 0:
				fmt.Println("Update available! Run 'genesis self-update'.")
			default:
				fmt.Println("Genesis is up to date.")
			}
		},
	}
}

func greetingFor(hour int) string {
	switch {
	case hour >= 12 && hour < 18:
		return "Good afternoon"
	case hour >= 18:
		return "Good evening"
	default:
		return "Good morning"
	}
}

// pendingUpdates counts pending pacman updates via checkupdates. On
// systems without it (or when the sync fails) it reports zero.
func pendingUpdates() int {
	out, err := exec.Command("checkupdates").Output()
	if err != nil {
		return 0
	}
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return 0
	}
	return len(strings.Split(trimmed, "\n"))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
