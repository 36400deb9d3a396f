/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
	"golang.org/x/term"
)

// ConfirmKey asks a yes/no question and waits for a single keypress.
// Anything other than y/Y is a no. When stdin is not a terminal it
// falls back to reading a line, so piped input still works.
func ConfirmKey(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		fmt.Println()
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}

	confirmed := false
	err := keyboard.Listen(func(key keys.Key) (stop bool, err error) {
		switch key.Code {
		case keys.RuneKey:
			if key.String() == "y" || key.String() == "Y" {
				confirmed = true
			}
			return true, nil
		case keys.CtrlC, keys.Escape, keys.Enter:
			return true, nil
		default:
			return true, nil
		}
	})
	if confirmed {
		fmt.Println("y")
	} else {
		fmt.Println("n")
	}
	return err == nil && confirmed
}
