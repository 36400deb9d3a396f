/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Raindancer118/genesis/config"
	"github.com/Raindancer118/genesis/log"
	"github.com/Raindancer118/genesis/sortdir"
)

// NewSortCmd builds the sort command.
func NewSortCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "sort <directory>",
		Short: "Sort a directory's files into category folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if strings.HasPrefix(dir, "~") {
				if home, err := os.UserHomeDir(); err == nil {
					dir = filepath.Join(home, dir[1:])
				}
			}

			prefs, prefsViper := loadSortPreferences()
			s := sortdir.NewSorter(prefs)
			if !yes && term.IsTerminal(int(os.Stdin.Fd())) {
				s.Prompt = promptCategory
			}

			counts, err := s.Sort(dir)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Println("Nothing to sort, the directory contains no files.")
				return nil
			}

			if s.PreferencesChanged() {
				saveSortPreferences(prefsViper, s.Preferences)
			}
			sortdir.PrintSummary(os.Stdout, dir, counts)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "never prompt, file unknown types under Other")
	return cmd
}

func sortPreferencesPath() string {
	return filepath.Join(config.Dir(), "sort_preferences.yaml")
}

func loadSortPreferences() (map[string]string, *viper.Viper) {
	v := viper.New()
	v.SetConfigFile(sortPreferencesPath())
	if err := v.ReadInConfig(); err != nil {
		return map[string]string{}, v
	}
	return v.GetStringMapString("preferences"), v
}

func saveSortPreferences(v *viper.Viper, prefs map[string]string) {
	v.Set("preferences", prefs)
	if err := os.MkdirAll(config.Dir(), 0o755); err != nil {
		log.FileLogger.Warnf("cannot create config dir: %v", err)
		return
	}
	if err := v.WriteConfigAs(sortPreferencesPath()); err != nil {
		log.FileLogger.Warnf("cannot persist sort preferences: %v", err)
	}
}

// promptCategory asks which category an unmatched file belongs in.
func promptCategory(filename string) string {
	available := sortdir.Categories()
	fmt.Printf("How should genesis file %q?\n", filename)
	for i, category := range available {
		fmt.Printf("  %d. %s\n", i+1, category)
	}
	fmt.Println("  0. Enter a custom category")

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Select a category [default: Other]: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return sortdir.DefaultCategory
		}
		choice := strings.TrimSpace(line)
		if choice == "" {
			return sortdir.DefaultCategory
		}
		if n, err := strconv.Atoi(choice); err == nil {
			if n == 0 {
				fmt.Print("Enter a custom category name: ")
				custom, err := reader.ReadString('\n')
				if err != nil {
					return sortdir.DefaultCategory
				}
				if custom = strings.TrimSpace(custom); custom != "" {
					return custom
				}
				return sortdir.DefaultCategory
			}
			if n >= 1 && n <= len(available) {
				return available[n-1]
			}
		} else {
			title := capitalize(strings.ToLower(choice))
			for _, category := range available {
				if category == title {
					return category
				}
			}
		}
		fmt.Println("Invalid selection. Please try again.")
	}
}
