/*
Copyright © 2025 Raindancer118
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Raindancer118/genesis/project"
)

// NewNewCmd builds the new command.
func NewNewCmd() *cobra.Command {
	var (
		template string
		noGit    bool
	)

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a new project from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			} else {
				fmt.Print("Project name: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading project name: %w", err)
				}
				name = strings.TrimSpace(line)
			}

			dir, err := project.Create(project.CreateOptions{
				Name:     name,
				Template: template,
				GitInit:  cfg.Project.UseGitInit && !noGit,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created project in %s\n", dir)
			return nil
		},
	}
	cmd.Flags().StringVarP(&template, "template", "t", "go",
		fmt.Sprintf("project template (%s)", strings.Join(project.TemplateKeys(), ", ")))
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git init")
	return cmd
}

// NewBuildCmd builds the build command: scaffold a tree from an
// indented blueprint read from stdin.
func NewBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <name>",
		Short: "Build a project structure from a text blueprint",
		Long: `Build reads an indented blueprint from standard input and creates
the matching file tree. Four spaces descend one level, a trailing
slash marks a directory, lines starting with # are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Enter the project blueprint, end with Ctrl-D:")
			blueprint, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading blueprint: %w", err)
			}
			created, err := project.Build(args[0], string(blueprint))
			if err != nil {
				return err
			}
			fmt.Printf("Created %d entries under %s\n", created, args[0])
			return nil
		},
	}
}
