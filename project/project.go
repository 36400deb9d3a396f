// Package project scaffolds new project directories, either from a
// named template or from an indented text blueprint.
package project

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Raindancer118/genesis/log"
)

// Template describes one project scaffold: files with initial content
// plus directories to create empty.
type Template struct {
	Key         string
	Description string
	Files       map[string]string
	Dirs        []string
}

var templates = map[string]Template{
	"go": {
		Key:         "go",
		Description: "Go module with a cmd entrypoint",
		Files: map[string]string{
			"main.go":   "package main\n\nfunc main() {\n}\n",
			"go.mod":    "module {{name}}\n\ngo 1.21\n",
			"README.md": "# {{name}}\n",
			".gitignore": "/bin/\n" +
				"*.test\n",
		},
		Dirs: []string{"internal", "cmd"},
	},
	"python": {
		Key:         "python",
		Description: "Python package with a src layout",
		Files: map[string]string{
			"pyproject.toml": "[project]\nname = \"{{name}}\"\nversion = \"0.1.0\"\n",
			"README.md":      "# {{name}}\n",
			".gitignore":     "__pycache__/\n.venv/\n",
			"src/{{name}}/__init__.py": "",
			"tests/__init__.py":        "",
		},
	},
	"empty": {
		Key:         "empty",
		Description: "Bare directory with a README",
		Files: map[string]string{
			"README.md": "# {{name}}\n",
		},
	},
}

// TemplateKeys lists the available template names, sorted.
func TemplateKeys() []string {
	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CreateOptions controls Create.
type CreateOptions struct {
	Name     string
	Template string
	GitInit  bool
	// Root is the directory the project is created under. Empty means
	// the current working directory.
	Root string
}

// Create scaffolds a new project directory from a template. The target
// directory must not already exist.
func Create(opts CreateOptions) (string, error) {
	if opts.Name == "" {
		return "", fmt.Errorf("project name is required")
	}
	tmpl, ok := templates[opts.Template]
	if !ok {
		return "", fmt.Errorf("unknown template %q (have %s)", opts.Template, strings.Join(TemplateKeys(), ", "))
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	dir := filepath.Join(root, opts.Name)
	if _, err := os.Stat(dir); err == nil {
		return "", fmt.Errorf("directory %q already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	for _, sub := range tmpl.Dirs {
		if err := os.MkdirAll(filepath.Join(dir, expand(sub, opts.Name)), 0o755); err != nil {
			return "", err
		}
	}
	for rel, content := range tmpl.Files {
		path := filepath.Join(dir, expand(rel, opts.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, []byte(expand(content, opts.Name)), 0o644); err != nil {
			return "", err
		}
	}

	if opts.GitInit {
		if err := gitInit(dir); err != nil {
			log.CombinedLogger.Warnf("git init failed: %v", err)
		}
	}
	return dir, nil
}

func expand(s, name string) string {
	return strings.ReplaceAll(s, "{{name}}", name)
}

func gitInit(dir string) error {
	cmd := exec.Command("git", "init")
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	log.LogGitCommand(cmd)
	if err != nil {
		return fmt.Errorf("%s: %s", err, strings.TrimSpace(out.String()))
	}
	return nil
}

// Build creates a file tree under root from an indented blueprint.
// Each four spaces of indentation descend one level and a trailing
// slash marks a directory. It returns how many entries were created.
func Build(root, blueprint string) (int, error) {
	if strings.TrimSpace(blueprint) == "" {
		return 0, fmt.Errorf("blueprint is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return 0, err
	}

	stack := []string{root}
	created := 0
	for _, line := range strings.Split(blueprint, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		level := (len(line) - len(strings.TrimLeft(line, " "))) / 4
		name := strings.TrimSpace(line)

		if level >= len(stack) {
			level = len(stack) - 1
		}
		stack = stack[:level+1]

		isDir := strings.HasSuffix(name, "/")
		name = strings.TrimSuffix(name, "/")
		path := filepath.Join(stack[len(stack)-1], name)

		if isDir {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return created, err
			}
			stack = append(stack, path)
		} else {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return created, err
			}
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return created, err
			}
			f.Close()
		}
		created++
	}
	return created, nil
}
