package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raindancer118/genesis/log"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "genesis-logs")
	if err != nil {
		panic(err)
	}
	os.Setenv("GENESIS_LOG_DIR", dir)
	log.Init()
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestCreateGoTemplate(t *testing.T) {
	root := t.TempDir()
	dir, err := Create(CreateOptions{Name: "myapp", Template: "go", Root: root})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "myapp"), dir)
	assert.FileExists(t, filepath.Join(dir, "main.go"))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
	assert.DirExists(t, filepath.Join(dir, "internal"))

	mod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	require.NoError(t, err)
	assert.Contains(t, string(mod), "module myapp")
}

func TestCreatePythonTemplateExpandsName(t *testing.T) {
	root := t.TempDir()
	dir, err := Create(CreateOptions{Name: "tool", Template: "python", Root: root})
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "src", "tool", "__init__.py"))
}

func TestCreateRejectsExistingDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "taken"), 0o755))
	_, err := Create(CreateOptions{Name: "taken", Template: "empty", Root: root})
	assert.Error(t, err)
}

func TestCreateUnknownTemplate(t *testing.T) {
	_, err := Create(CreateOptions{Name: "x", Template: "ruby", Root: t.TempDir()})
	assert.ErrorContains(t, err, "unknown template")
}

func TestTemplateKeysSorted(t *testing.T) {
	assert.Equal(t, []string{"empty", "go", "python"}, TemplateKeys())
}

func TestBuildBlueprint(t *testing.T) {
	root := filepath.Join(t.TempDir(), "proj")
	blueprint := `
src/
    app.go
    util/
        strings.go
README.md
`
	created, err := Build(root, blueprint)
	require.NoError(t, err)
	assert.Equal(t, 5, created)
	assert.FileExists(t, filepath.Join(root, "src", "app.go"))
	assert.FileExists(t, filepath.Join(root, "src", "util", "strings.go"))
	assert.FileExists(t, filepath.Join(root, "README.md"))
}

func TestBuildSkipsCommentsAndBlankLines(t *testing.T) {
	root := t.TempDir()
	created, err := Build(root, "# plan\n\nnotes.txt\n")
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.FileExists(t, filepath.Join(root, "notes.txt"))
}

func TestBuildEmptyBlueprint(t *testing.T) {
	_, err := Build(t.TempDir(), "   \n")
	assert.Error(t, err)
}

func TestBuildOverIndentedLineClampsToParent(t *testing.T) {
	root := t.TempDir()
	_, err := Build(root, "a/\n            deep.txt\n")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "a", "deep.txt"))
}
