// Package sortdir files a directory's loose files into category
// sub-directories by extension. Unknown extensions can be resolved by
// an optional prompt and the answers are remembered for later runs.
package sortdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultCategory receives everything no rule or preference covers.
const DefaultCategory = "Other"

var categoryRules = map[string][]string{
	"Documents":     {".pdf", ".doc", ".docx", ".txt", ".md", ".odt", ".rtf"},
	"Spreadsheets":  {".xls", ".xlsx", ".ods", ".csv"},
	"Presentations": {".ppt", ".pptx", ".key", ".odp"},
	"Images":        {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".svg", ".webp"},
	"Audio":         {".mp3", ".wav", ".flac", ".aac", ".ogg"},
	"Video":         {".mp4", ".mkv", ".mov", ".avi", ".webm"},
	"Archives":      {".zip", ".tar", ".gz", ".bz2", ".xz", ".rar", ".7z"},
	"Code": {
		".py", ".js", ".ts", ".java", ".go", ".rs", ".c", ".cpp",
		".h", ".hpp", ".json", ".yaml", ".yml", ".toml",
	},
	"Installers": {".deb", ".rpm", ".msi", ".exe", ".dmg"},
}

var extToCategory = func() map[string]string {
	m := make(map[string]string)
	for category, exts := range categoryRules {
		for _, ext := range exts {
			m[ext] = category
		}
	}
	return m
}()

// Categories lists the built-in category names plus the default, sorted.
func Categories() []string {
	names := make([]string, 0, len(categoryRules)+1)
	for name := range categoryRules {
		names = append(names, name)
	}
	names = append(names, DefaultCategory)
	sort.Strings(names)
	return names
}

// Sorter moves a directory's files into category sub-directories.
// Prompt, when set, is asked for a category whenever a file matches no
// rule and no stored preference; its answer is saved in Preferences.
type Sorter struct {
	Prompt      func(filename string) string
	Preferences map[string]string

	changed bool
}

// NewSorter builds a Sorter with the given stored preferences. A nil
// map is treated as empty.
func NewSorter(prefs map[string]string) *Sorter {
	if prefs == nil {
		prefs = make(map[string]string)
	}
	return &Sorter{Preferences: prefs}
}

// PreferencesChanged reports whether the last Sort run learned a new
// extension mapping worth persisting.
func (s *Sorter) PreferencesChanged() bool { return s.changed }

// Sort files everything directly inside dir into category
// sub-directories and returns the per-category counts.
func (s *Sorter) Sort(dir string) (map[string]int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("path %q does not exist", dir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return map[string]int{}, nil
	}

	counts := make(map[string]int)
	for _, name := range files {
		category := s.categorize(name)
		destDir := filepath.Join(dir, category)
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return counts, err
		}
		dest := resolveCollision(destDir, name)
		if err := os.Rename(filepath.Join(dir, name), dest); err != nil {
			return counts, err
		}
		counts[category]++
	}
	return counts, nil
}

func (s *Sorter) categorize(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	key := ext
	if key == "" {
		key = ":name:" + strings.ToLower(filename)
	}

	if category, ok := s.Preferences[key]; ok {
		return category
	}
	if ext != "" {
		if category, ok := extToCategory[ext]; ok {
			return category
		}
	}

	category := DefaultCategory
	if s.Prompt != nil {
		if answer := strings.TrimSpace(s.Prompt(filename)); answer != "" {
			category = answer
		}
	}
	s.Preferences[key] = category
	s.changed = true
	return category
}

// resolveCollision returns a destination path that does not yet exist,
// appending " (n)" before the extension when needed.
func resolveCollision(destDir, filename string) string {
	dest := filepath.Join(destDir, filename)
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return dest
	}
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(destDir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// PrintSummary writes the per-category counts in descending order.
func PrintSummary(w io.Writer, dir string, counts map[string]int) {
	fmt.Fprintf(w, "Sorted files in %q.\n", dir)
	type pair struct {
		category string
		count    int
	}
	pairs := make([]pair, 0, len(counts))
	for category, count := range counts {
		pairs = append(pairs, pair{category, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].category < pairs[j].category
	})
	for _, p := range pairs {
		label := "files"
		if p.count == 1 {
			label = "file"
		}
		fmt.Fprintf(w, "  %s: %d %s\n", p.category, p.count, label)
	}
}
