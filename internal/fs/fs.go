package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one node of a directory snapshot. Children is populated only for
// directories and is ordered directories-first, then by name.
type Entry struct {
	Name     string
	Path     string
	IsDir    bool
	Children []*Entry
}

// Scan builds a snapshot of the tree rooted at root. The walk recurses into
// every child directory; if enumeration fails anywhere the whole build is
// abandoned and no partial tree is returned. Dot-prefixed entries are
// skipped unless showHidden is set.
func Scan(root string, showHidden bool) (*Entry, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	node := &Entry{
		Name:  filepath.Base(abs),
		Path:  abs,
		IsDir: true,
	}
	if err := scanInto(node, showHidden); err != nil {
		return nil, err
	}
	return node, nil
}

func scanInto(dir *Entry, showHidden bool) error {
	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir.Path, err)
	}

	for _, e := range entries {
		if !showHidden && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		child := &Entry{
			Name:  e.Name(),
			Path:  filepath.Join(dir.Path, e.Name()),
			IsDir: e.IsDir(),
		}
		if child.IsDir {
			if err := scanInto(child, showHidden); err != nil {
				return err
			}
		}
		dir.Children = append(dir.Children, child)
	}

	sortEntries(dir.Children)
	return nil
}

// sortEntries orders a single level: directories before files, then
// case-folded name order with the raw name as tie-breaker.
func sortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		la, lb := strings.ToLower(a.Name), strings.ToLower(b.Name)
		if la != lb {
			return la < lb
		}
		return a.Name < b.Name
	})
}

// ReadFileText reads the complete contents of path as UTF-8 text.
func ReadFileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFileText replaces the entire contents of path with text. There is no
// atomic rename and no backup; whatever bytes a failed write committed stay.
func WriteFileText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
