package tui

import (
	"strings"

	"github.com/kmjak/simple-code-editor/internal/fs"
)

// treeRow is one visible line of the tree pane.
type treeRow struct {
	entry *fs.Entry
	depth int
}

// treeModel renders a snapshot as a collapsible nested list and tracks the
// cursor within it.
type treeModel struct {
	root     *fs.Entry
	expanded map[string]bool
	rows     []treeRow
	cursor   int
	offset   int
	height   int
}

func newTree() treeModel {
	return treeModel{expanded: map[string]bool{}}
}

// setRoot installs a fresh snapshot. Expansion state carries over between
// rescans of the same directory; the cursor is clamped to the new rows.
func (t *treeModel) setRoot(root *fs.Entry) {
	t.root = root
	t.expanded[root.Path] = true
	t.rebuild()
	if t.cursor >= len(t.rows) {
		t.cursor = len(t.rows) - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
	t.scrollIntoView()
}

// rebuild flattens the snapshot into visible rows, recursing structurally
// over expanded directories.
func (t *treeModel) rebuild() {
	t.rows = t.rows[:0]
	if t.root == nil {
		return
	}
	t.flatten(t.root, 0)
}

func (t *treeModel) flatten(dir *fs.Entry, depth int) {
	for _, child := range dir.Children {
		t.rows = append(t.rows, treeRow{entry: child, depth: depth})
		if child.IsDir && t.expanded[child.Path] {
			t.flatten(child, depth+1)
		}
	}
}

func (t *treeModel) current() *fs.Entry {
	if t.cursor < 0 || t.cursor >= len(t.rows) {
		return nil
	}
	return t.rows[t.cursor].entry
}

func (t *treeModel) moveUp() {
	if t.cursor > 0 {
		t.cursor--
		t.scrollIntoView()
	}
}

func (t *treeModel) moveDown() {
	if t.cursor < len(t.rows)-1 {
		t.cursor++
		t.scrollIntoView()
	}
}

// toggle flips expansion of the directory under the cursor. Files are left
// to the caller (they open a session instead).
func (t *treeModel) toggle() {
	e := t.current()
	if e == nil || !e.IsDir {
		return
	}
	t.expanded[e.Path] = !t.expanded[e.Path]
	t.rebuild()
	t.scrollIntoView()
}

func (t *treeModel) setHeight(h int) {
	if h < 1 {
		h = 1
	}
	t.height = h
	t.scrollIntoView()
}

func (t *treeModel) scrollIntoView() {
	if t.height <= 0 {
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	if t.cursor >= t.offset+t.height {
		t.offset = t.cursor - t.height + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

func (t *treeModel) view(width int, focused bool, openPath string) string {
	if t.root == nil {
		return treeEmptyStyle.Render("no directory")
	}

	var b strings.Builder
	end := t.offset + t.height
	if end > len(t.rows) {
		end = len(t.rows)
	}

	for i := t.offset; i < end; i++ {
		row := t.rows[i]
		var marker string
		switch {
		case !row.entry.IsDir:
			marker = "  "
		case t.expanded[row.entry.Path]:
			marker = "▾ "
		default:
			marker = "▸ "
		}

		line := strings.Repeat("  ", row.depth) + marker + row.entry.Name
		if r := []rune(line); len(r) > width {
			line = string(r[:width])
		}

		style := treeRowStyle
		switch {
		case i == t.cursor && focused:
			style = treeCursorStyle
		case i == t.cursor:
			style = treeCursorBlurStyle
		case row.entry.Path == openPath:
			style = treeOpenStyle
		}
		b.WriteString(style.Width(width).Render(line))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
