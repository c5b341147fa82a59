// Package suggest implements the keyword autocomplete popup: current-word
// extraction around the cursor, prefix filtering of a fixed dictionary, and
// the visibility/selection state machine.
package suggest

import (
	"strings"
	"unicode"
)

// Keywords is the default dictionary. Filtered output preserves this order.
var Keywords = []string{
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "export", "extends", "false",
	"finally", "for", "foreach", "function", "if", "import", "in",
	"instanceof", "let", "new", "null", "return", "static", "super",
	"switch", "this", "throw", "true", "try", "typeof", "var", "void",
	"while", "with", "yield",
}

// Word is the maximal run of non-whitespace characters touching the cursor.
// Offsets are rune offsets into the buffer, Start inclusive and End
// exclusive.
type Word struct {
	Text  string
	Start int
	End   int
}

// WordAt extracts the current word around cursor. The buffer is split at the
// cursor; the trailing non-whitespace run of the before-half and the leading
// run of the after-half together form the word.
func WordAt(text string, cursor int) Word {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	start := cursor
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}

	return Word{
		Text:  string(runes[start:end]),
		Start: start,
		End:   end,
	}
}

// Filter returns the dictionary entries that start with prefix but are not
// identical to it. Matching is case-sensitive and dictionary order is kept;
// the result is never re-sorted.
func Filter(dict []string, prefix string) []string {
	var out []string
	for _, w := range dict {
		if w != prefix && strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}

// Model holds the suggestion list state between keystrokes.
type Model struct {
	dict     []string
	items    []string
	index    int
	suppress bool
	word     Word
}

// New returns a model over dict, or over Keywords when dict is nil.
func New(dict []string) Model {
	if dict == nil {
		dict = Keywords
	}
	return Model{dict: dict}
}

// Refresh recomputes the list for the new buffer and cursor position. It is
// called on every text change. The one edit following an accepted
// suggestion is swallowed so the completed word does not immediately reopen
// the same list.
func (m *Model) Refresh(text string, cursor int) {
	m.word = WordAt(text, cursor)

	if m.suppress {
		m.suppress = false
		m.clear()
		return
	}

	runes := []rune(text)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	fragment := string(runes[m.word.Start:cursor])
	if fragment == "" {
		m.clear()
		return
	}

	m.items = Filter(m.dict, fragment)
	m.index = 0
}

// Visible reports whether the list should be shown.
func (m Model) Visible() bool { return len(m.items) > 0 }

// Items returns the visible suggestions in dictionary order.
func (m Model) Items() []string { return m.items }

// Index returns the highlighted entry's position.
func (m Model) Index() int { return m.index }

// MoveDown moves the highlight one entry down, clamped to the list end.
func (m *Model) MoveDown() {
	if m.index < len(m.items)-1 {
		m.index++
	}
}

// MoveUp moves the highlight one entry up, clamped to the list start.
func (m *Model) MoveUp() {
	if m.index > 0 {
		m.index--
	}
}

// Dismiss hides the list without accepting anything.
func (m *Model) Dismiss() { m.clear() }

// Accept splices the highlighted suggestion over the current word's span in
// text. It returns the new buffer, the rune offset just after the inserted
// word, and whether anything was accepted. The list closes and the next
// Refresh is suppressed.
func (m *Model) Accept(text string) (string, int, bool) {
	if !m.Visible() {
		return text, 0, false
	}
	chosen := m.items[m.index]
	runes := []rune(text)

	start, end := m.word.Start, m.word.End
	if start > len(runes) {
		start = len(runes)
	}
	if end > len(runes) {
		end = len(runes)
	}

	var b strings.Builder
	b.WriteString(string(runes[:start]))
	b.WriteString(chosen)
	b.WriteString(string(runes[end:]))

	m.clear()
	m.suppress = true
	return b.String(), start + len([]rune(chosen)), true
}

func (m *Model) clear() {
	m.items = nil
	m.index = 0
}
