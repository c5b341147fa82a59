package suggest

import (
	"reflect"
	"testing"
)

func TestWordAt(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cursor int
		want   Word
	}{
		{"middle of word", "foo bar baz", 5, Word{"bar", 4, 7}},
		{"start of buffer", "fo bar", 2, Word{"fo", 0, 2}},
		{"cursor inside word joins halves", "prefix", 3, Word{"prefix", 0, 6}},
		{"on whitespace", "a  b", 2, Word{"", 2, 2}},
		{"empty buffer", "", 0, Word{"", 0, 0}},
		{"cursor past end clamps", "abc", 10, Word{"abc", 0, 3}},
		{"unicode runes", "héllo wörld", 8, Word{"wörld", 6, 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordAt(tt.text, tt.cursor); got != tt.want {
				t.Errorf("WordAt(%q, %d) = %+v, want %+v", tt.text, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestFilterKeepsDictionaryOrder(t *testing.T) {
	dict := []string{"for", "foreach", "function"}
	got := Filter(dict, "fo")
	want := []string{"for", "foreach", "function"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}

	// The output follows the dictionary, not alphabetical order.
	shuffled := []string{"function", "for", "foreach"}
	got = Filter(shuffled, "fo")
	if !reflect.DeepEqual(got, shuffled) {
		t.Fatalf("Filter re-sorted: %v, want %v", got, shuffled)
	}
}

func TestFilterExcludesExactMatch(t *testing.T) {
	dict := []string{"for", "foreach", "function"}
	got := Filter(dict, "for")
	want := []string{"foreach"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
}

func TestFilterCaseSensitive(t *testing.T) {
	dict := []string{"For", "for"}
	got := Filter(dict, "fo")
	if !reflect.DeepEqual(got, []string{"for"}) {
		t.Fatalf("Filter = %v, want [for]", got)
	}
}

func TestRefreshVisibility(t *testing.T) {
	m := New([]string{"for", "foreach", "function"})

	m.Refresh("fo", 2)
	if !m.Visible() {
		t.Fatal("expected visible list for fragment 'fo'")
	}
	if !reflect.DeepEqual(m.Items(), []string{"for", "foreach", "function"}) {
		t.Fatalf("items = %v", m.Items())
	}

	// Cursor at the start of the word: the before-half fragment is empty.
	m.Refresh("fo", 0)
	if m.Visible() {
		t.Error("empty before-fragment must hide the list")
	}

	m.Refresh("   ", 1)
	if m.Visible() {
		t.Error("whitespace never produces a list")
	}
}

func TestNavigationClamps(t *testing.T) {
	m := New([]string{"for", "foreach", "function"})
	m.Refresh("fo", 2)

	m.MoveUp()
	if m.Index() != 0 {
		t.Errorf("MoveUp at top: index = %d, want 0", m.Index())
	}
	m.MoveDown()
	m.MoveDown()
	m.MoveDown() // clamped, no wraparound
	if m.Index() != 2 {
		t.Errorf("MoveDown at bottom: index = %d, want 2", m.Index())
	}
}

func TestAcceptSplicesAndPlacesCursor(t *testing.T) {
	m := New([]string{"function", "for", "foreach"})
	m.Refresh("fo bar", 2)

	// Highlight "foreach".
	for m.Items()[m.Index()] != "foreach" {
		m.MoveDown()
	}

	text, cursor, ok := m.Accept("fo bar")
	if !ok {
		t.Fatal("Accept returned ok=false")
	}
	if text != "foreach bar" {
		t.Errorf("text = %q, want %q", text, "foreach bar")
	}
	if cursor != 7 {
		t.Errorf("cursor = %d, want 7", cursor)
	}
	if m.Visible() {
		t.Error("list must close on accept")
	}
}

func TestSuppressionLastsOneEdit(t *testing.T) {
	m := New([]string{"for", "foreach"})
	m.Refresh("fo", 2)
	if _, _, ok := m.Accept("fo"); !ok {
		t.Fatal("Accept failed")
	}

	// The edit produced by the accept itself must not reopen the list.
	m.Refresh("for", 3)
	if m.Visible() {
		t.Fatal("refresh right after accept must be suppressed")
	}

	// The next edit behaves normally again.
	m.Refresh("fo", 2)
	if !m.Visible() {
		t.Fatal("suppression must last exactly one edit")
	}
}

func TestDismiss(t *testing.T) {
	m := New(nil)
	m.Refresh("fo", 2)
	if !m.Visible() {
		t.Fatal("expected default dictionary to match 'fo'")
	}
	m.Dismiss()
	if m.Visible() {
		t.Error("Dismiss must hide the list")
	}
}

func TestAcceptWithoutList(t *testing.T) {
	m := New(nil)
	text, _, ok := m.Accept("abc")
	if ok {
		t.Error("Accept with hidden list must be a no-op")
	}
	if text != "abc" {
		t.Errorf("text changed: %q", text)
	}
}
