// Package session tracks the single open file: its last-loaded-or-saved
// text, the edited text, and whether the two have diverged.
package session

// Decision is the outcome of the unsaved-changes guard.
type Decision int

const (
	// Cancel aborts the transition; the current file stays open.
	Cancel Decision = iota
	// SaveFirst saves the current file before the transition proceeds.
	SaveFirst
	// Discard drops the in-memory edits and proceeds.
	Discard
)

// Session holds at most one open file. The zero value is an empty session
// with nothing open. State only changes through commits of successful
// operations, so a failed read or write leaves it untouched.
type Session struct {
	path     string
	original string
	edited   string
}

// Open commits a successful load: the previous session state is replaced
// wholesale and original and edited start out equal.
func (s *Session) Open(path, text string) {
	s.path = path
	s.original = text
	s.edited = text
}

// Edit replaces the edited buffer with the caller-supplied content. No
// validation, no size limit.
func (s *Session) Edit(text string) {
	s.edited = text
}

// Saved commits a successful write of written, bringing original back in
// lockstep with the text that actually reached disk. It must not be called
// after a failed write; skipping it is what keeps dirtiness (and the user's
// edits) alive. Passing the written text rather than assuming it equals the
// edited buffer keeps dirtiness honest if an edit slipped in while the
// write was in flight.
func (s *Session) Saved(written string) {
	s.original = written
}

// Dirty reports whether a file is open and its edited text differs from the
// last-loaded-or-saved text.
func (s *Session) Dirty() bool {
	return s.path != "" && s.original != s.edited
}

// Open reports whether any file is open.
func (s *Session) IsOpen() bool { return s.path != "" }

// Path returns the open file's path, or "" when nothing is open.
func (s *Session) Path() string { return s.path }

// Text returns the edited buffer.
func (s *Session) Text() string { return s.edited }

// NeedsGuard reports whether opening target must first run the
// unsaved-changes confirmation. Re-opening the already-open file never
// does: reloading it would silently discard edits.
func (s *Session) NeedsGuard(target string) bool {
	return s.Dirty() && target != s.path
}
