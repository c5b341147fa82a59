// Package tui is the interactive shell of the editor: a bubbletea program
// that coordinates the directory picker, the tree pane, the single file
// session and the editing surface. All file IO runs in commands; the model
// is only ever mutated inside Update, which serializes every open against
// any in-flight save.
package tui

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmjak/simple-code-editor/internal/cli"
	"github.com/kmjak/simple-code-editor/internal/fs"
	"github.com/kmjak/simple-code-editor/internal/outline"
	"github.com/kmjak/simple-code-editor/internal/session"
	"github.com/kmjak/simple-code-editor/internal/suggest"
)

const noticeDuration = 3 * time.Second

type phase int

const (
	phasePicking phase = iota
	phaseScanning
	phaseReady
)

type overlay int

const (
	overlayNone overlay = iota
	overlayConfirm
	overlayOutline
)

// --- Messages ---

type scanDoneMsg struct{ root *fs.Entry }

type scanErrMsg struct{ err error }

type fileLoadedMsg struct {
	path string
	text string
}

type fileErrMsg struct{ err error }

type saveDoneMsg struct {
	path string
	text string
}

type saveErrMsg struct{ err error }

type pasteMsg struct{ text string }

type pasteErrMsg struct{ err error }

type noticeExpiredMsg struct{ seq int }

// --- Model ---

type Model struct {
	cfg  *cli.Config
	keys keyMap

	phase   phase
	overlay overlay

	picker filepicker.Model
	spin   spinner.Model
	help   help.Model

	rootPath string
	tree     treeModel

	sess session.Session
	ta   textarea.Model
	sug  suggest.Model

	// confirm overlay state: what the pending transition is
	confirmOpen string
	confirmQuit bool

	// a save is in flight; open/quit wait for its completion message
	saving      bool
	pendingOpen string
	pendingQuit bool

	headings     []outline.Heading
	headingIndex int

	errText   string
	notice    string
	noticeSeq int
	fatal     error

	focusTree     bool
	width, height int
	treeWidth     int
	paneHeight    int
}

func New(cfg *cli.Config) Model {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowHidden = cfg.ShowHidden
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.CharLimit = 0

	m := Model{
		cfg:       cfg,
		keys:      defaultKeyMap(),
		picker:    fp,
		spin:      sp,
		help:      help.New(),
		tree:      newTree(),
		ta:        ta,
		sug:       suggest.New(nil),
		focusTree: true,
	}

	if cfg.Root != "" {
		m.phase = phaseScanning
		m.rootPath = cfg.Root
	} else {
		m.phase = phasePicking
	}
	return m
}

func (m Model) Init() tea.Cmd {
	switch m.phase {
	case phaseScanning:
		return tea.Batch(m.spin.Tick, scanCmd(m.rootPath, m.cfg.ShowHidden))
	default:
		return m.picker.Init()
	}
}

// --- Commands ---

func scanCmd(root string, showHidden bool) tea.Cmd {
	return func() tea.Msg {
		snap, err := fs.Scan(root, showHidden)
		if err != nil {
			return scanErrMsg{err}
		}
		return scanDoneMsg{snap}
	}
}

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := fs.ReadFileText(path)
		if err != nil {
			return fileErrMsg{err}
		}
		return fileLoadedMsg{path: path, text: text}
	}
}

func saveCmd(path, text string) tea.Cmd {
	return func() tea.Msg {
		if err := fs.WriteFileText(path, text); err != nil {
			return saveErrMsg{err}
		}
		return saveDoneMsg{path: path, text: text}
	}
}

func pasteCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := clipboard.ReadAll()
		if err != nil {
			return pasteErrMsg{err}
		}
		return pasteMsg{text}
	}
}

func noticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq}
	})
}

// --- Update ---

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.picker.Height = msg.Height - 4
		m.layout()
		return m, nil

	case scanDoneMsg:
		m.phase = phaseReady
		m.tree.setRoot(msg.root)
		m.rootPath = msg.root.Path
		m.errText = ""
		m.layout()
		return m, nil

	case scanErrMsg:
		// A failed build leaves any previous tree displayed unchanged.
		m.fail(msg.err)
		if m.tree.root == nil {
			// Nothing to fall back to; surface the error on exit.
			m.fatal = msg.err
			return m, tea.Quit
		}
		m.phase = phaseReady
		return m, nil

	case fileLoadedMsg:
		m.sess.Open(msg.path, msg.text)
		m.ta.SetValue(msg.text)
		m.setEditorCursor(0, 0)
		m.sug = suggest.New(nil)
		m.focusTree = false
		m.errText = ""
		m.layout()
		return m, m.ta.Focus()

	case fileErrMsg:
		// The previous session stays intact; the new file is not opened.
		m.fail(msg.err)
		return m, nil

	case saveDoneMsg:
		m.saving = false
		// Commit only into the session the write belongs to.
		if msg.path == m.sess.Path() {
			m.sess.Saved(msg.text)
		}
		m.notice = "saved " + msg.path
		m.noticeSeq++
		cmds := []tea.Cmd{noticeCmd(m.noticeSeq)}
		if m.pendingQuit {
			return m, tea.Quit
		}
		if m.pendingOpen != "" {
			target := m.pendingOpen
			m.pendingOpen = ""
			cmds = append(cmds, loadCmd(target))
		}
		return m, tea.Batch(cmds...)

	case saveErrMsg:
		// Edited text and dirtiness stay; the user's input is never lost.
		m.saving = false
		m.pendingOpen = ""
		m.pendingQuit = false
		m.fail(msg.err)
		return m, nil

	case pasteMsg:
		if m.sess.IsOpen() && !m.focusTree {
			m.ta.InsertString(msg.text)
			m.afterEdit()
		}
		return m, nil

	case pasteErrMsg:
		m.fail(msg.err)
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.phase == phaseScanning {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	if m.phase == phasePicking {
		return m.updatePicker(msg)
	}
	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phasePicking:
		if key.Matches(msg, m.keys.Dismiss) {
			// Cancelled pick: a benign no-op. With a tree on screen we
			// return to it; before the first pick there is nothing to
			// return to.
			if m.tree.root != nil {
				m.phase = phaseReady
				return m, nil
			}
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m.updatePicker(msg)

	case phaseScanning:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.overlay {
	case overlayConfirm:
		return m.updateConfirm(msg)
	case overlayOutline:
		return m.updateOutline(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.sess.Dirty() {
			m.overlay = overlayConfirm
			m.confirmQuit = true
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		// Reserved combination: acts only when a file is open and dirty.
		if m.sess.IsOpen() && m.sess.Dirty() && !m.saving {
			return m, m.startSave()
		}
		return m, nil

	case key.Matches(msg, m.keys.Rescan):
		if m.rootPath != "" {
			return m, scanCmd(m.rootPath, m.cfg.ShowHidden)
		}
		return m, nil

	case key.Matches(msg, m.keys.PickDir):
		m.phase = phasePicking
		m.picker.CurrentDirectory = m.rootPath
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Outline):
		return m.openOutline()

	case key.Matches(msg, m.keys.Focus):
		if !m.focusTree && m.sug.Visible() {
			return m.acceptSuggestion()
		}
		m.focusTree = !m.focusTree
		if m.focusTree {
			m.ta.Blur()
			return m, nil
		}
		if m.sess.IsOpen() {
			return m, m.ta.Focus()
		}
		m.focusTree = true
		return m, nil
	}

	if m.focusTree {
		return m.updateTree(msg)
	}
	return m.updateEditor(msg)
}

func (m Model) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.phase = phaseScanning
		m.rootPath = path
		return m, tea.Batch(m.spin.Tick, scanCmd(path, m.cfg.ShowHidden))
	}
	return m, cmd
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.tree.moveUp()
	case key.Matches(msg, m.keys.Down):
		m.tree.moveDown()
	case key.Matches(msg, m.keys.Open):
		e := m.tree.current()
		if e == nil {
			return m, nil
		}
		if e.IsDir {
			m.tree.toggle()
			return m, nil
		}
		return m.requestOpen(e.Path)
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.sug.Visible() {
		switch {
		case key.Matches(msg, m.keys.Down):
			m.sug.MoveDown()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.sug.MoveUp()
			return m, nil
		case key.Matches(msg, m.keys.Open):
			return m.acceptSuggestion()
		case key.Matches(msg, m.keys.Dismiss):
			m.sug.Dismiss()
			m.layout()
			return m, nil
		}
	}

	if key.Matches(msg, m.keys.Paste) {
		return m, pasteCmd()
	}

	before := m.ta.Value()
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	if m.ta.Value() != before {
		m.afterEdit()
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	decision, ok := confirmDecision(msg)
	if !ok {
		return m, nil
	}

	open := m.confirmOpen
	quit := m.confirmQuit
	m.overlay = overlayNone
	m.confirmOpen = ""
	m.confirmQuit = false

	switch decision {
	case session.Cancel:
		return m, nil

	case session.SaveFirst:
		m.pendingOpen = open
		m.pendingQuit = quit
		if m.saving {
			// A write is already in flight; its completion message
			// carries the transition.
			return m, nil
		}
		return m, m.startSave()

	default: // session.Discard
		if m.saving {
			// The write already left; let it land before moving on.
			m.pendingOpen = open
			m.pendingQuit = quit
			return m, nil
		}
		if quit {
			return m, tea.Quit
		}
		if open != "" {
			return m, loadCmd(open)
		}
		return m, nil
	}
}

func confirmDecision(msg tea.KeyMsg) (session.Decision, bool) {
	switch msg.String() {
	case "y", "Y":
		return session.SaveFirst, true
	case "n", "N":
		return session.Discard, true
	case "esc":
		return session.Cancel, true
	}
	return session.Cancel, false
}

func (m Model) updateOutline(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.headingIndex > 0 {
			m.headingIndex--
		}
	case key.Matches(msg, m.keys.Down):
		if m.headingIndex < len(m.headings)-1 {
			m.headingIndex++
		}
	case key.Matches(msg, m.keys.Open):
		h := m.headings[m.headingIndex]
		m.overlay = overlayNone
		m.setEditorCursor(h.Line-1, 0)
		m.focusTree = false
		return m, m.ta.Focus()
	case key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.Outline):
		m.overlay = overlayNone
	}
	return m, nil
}

func (m Model) openOutline() (tea.Model, tea.Cmd) {
	if !m.sess.IsOpen() || !outline.IsMarkdown(m.sess.Path()) {
		return m, nil
	}
	m.headings = outline.Extract(m.sess.Text())
	if len(m.headings) == 0 {
		m.notice = "no headings"
		m.noticeSeq++
		return m, noticeCmd(m.noticeSeq)
	}
	m.headingIndex = 0
	m.overlay = overlayOutline
	return m, nil
}

// requestOpen routes a file click through the unsaved-changes guard. Opens
// never overlap an in-flight save; they wait for its completion message.
func (m Model) requestOpen(path string) (tea.Model, tea.Cmd) {
	if path == m.sess.Path() {
		return m, nil
	}
	if m.sess.NeedsGuard(path) {
		m.overlay = overlayConfirm
		m.confirmOpen = path
		return m, nil
	}
	if m.saving {
		m.pendingOpen = path
		return m, nil
	}
	return m, loadCmd(path)
}

// startSave issues the write command. At most one write is ever in flight.
func (m *Model) startSave() tea.Cmd {
	if m.saving {
		return nil
	}
	m.saving = true
	return saveCmd(m.sess.Path(), m.sess.Text())
}

func (m Model) acceptSuggestion() (tea.Model, tea.Cmd) {
	text, cursor, ok := m.sug.Accept(m.ta.Value())
	if !ok {
		return m, nil
	}
	m.ta.SetValue(text)
	row, col := rowColOf(text, cursor)
	m.setEditorCursor(row, col)
	m.sess.Edit(text)
	m.sug.Refresh(text, cursor)
	m.layout()
	return m, nil
}

// afterEdit pushes the textarea's buffer into the session and recomputes the
// suggestion list for the new cursor position.
func (m *Model) afterEdit() {
	text := m.ta.Value()
	m.sess.Edit(text)
	m.sug.Refresh(text, m.cursorOffset())
	m.layout()
}

// cursorOffset converts the textarea's row/column cursor into a rune offset
// into the whole buffer.
func (m Model) cursorOffset() int {
	lines := strings.Split(m.ta.Value(), "\n")
	row := m.ta.Line()
	if row > len(lines)-1 {
		row = len(lines) - 1
	}
	info := m.ta.LineInfo()
	col := info.StartColumn + info.ColumnOffset

	offset := 0
	for i := 0; i < row; i++ {
		offset += len([]rune(lines[i])) + 1
	}
	runes := []rune(lines[row])
	if col > len(runes) {
		col = len(runes)
	}
	return offset + col
}

func rowColOf(text string, offset int) (row, col int) {
	runes := []rune(text)
	if offset > len(runes) {
		offset = len(runes)
	}
	for i := 0; i < offset; i++ {
		if runes[i] == '\n' {
			row++
			col = 0
		} else {
			col++
		}
	}
	return row, col
}

// setEditorCursor moves the textarea cursor to the given row and column.
func (m *Model) setEditorCursor(row, col int) {
	for m.ta.Line() > 0 {
		m.ta.CursorUp()
	}
	for i := 0; i < row; i++ {
		m.ta.CursorDown()
	}
	m.ta.SetCursor(col)
}

// FatalErr reports the error that forced the program to exit, if any. The
// entry point prints it once the terminal is restored.
func (m Model) FatalErr() error { return m.fatal }

func (m *Model) fail(err error) {
	// The latest error replaces any prior one.
	m.errText = err.Error()
	log.Printf("error: %v", err)
}
