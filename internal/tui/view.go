package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kmjak/simple-code-editor/internal/gutter"
)

// --- Styles ---
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	faintStyle   = lipgloss.NewStyle().Faint(true)

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("63"))
	blurredPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	treeRowStyle        = lipgloss.NewStyle()
	treeCursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63"))
	treeCursorBlurStyle = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	treeOpenStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("78")) // Green
	treeEmptyStyle      = faintStyle

	statusStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("252"))
	dirtyStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("197"))
	noticeStyle = lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("78"))

	sugBoxStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("63"))
	sugItemStyle = lipgloss.NewStyle()
	sugSelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63"))

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)
)

const maxSuggestionRows = 6

// layout sizes the panes for the current terminal and popup state.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	tw := m.width / 4
	if tw < 20 {
		tw = 20
	}
	if tw > 36 {
		tw = 36
	}
	m.treeWidth = tw

	// one status line, one help line, two border rows per pane
	ph := m.height - 4
	if ph < 3 {
		ph = 3
	}
	m.paneHeight = ph
	m.tree.setHeight(ph)

	ew := m.width - tw - 4
	if ew < 10 {
		ew = 10
	}

	taHeight := ph
	if m.sug.Visible() {
		rows := len(m.sug.Items())
		if rows > maxSuggestionRows {
			rows = maxSuggestionRows
		}
		taHeight = ph - rows - 2 // popup rows plus its border
		if taHeight < 1 {
			taHeight = 1
		}
	}
	m.ta.SetWidth(ew)
	m.ta.SetHeight(taHeight)
}

func (m Model) View() string {
	switch m.phase {
	case phasePicking:
		return m.viewPicker()
	case phaseScanning:
		return fmt.Sprintf("\n %s scanning %s\n", m.spin.View(), m.rootPath)
	}

	switch m.overlay {
	case overlayConfirm:
		return m.viewConfirm()
	case overlayOutline:
		return m.viewOutline()
	}

	treePane := m.paneStyle(m.focusTree).Render(
		lipgloss.NewStyle().Width(m.treeWidth).Height(m.paneHeight).Render(
			m.tree.view(m.treeWidth, m.focusTree, m.sess.Path()),
		),
	)

	var editor string
	if m.sess.IsOpen() {
		editor = m.ta.View()
		if m.sug.Visible() {
			editor += "\n" + m.viewSuggestions()
		}
	} else {
		editor = lipgloss.Place(
			m.width-m.treeWidth-4, m.paneHeight,
			lipgloss.Center, lipgloss.Center,
			faintStyle.Render("select a file to edit"),
		)
	}
	editorPane := m.paneStyle(!m.focusTree).Render(
		lipgloss.NewStyle().Width(m.width-m.treeWidth-4).Height(m.paneHeight).Render(editor),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, treePane, editorPane)
	return body + "\n" + m.viewStatus() + "\n" + m.help.View(m.keys)
}

func (m Model) paneStyle(focused bool) lipgloss.Style {
	if focused {
		return focusedPaneStyle
	}
	return blurredPaneStyle
}

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString("\n " + titleStyle.Render("Pick a directory") + "\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n " + faintStyle.Render("enter: select · esc: cancel"))
	return b.String()
}

func (m Model) viewSuggestions() string {
	items := m.sug.Items()
	rows := len(items)
	if rows > maxSuggestionRows {
		rows = maxSuggestionRows
	}

	// keep the highlighted entry inside the window
	top := 0
	if m.sug.Index() >= rows {
		top = m.sug.Index() - rows + 1
	}

	var b strings.Builder
	for i := top; i < top+rows && i < len(items); i++ {
		style := sugItemStyle
		if i == m.sug.Index() {
			style = sugSelStyle
		}
		b.WriteString(style.Render(" " + items[i] + " "))
		if i < top+rows-1 && i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	return sugBoxStyle.Render(b.String())
}

func (m Model) viewStatus() string {
	left := " no file"
	if m.sess.IsOpen() {
		left = " " + m.sess.Path()
		if m.sess.Dirty() {
			left += dirtyStyle.Render(" ●")
		}
	}

	var middle string
	switch {
	case m.errText != "":
		middle = errorStyle.Render(" " + m.errText + " ")
	case m.notice != "":
		middle = noticeStyle.Render(" " + m.notice + " ")
	}

	right := ""
	if m.sess.IsOpen() {
		total := gutter.Count(m.sess.Text())
		right = fmt.Sprintf("Ln %*d/%d ", gutter.Width(total), m.ta.Line()+1, total)
	}

	pad := m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return statusStyle.Width(m.width).Render(left + strings.Repeat(" ", pad) + middle + right)
}

func (m Model) viewConfirm() string {
	target := "quit"
	if m.confirmOpen != "" {
		target = "open " + m.confirmOpen
	}
	box := dialogStyle.Render(
		titleStyle.Render("Unsaved changes") + "\n\n" +
			m.sess.Path() + " has unsaved edits.\n" +
			"Save before you " + target + "?\n\n" +
			faintStyle.Render("y: save · n: discard · esc: cancel"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewOutline() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Outline") + "\n\n")
	for i, h := range m.headings {
		line := fmt.Sprintf("%s%s  %s",
			strings.Repeat("  ", h.Level-1), h.Title,
			faintStyle.Render(fmt.Sprintf(":%d", h.Line)))
		if i == m.headingIndex {
			line = sugSelStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + faintStyle.Render("enter: jump · esc: close"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		dialogStyle.Render(b.String()))
}
