package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tap/internal/document"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	quit := false

	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)

	// -- Paste (clipboard read or bracketed paste) ---------------------------
	case tea.ClipboardMsg:
		cmds = append(cmds, m.insertPaste(msg.String()))
	case tea.PasteMsg:
		cmds = append(cmds, m.insertPaste(msg.Content))

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		cmd, q := m.handleKeyPress(msg)
		cmds = append(cmds, cmd)
		quit = q

	// -- Status bar ----------------------------------------------------------
	case statusMsg:
		cmds = append(cmds, m.flash(msg.text, msg.err))
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}

	case retryTickMsg:
		cmds = append(cmds, retryTick())

	default:
		// Debounce ticks and anything else a modal scheduled.
		if m.picker != nil {
			_, cmd := m.picker.HandleMsg(msg)
			cmds = append(cmds, cmd)
		}
	}

	if quit {
		m.mgr.CommitTitle()
		m.mgr.Drain()
		m.mgr.Flush()
		log.Info().Int("unsaved", m.mgr.DirtyCount()).Msg("quitting")
		return m, tea.Quit
	}

	cmds = append(cmds, m.drain())
	cmds = append(cmds, m.clip.cmds()...)
	return m, tea.Batch(cmds...)
}

// drain applies queued document commands and brings the panes up to date.
func (m *Model) drain() tea.Cmd {
	// Remember titles so a deletion can be reported by name.
	titles := make(map[string]string)
	if m.mgr.Pending() > 0 {
		for _, n := range m.mgr.Notes() {
			titles[n.ID.String()] = n.Title
		}
	}

	var cmd tea.Cmd
	for _, c := range m.mgr.Drain() {
		switch c := c.(type) {
		case document.CreateNote:
			m.setFocus(focusTitle)
			m.title.Editor().SelectAll()
		case document.DeleteNote:
			if m.mgr.Index(c.ID) < 0 {
				cmd = m.flash(fmt.Sprintf("deleted %q", titles[c.ID.String()]), false)
			} else {
				cmd = m.flash("delete failed", true)
			}
			if !m.hasNote() && m.focus != focusList {
				m.setFocus(focusList)
			}
		}
	}

	m.syncList()
	m.content.Sync()
	m.title.Sync()
	return cmd
}

// insertPaste inserts pasted text into the picker query when it is open,
// else into the focused editor.
func (m *Model) insertPaste(text string) tea.Cmd {
	switch {
	case text == "" || m.confirm != nil:
		return nil
	case m.picker != nil:
		return m.picker.Paste(text)
	case !m.hasNote():
		return nil
	}
	switch m.focus {
	case focusTitle:
		m.title.Editor().ReplaceText(nil, text)
	case focusEditor:
		m.content.Editor().ReplaceText(nil, text)
	}
	return nil
}

// syncList keeps the list highlight on the active note when it changes and
// scrolls the list to show the highlight when it moves. A wheel scroll
// stays put until then.
func (m *Model) syncList() {
	n := m.mgr.Len()
	if active := m.mgr.ActiveID().String(); active != m.lastActive {
		m.lastActive = active
		if i := m.mgr.Index(m.mgr.ActiveID()); i >= 0 {
			m.listSel = i
		}
	}
	m.listSel = max(min(m.listSel, n-1), 0)

	h := m.layout.list.Dy()
	if h <= 0 {
		return
	}
	if m.listSel != m.lastSel || h != m.lastListH {
		m.lastSel, m.lastListH = m.listSel, h
		if m.listSel < m.listScroll {
			m.listScroll = m.listSel
		}
		if m.listSel >= m.listScroll+h {
			m.listScroll = m.listSel - h + 1
		}
	}
	m.listScroll = max(min(m.listScroll, n-h), 0)
}
