package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tap/internal/document"
	"github.com/xonecas/tap/internal/notes"
	"github.com/xonecas/tap/internal/tui/modal"
)

const previewRunes = 40

func (m *Model) openPicker() {
	mgr := m.mgr
	search := func(query string) []modal.Entry {
		found := mgr.Search(query)
		entries := make([]modal.Entry, len(found))
		for i, n := range found {
			entries[i] = modal.Entry{ID: n.ID.String(), Title: displayTitle(n.Title), Preview: preview(n.Content, previewRunes)}
		}
		return entries
	}
	p := modal.NewPicker(search, "Note: ", modalColors(m.palette))
	p.WidthPct = 70
	p.Highlight(mgr.ActiveID().String())
	m.picker = &p
}

func (m *Model) updatePicker(msg tea.Msg) tea.Cmd {
	action, cmd := m.picker.HandleMsg(msg)
	switch a := action.(type) {
	case modal.ActionClose:
		m.picker = nil
	case modal.ActionSelect:
		m.picker = nil
		id, err := uuid.Parse(a.Entry.ID)
		if err != nil {
			log.Warn().Err(err).Str("id", a.Entry.ID).Msg("picker returned a bad id")
			return nil
		}
		m.mgr.Enqueue(document.SelectNote{ID: id})
		m.setFocus(focusEditor)
	}
	return cmd
}

func (m *Model) openConfirm(n notes.Note) {
	q := fmt.Sprintf("Delete %q?", displayTitle(n.Title))
	c := modal.NewConfirm(n.ID.String(), q, modalColors(m.palette))
	m.confirm = &c
}

func (m *Model) updateConfirm(msg tea.Msg) tea.Cmd {
	switch a := m.confirm.HandleMsg(msg).(type) {
	case modal.ActionClose:
		m.confirm = nil
	case modal.ActionConfirm:
		m.confirm = nil
		id, err := uuid.Parse(a.ID)
		if err != nil {
			return nil
		}
		m.mgr.Enqueue(document.DeleteNote{ID: id})
	}
	return nil
}

// displayTitle stands in for a blank title in lists.
func displayTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}

// preview returns the first n runes of s on one line.
func preview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
