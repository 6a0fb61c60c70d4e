package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

const (
	statusTimeout = 4 * time.Second
	retryInterval = 5 * time.Second
)

// statusMsg shows text in the status bar until statusTimeout passes.
type statusMsg struct {
	text string
	err  bool
}

// clearStatusMsg clears the status text if nothing newer replaced it.
type clearStatusMsg struct{ seq int }

// retryTickMsg wakes the loop so unsaved notes are retried while idle.
type retryTickMsg struct{}

func retryTick() tea.Cmd {
	return tea.Tick(retryInterval, func(time.Time) tea.Msg { return retryTickMsg{} })
}

// flash sets the status text and schedules its removal.
func (m *Model) flash(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}
