package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleResize applies a window size change and re-derives layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layout = generateLayout(m.width, m.height, m.listW)
	m.title.SetBounds(m.layout.title)
	m.content.SetBounds(m.layout.editor)
	m.help.SetWidth(m.width)
	m.syncList()
}
