package modal

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ActionConfirm signals the user answered yes.
type ActionConfirm struct{ ID string }

// Confirm asks a yes/no question about one item.
type Confirm struct {
	ID       string
	Question string
	colors   Colors
}

// NewConfirm returns a dialog asking question about the item with id.
func NewConfirm(id, question string, colors Colors) Confirm {
	return Confirm{ID: id, Question: question, colors: colors}
}

// HandleMsg answers y/enter with ActionConfirm and n/esc with ActionClose.
// Anything else is swallowed.
func (c *Confirm) HandleMsg(msg tea.Msg) Action {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch strings.ToLower(key.Keystroke()) {
	case "y", "enter":
		return ActionConfirm{ID: c.ID}
	case "n", "esc", "q":
		return ActionClose{}
	}
	return nil
}

// View renders the dialog centred in an appWidth x appHeight screen.
func (c *Confirm) View(appWidth, appHeight int) string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(c.colors.Dim)).Background(lipgloss.Color(c.colors.Bg))
	content := c.Question + "\n\n" + dim.Render("y: yes   n: no")
	return c.colors.center(appWidth, appHeight, c.colors.frame().Padding(1, 2).Render(content))
}
