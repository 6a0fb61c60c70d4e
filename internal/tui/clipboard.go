package tui

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Clipboard: native first, OSC 52 for SSH/tmux.
// ---------------------------------------------------------------------------

var errNoClipboard = errors.New("no native clipboard")

// termClipboard implements textedit.Clipboard. Writes go to the native
// clipboard and are echoed through OSC 52. A read with no native clipboard
// falls back to the last copy, else asks the terminal; the answer arrives
// later as a tea.ClipboardMsg.
type termClipboard struct {
	native bool
	last   string

	pendingWrite *string
	pendingRead  bool
}

func newTermClipboard() *termClipboard {
	return &termClipboard{native: !clipboard.Unsupported}
}

// ReadText implements textedit.Clipboard.
func (c *termClipboard) ReadText() (string, error) {
	if c.native {
		s, err := clipboard.ReadAll()
		if err == nil {
			return s, nil
		}
		log.Debug().Err(err).Msg("native clipboard read failed")
	}
	if c.last != "" {
		return c.last, nil
	}
	c.pendingRead = true
	return "", errNoClipboard
}

// WriteText implements textedit.Clipboard.
func (c *termClipboard) WriteText(s string) error {
	c.last = s
	c.pendingWrite = &s
	if c.native {
		if err := clipboard.WriteAll(s); err != nil {
			log.Debug().Err(err).Msg("native clipboard write failed")
		}
	}
	return nil
}

// cmds returns the terminal commands owed since the last call.
func (c *termClipboard) cmds() []tea.Cmd {
	var out []tea.Cmd
	if c.pendingWrite != nil {
		out = append(out, tea.SetClipboard(*c.pendingWrite))
		c.pendingWrite = nil
	}
	if c.pendingRead {
		out = append(out, tea.ReadClipboard)
		c.pendingRead = false
	}
	return out
}
