package document

import "github.com/google/uuid"

// Command is a request queued by the UI and applied by Manager.Drain.
type Command interface {
	command()
}

// CreateNote adds an empty "Untitled N" note and makes it active.
type CreateNote struct{}

// DeleteNote removes a note.
type DeleteNote struct {
	ID uuid.UUID
}

// SelectNote makes a note active and loads it into the editors.
type SelectNote struct {
	ID uuid.UUID
}

// RenameNote commits a title. Blank titles revert; see Manager.Drain.
type RenameNote struct {
	ID    uuid.UUID
	Title string
}

func (CreateNote) command() {}
func (DeleteNote) command() {}
func (SelectNote) command() {}
func (RenameNote) command() {}
