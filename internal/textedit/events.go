package textedit

// Field identifies which text of a document an editor is bound to.
type Field int

const (
	FieldContent Field = iota
	FieldTitle
)

func (f Field) String() string {
	switch f {
	case FieldTitle:
		return "title"
	default:
		return "content"
	}
}

// ChangeEvent is emitted after every mutation of an editor's text.
type ChangeEvent struct {
	DocID string
	Field Field
	Text  string
}

// Listener receives change events. Calls happen synchronously on the
// goroutine that drives the editor.
type Listener interface {
	ContentChanged(ChangeEvent)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ChangeEvent)

// ContentChanged calls f(ev).
func (f ListenerFunc) ContentChanged(ev ChangeEvent) { f(ev) }

// Clipboard is the system clipboard as seen by the editor.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(string) error
}
