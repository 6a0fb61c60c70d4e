// Package document owns the in-memory note list, the active note, and the
// routing of editor changes to storage.
//
// The in-memory list is authoritative. Storage failures are logged and the
// affected note is retried on the next Drain or Flush; an edit is never
// blocked or dropped because a write failed.
package document

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/tap/internal/constants"
	"github.com/xonecas/tap/internal/notes"
	"github.com/xonecas/tap/internal/textedit"
)

// asyncSaver is implemented by repositories that can queue writes.
type asyncSaver interface {
	SaveAsync(n notes.Note, done func(error))
}

// flusher is implemented by repositories with queued writes.
type flusher interface {
	Flush()
}

// Manager binds a content editor and a title editor to a note repository.
// Apart from the save callbacks, all methods must be called from the
// goroutine that drives the editors.
type Manager struct {
	repo    notes.Repository
	content *textedit.Editor
	title   *textedit.Editor

	notes  []notes.Note // newest first
	active uuid.UUID
	queue  []Command

	// mu guards dirty and saves, which save callbacks read and update from
	// the writer goroutine.
	mu    sync.Mutex
	dirty map[uuid.UUID]bool
	saves map[uuid.UUID]uint64 // latest write issued per note
}

// New returns a manager and subscribes it to both editors. Call Bootstrap
// before use.
func New(repo notes.Repository, content, title *textedit.Editor) *Manager {
	m := &Manager{
		repo:    repo,
		content: content,
		title:   title,
		dirty:   make(map[uuid.UUID]bool),
		saves:   make(map[uuid.UUID]uint64),
	}
	content.Subscribe(m)
	title.Subscribe(m)
	return m
}

// Bootstrap loads the note list and activates preferred if it exists, else
// the newest note. An empty or unreadable store gets the welcome note.
func (m *Manager) Bootstrap(preferred uuid.UUID) {
	list, err := m.repo.List()
	if err != nil {
		log.Error().Err(err).Msg("failed to load notes")
	}
	m.notes = list

	if len(m.notes) == 0 {
		welcome := notes.New(constants.WelcomeTitle)
		welcome.Content = constants.WelcomeContent
		m.notes = []notes.Note{welcome}
		if err != nil {
			// The store is unreadable; keep the note in memory and retry later.
			m.markDirty(welcome.ID, true)
		} else if err := m.repo.Create(welcome); err != nil {
			log.Warn().Err(err).Msg("failed to create welcome note")
			m.markDirty(welcome.ID, true)
		}
	}

	id := m.notes[0].ID
	if preferred != uuid.Nil && m.index(preferred) >= 0 {
		id = preferred
	}
	m.activate(id)
	log.Debug().Int("notes", len(m.notes)).Str("active", id.String()).Msg("notes loaded")
}

// ---------------------------------------------------------------------------
// Queries
// ---------------------------------------------------------------------------

// Notes returns a copy of the note list, newest first. The active note
// carries the title being edited.
func (m *Manager) Notes() []notes.Note {
	out := make([]notes.Note, len(m.notes))
	copy(out, m.notes)
	if i := m.index(m.active); i >= 0 {
		out[i].Title = m.title.Text()
	}
	return out
}

// Len returns the number of notes.
func (m *Manager) Len() int { return len(m.notes) }

// ActiveID returns the active note id, or uuid.Nil.
func (m *Manager) ActiveID() uuid.UUID { return m.active }

// Active returns the active note as last committed.
func (m *Manager) Active() (notes.Note, bool) {
	if i := m.index(m.active); i >= 0 {
		return m.notes[i], true
	}
	return notes.Note{}, false
}

// Index returns the list position of id, or -1.
func (m *Manager) Index(id uuid.UUID) int { return m.index(id) }

// Dirty reports whether id has changes that failed to persist.
func (m *Manager) Dirty(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirty[id]
}

// DirtyCount returns the number of notes awaiting a retry.
func (m *Manager) DirtyCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.dirty)
}

// Search returns the notes whose title or content contains query, ignoring
// case. An empty query matches everything.
func (m *Manager) Search(query string) []notes.Note {
	all := m.Notes()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	var out []notes.Note
	for _, n := range all {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// ---------------------------------------------------------------------------
// Change routing
// ---------------------------------------------------------------------------

// ContentChanged implements textedit.Listener.
func (m *Manager) ContentChanged(ev textedit.ChangeEvent) {
	id, err := uuid.Parse(ev.DocID)
	if err != nil {
		return
	}
	i := m.index(id)
	if i < 0 {
		log.Debug().Str("id", ev.DocID).Msg("change for unknown note")
		return
	}
	// Titles are drafts until committed through RenameNote.
	if ev.Field != textedit.FieldContent {
		return
	}
	m.notes[i].Content = ev.Text
	m.persist(m.notes[i])
}

// CommitTitle queues a rename of the active note to the title editor text.
func (m *Manager) CommitTitle() {
	if m.active == uuid.Nil {
		return
	}
	m.Enqueue(RenameNote{ID: m.active, Title: m.title.Text()})
}

// ---------------------------------------------------------------------------
// Command queue
// ---------------------------------------------------------------------------

// Enqueue schedules cmd for the next Drain.
func (m *Manager) Enqueue(cmd Command) {
	m.queue = append(m.queue, cmd)
}

// Pending returns the number of queued commands.
func (m *Manager) Pending() int { return len(m.queue) }

// Drain applies every queued command in order, retries dirty notes, and
// returns the commands it applied.
func (m *Manager) Drain() []Command {
	cmds := m.queue
	m.queue = nil
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case CreateNote:
			m.create()
		case DeleteNote:
			m.remove(c.ID)
		case SelectNote:
			m.selectNote(c.ID)
		case RenameNote:
			m.rename(c.ID, c.Title)
		}
	}
	m.retryDirty()
	return cmds
}

// Flush waits for queued writes and then retries dirty notes.
func (m *Manager) Flush() {
	m.flushRepo()
	m.retryDirty()
}

func (m *Manager) flushRepo() {
	if f, ok := m.repo.(flusher); ok {
		f.Flush()
	}
}

func (m *Manager) create() {
	n := notes.New(fmt.Sprintf("%s %d", constants.UntitledPrefix, len(m.notes)+1))
	if err := m.repo.Create(n); err != nil {
		log.Warn().Err(err).Str("id", n.ID.String()).Msg("failed to create note")
		m.markDirty(n.ID, true)
	}
	m.notes = append([]notes.Note{n}, m.notes...)
	m.activate(n.ID)
}

func (m *Manager) remove(id uuid.UUID) {
	i := m.index(id)
	if i < 0 {
		return
	}
	if err := m.repo.Delete(id); err != nil {
		log.Warn().Err(err).Str("id", id.String()).Msg("failed to delete note")
		return
	}
	m.notes = append(m.notes[:i], m.notes[i+1:]...)
	m.markDirty(id, false)

	if id != m.active {
		return
	}
	if len(m.notes) > 0 {
		m.activate(m.notes[0].ID)
		return
	}
	m.active = uuid.Nil
	m.content.Clear()
	m.title.Clear()
}

func (m *Manager) selectNote(id uuid.UUID) {
	if m.index(id) < 0 || id == m.active {
		return
	}
	m.commitDraft()
	m.activate(id)
}

// commitDraft applies the title editor's text to the active note before
// switching away from it.
func (m *Manager) commitDraft() {
	if m.active == uuid.Nil {
		return
	}
	if i := m.index(m.active); i >= 0 && m.title.Text() != m.notes[i].Title {
		m.rename(m.active, m.title.Text())
	}
}

// rename commits title. A blank title reverts to the committed one, or to
// "Untitled Note" when that is blank too.
func (m *Manager) rename(id uuid.UUID, title string) {
	i := m.index(id)
	if i < 0 {
		return
	}
	n := &m.notes[i]

	if strings.TrimSpace(title) == "" {
		if strings.TrimSpace(n.Title) == "" {
			n.Title = constants.UntitledNote
			m.persist(*n)
		}
		if id == m.active {
			m.title.Load(id.String(), n.Title)
		}
		return
	}

	if title == n.Title {
		return
	}
	n.Title = title
	m.persist(*n)
	if id == m.active && m.title.Text() != title {
		m.title.Load(id.String(), title)
	}
}

func (m *Manager) activate(id uuid.UUID) {
	i := m.index(id)
	if i < 0 {
		return
	}
	m.active = id
	n := m.notes[i]
	m.content.Load(id.String(), n.Content)
	m.title.Load(id.String(), n.Title)
}

func (m *Manager) index(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	for i := range m.notes {
		if m.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// ---------------------------------------------------------------------------
// Persistence
// ---------------------------------------------------------------------------

func (m *Manager) persist(n notes.Note) {
	done := m.saved(n.ID, m.nextSave(n.ID))
	if s, ok := m.repo.(asyncSaver); ok {
		s.SaveAsync(n, done)
		return
	}
	done(m.repo.Update(n))
}

func (m *Manager) nextSave(id uuid.UUID) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[id]++
	return m.saves[id]
}

// saved returns the completion callback for write seq of id. A failure
// marks the note dirty; only the latest write may clear it, since an older
// version landing does not save the current one.
func (m *Manager) saved(id uuid.UUID, seq uint64) func(error) {
	return func(err error) {
		if err != nil {
			log.Warn().Err(err).Str("id", id.String()).Msg("note not saved, will retry")
			m.markDirty(id, true)
			return
		}
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.saves[id] == seq {
			delete(m.dirty, id)
		}
	}
}

func (m *Manager) markDirty(id uuid.UUID, dirty bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dirty {
		m.dirty[id] = true
	} else {
		delete(m.dirty, id)
	}
}

// retryDirty writes every dirty note synchronously. A note the store has
// never seen is created. Queued writes are flushed first so none of them
// lands after the retry.
func (m *Manager) retryDirty() {
	m.mu.Lock()
	ids := make([]uuid.UUID, 0, len(m.dirty))
	for id := range m.dirty {
		ids = append(ids, id)
	}
	m.mu.Unlock()
	if len(ids) == 0 {
		return
	}
	m.flushRepo()

	for _, id := range ids {
		i := m.index(id)
		if i < 0 {
			m.markDirty(id, false)
			continue
		}
		n := m.notes[i]
		err := m.repo.Update(n)
		if errors.Is(err, notes.ErrNotFound) {
			err = m.repo.Create(n)
		}
		if err != nil {
			log.Debug().Err(err).Str("id", id.String()).Msg("retry failed")
			continue
		}
		m.markDirty(id, false)
	}
}
