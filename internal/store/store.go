// Package store persists notes in a SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/xonecas/tap/internal/notes"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at);
`

// Store is a SQLite-backed notes.Repository. A single *Store is shared by
// every component that persists notes; all methods are safe for concurrent
// use and safe to call on a nil receiver.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string

	// qmu guards saveCh against sends after Close.
	qmu    sync.RWMutex
	closed bool
	saveCh chan saveReq
	done   chan struct{}
}

var _ notes.Repository = (*Store)(nil)

var (
	errClosed    = errors.New("store closed")
	errQueueFull = errors.New("save queue full")
)

// Open creates or opens the notes database at path.
func Open(path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open notes db: %w", err)
	}
	// One connection: an in-memory database exists per connection, and
	// writes are serialized by mu anyway.
	db.SetMaxOpenConns(1)

	// Durability over speed: every committed edit must survive a crash.
	for _, pragma := range []string{
		"PRAGMA synchronous = FULL",
		"PRAGMA journal_mode = DELETE",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if err := migrateCreatedAt(db); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("notes migration failed")
	}

	s := &Store{
		db:     db,
		path:   path,
		saveCh: make(chan saveReq, saveQueueSize),
		done:   make(chan struct{}),
	}
	go s.saveLoop()
	return s, nil
}

// OpenWithFallback opens path and, if that fails, an in-memory database so
// the app stays usable. Notes written to the fallback are lost on exit.
func OpenWithFallback(path string) (*Store, error) {
	s, err := Open(path)
	if err == nil {
		return s, nil
	}
	log.Error().Err(err).Str("path", path).Msg("falling back to in-memory notes db")
	mem, memErr := Open(MemoryPath)
	if memErr != nil {
		return nil, errors.Join(err, memErr)
	}
	return mem, nil
}

// Path returns the database path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// InMemory reports whether the store is not backed by a file.
func (s *Store) InMemory() bool { return s == nil || s.path == MemoryPath }

// Close drains queued saves and closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	s.qmu.Lock()
	if s.closed {
		s.qmu.Unlock()
		return nil
	}
	s.closed = true
	close(s.saveCh)
	s.qmu.Unlock()

	<-s.done
	return s.db.Close()
}

// ---------------------------------------------------------------------------
// Repository
// ---------------------------------------------------------------------------

// Create inserts a new note.
func (s *Store) Create(n notes.Note) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO notes (id, title, content, created_at) VALUES (?, ?, ?, ?)",
			n.ID.String(), n.Title, n.Content, n.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert note %s: %w", n.ID, err)
		}
		return nil
	})
}

// Update overwrites a stored note. A missing row yields notes.ErrNotFound.
func (s *Store) Update(n notes.Note) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(n)
}

func (s *Store) update(n notes.Note) error {
	return s.inTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"UPDATE notes SET title = ?, content = ?, created_at = ? WHERE id = ?",
			n.Title, n.Content, n.CreatedAt, n.ID.String(),
		)
		if err != nil {
			return fmt.Errorf("update note %s: %w", n.ID, err)
		}
		if rows, _ := res.RowsAffected(); rows == 0 {
			log.Warn().Str("id", n.ID.String()).Msg("no rows updated")
			return fmt.Errorf("update note %s: %w", n.ID, notes.ErrNotFound)
		}
		return nil
	})
}

// Delete removes a note. Deleting a missing note is not an error.
func (s *Store) Delete(id uuid.UUID) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id.String()); err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	return nil
}

// Get returns the note with id, or false if there is none.
func (s *Store) Get(id uuid.UUID) (notes.Note, bool, error) {
	if s == nil {
		return notes.Note{}, false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(
		"SELECT id, title, content, created_at FROM notes WHERE id = ?", id.String(),
	)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return notes.Note{}, false, nil
	}
	if err != nil {
		return notes.Note{}, false, fmt.Errorf("get note %s: %w", id, err)
	}
	return n, true, nil
}

// List returns every note, newest first. Rows with unparseable ids are
// skipped with a warning.
func (s *Store) List() ([]notes.Note, error) {
	if s == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT id, title, content, created_at FROM notes ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var out []notes.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			log.Warn().Err(err).Msg("skipping unreadable note row")
			continue
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(sc scanner) (notes.Note, error) {
	var (
		id, title, content string
		created            any
	)
	if err := sc.Scan(&id, &title, &content, &created); err != nil {
		return notes.Note{}, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return notes.Note{}, fmt.Errorf("note id %q: %w", id, err)
	}
	return notes.Note{
		ID:        uid,
		Title:     title,
		Content:   content,
		CreatedAt: unixSeconds(created),
	}, nil
}

// unixSeconds reads a created_at value written by any earlier schema:
// integer, real or text. Anything else reads as 0.
func unixSeconds(v any) int64 {
	switch v := v.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case []byte:
		return parseSeconds(string(v))
	case string:
		return parseSeconds(v)
	default:
		return 0
	}
}

func parseSeconds(s string) int64 {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

// inTx runs fn in a transaction, committing on success. Caller holds mu.
func (s *Store) inTx(fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback() //nolint:errcheck // the fn error is what matters
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// columnType returns the declared type of table.column, or "" if absent.
func columnType(db *sql.DB, table, column string) string {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table)) //nolint:gosec // table name is hardcoded by caller
	if err != nil {
		return ""
	}
	defer rows.Close()
	for rows.Next() {
		var cid int
		var name, typ string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			continue
		}
		if name == column {
			return typ
		}
	}
	return ""
}

// migrateCreatedAt rebuilds the notes table when an older schema stored
// created_at as something other than INTEGER.
func migrateCreatedAt(db *sql.DB) error {
	typ := columnType(db, "notes", "created_at")
	if typ == "" || typ == "INTEGER" {
		return nil
	}
	log.Info().Str("type", typ).Msg("migrating notes.created_at to INTEGER")

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	for _, stmt := range []string{
		`CREATE TABLE notes_new (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			content    TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		"INSERT INTO notes_new SELECT id, title, content, CAST(created_at AS INTEGER) FROM notes",
		"DROP TABLE notes",
		"ALTER TABLE notes_new RENAME TO notes",
		"CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at)",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			tx.Rollback() //nolint:errcheck
			return fmt.Errorf("migrate created_at: %w", err)
		}
	}
	return tx.Commit()
}
