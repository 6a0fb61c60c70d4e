// Package notes defines the note model and the storage collaborator the
// document layer persists through.
package notes

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a note id has no stored row.
var ErrNotFound = errors.New("note not found")

// Note is one stored note. CreatedAt is unix seconds.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	CreatedAt int64
}

// New returns an empty note with a fresh id, created now.
func New(title string) Note {
	return Note{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now().Unix(),
	}
}

// Created returns CreatedAt as a time.
func (n Note) Created() time.Time { return time.Unix(n.CreatedAt, 0) }

// Repository persists notes. Implementations must be safe for use from
// multiple goroutines.
type Repository interface {
	Create(Note) error
	Get(id uuid.UUID) (Note, bool, error)
	Update(Note) error
	Delete(id uuid.UUID) error
	List() ([]Note, error)
}
