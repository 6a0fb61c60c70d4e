package store

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/tap/internal/notes"
)

const (
	saveQueueSize = 64
	flushTimeout  = 5 * time.Second
)

type saveReq struct {
	note  notes.Note
	done  func(error)
	flush chan struct{}
}

// SaveAsync queues an update of n for the background writer. done, if not
// nil, is called from the writer goroutine with the result. When the queue
// is full nothing is written and done gets errQueueFull right away, so the
// queued versions of n are never overtaken.
func (s *Store) SaveAsync(n notes.Note, done func(error)) {
	if s == nil {
		return
	}
	s.qmu.RLock()
	if s.closed {
		s.qmu.RUnlock()
		log.Warn().Str("id", n.ID.String()).Msg("save after close dropped")
		if done != nil {
			done(errClosed)
		}
		return
	}
	select {
	case s.saveCh <- saveReq{note: n, done: done}:
		s.qmu.RUnlock()
		return
	default:
	}
	s.qmu.RUnlock()

	log.Warn().Str("id", n.ID.String()).Msg("save queue full, dropping write")
	if done != nil {
		done(errQueueFull)
	}
}

// saveLoop drains saveCh and writes notes to the DB.
func (s *Store) saveLoop() {
	defer close(s.done)
	for req := range s.saveCh {
		if req.flush != nil {
			close(req.flush)
			continue
		}
		s.writeNote(req)
	}
}

func (s *Store) writeNote(req saveReq) {
	s.mu.Lock()
	err := s.update(req.note)
	s.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Str("id", req.note.ID.String()).Msg("failed to save note")
	}
	if req.done != nil {
		req.done(err)
	}
}

// Flush blocks until all queued saves have been written. Times out after
// five seconds to avoid deadlocking the caller.
func (s *Store) Flush() {
	if s == nil {
		return
	}
	done := make(chan struct{})

	s.qmu.RLock()
	if s.closed {
		s.qmu.RUnlock()
		return
	}
	select {
	case s.saveCh <- saveReq{flush: done}:
		s.qmu.RUnlock()
	case <-time.After(flushTimeout):
		s.qmu.RUnlock()
		log.Warn().Msg("flush timed out waiting to enqueue")
		return
	}
	<-done
}
