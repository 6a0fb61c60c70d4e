package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/xonecas/tap/internal/notes"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "notes.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateGet(t *testing.T) {
	s := openTestStore(t)

	n := notes.New("Groceries")
	n.Content = "milk\neggs"

	if _, ok, err := s.Get(n.ID); err != nil || ok {
		t.Fatalf("Get before create = %v, %v; want miss", ok, err)
	}
	if err := s.Create(n); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, ok, err := s.Get(n.ID)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got != n {
		t.Errorf("got %+v, want %+v", got, n)
	}
}

func TestCreateDuplicate(t *testing.T) {
	s := openTestStore(t)
	n := notes.New("a")
	if err := s.Create(n); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(n); err == nil {
		t.Fatal("expected duplicate insert to fail")
	}
}

func TestUpdate(t *testing.T) {
	s := openTestStore(t)
	n := notes.New("draft")
	if err := s.Create(n); err != nil {
		t.Fatal(err)
	}

	n.Title = "final"
	n.Content = "done"
	if err := s.Update(n); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _, _ := s.Get(n.ID)
	if got.Title != "final" || got.Content != "done" {
		t.Errorf("got %+v", got)
	}
}

func TestUpdateMissing(t *testing.T) {
	s := openTestStore(t)
	err := s.Update(notes.New("ghost"))
	if !errors.Is(err, notes.ErrNotFound) {
		t.Fatalf("Update missing = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	n := notes.New("bye")
	s.Create(n)

	if err := s.Delete(n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(n.ID); ok {
		t.Fatal("note still present")
	}
	if err := s.Delete(n.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	for i, title := range []string{"old", "new", "mid"} {
		n := notes.New(title)
		n.CreatedAt = []int64{100, 300, 200}[i]
		if err := s.Create(n); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, n := range list {
		titles = append(titles, n.Title)
	}
	if got := strings.Join(titles, ","); got != "new,mid,old" {
		t.Errorf("order = %s", got)
	}
}

func TestListToleratesLooseCreatedAt(t *testing.T) {
	s := openTestStore(t)
	id1, id2 := uuid.New(), uuid.New()
	s.db.Exec("INSERT INTO notes VALUES (?, 'text', '', '1700000000')", id1.String())
	s.db.Exec("INSERT INTO notes VALUES (?, 'real', '', 1600000000.7)", id2.String())
	s.db.Exec("INSERT INTO notes VALUES ('not-a-uuid', 'bad', '', 1)")

	list, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d notes, want 2 (bad id skipped)", len(list))
	}
	got := map[string]int64{}
	for _, n := range list {
		got[n.Title] = n.CreatedAt
	}
	if got["text"] != 1700000000 || got["real"] != 1600000000 {
		t.Errorf("created_at = %v", got)
	}
}

func TestMigrateCreatedAt(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	// Recreate the table the way an older build declared it.
	s.db.Exec("DROP TABLE notes")
	s.db.Exec("CREATE TABLE notes (id TEXT PRIMARY KEY, title TEXT NOT NULL, content TEXT NOT NULL, created_at TEXT NOT NULL)")
	id := uuid.New()
	s.db.Exec("INSERT INTO notes VALUES (?, 'legacy', 'body', '1234')", id.String())
	s.Close()

	s, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	if typ := columnType(s.db, "notes", "created_at"); typ != "INTEGER" {
		t.Fatalf("created_at type = %q after migration", typ)
	}
	n, ok, err := s.Get(id)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if n.CreatedAt != 1234 || n.Content != "body" {
		t.Errorf("got %+v", n)
	}
}

func TestOpenWithFallback(t *testing.T) {
	// A path under a regular file cannot be created.
	blocker := filepath.Join(t.TempDir(), "file")
	if err := writeFile(blocker); err != nil {
		t.Fatal(err)
	}

	s, err := OpenWithFallback(filepath.Join(blocker, "notes.db"))
	if err != nil {
		t.Fatalf("OpenWithFallback: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if !s.InMemory() {
		t.Fatal("expected in-memory fallback")
	}

	n := notes.New("scratch")
	if err := s.Create(n); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(n.ID); !ok {
		t.Fatal("in-memory store lost the note")
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	if err := s.Create(notes.New("x")); err != nil {
		t.Error(err)
	}
	if list, err := s.List(); list != nil || err != nil {
		t.Error("nil List should be empty")
	}
	s.SaveAsync(notes.New("x"), nil)
	s.Flush()
	if err := s.Close(); err != nil {
		t.Error(err)
	}
}

func TestSaveAsyncFlush(t *testing.T) {
	s := openTestStore(t)
	n := notes.New("async")
	s.Create(n)

	var mu sync.Mutex
	var results []error
	for i := range 10 {
		n.Content = strings.Repeat("x", i+1)
		s.SaveAsync(n, func(err error) {
			mu.Lock()
			results = append(results, err)
			mu.Unlock()
		})
	}
	s.Flush()

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 10 {
		t.Fatalf("got %d callbacks, want 10", len(results))
	}
	for _, err := range results {
		if err != nil {
			t.Errorf("save failed: %v", err)
		}
	}
	got, _, _ := s.Get(n.ID)
	if got.Content != strings.Repeat("x", 10) {
		t.Errorf("content = %q, want last write", got.Content)
	}
}

func TestSaveAsyncFullQueueKeepsOrder(t *testing.T) {
	s := openTestStore(t)
	n := notes.New("busy")
	if err := s.Create(n); err != nil {
		t.Fatal(err)
	}

	// Stall the writer so the queue fills up.
	s.mu.Lock()
	var (
		queued   string
		rejected error
	)
	for i := 1; rejected == nil && i <= 4*saveQueueSize; i++ {
		v := n
		v.Content = fmt.Sprintf("v%d", i)
		s.SaveAsync(v, func(err error) {
			// Only the overflow is reported synchronously; the writer
			// goroutine never sees an error here.
			if err != nil {
				rejected = err
			}
		})
		if rejected == nil {
			queued = v.Content
		}
	}
	s.mu.Unlock()
	s.Flush()

	if !errors.Is(rejected, errQueueFull) {
		t.Fatalf("overflow err = %v, want errQueueFull", rejected)
	}
	got, _, _ := s.Get(n.ID)
	if got.Content != queued {
		t.Errorf("persisted %q, want last queued %q", got.Content, queued)
	}
}

func TestSaveAsyncReportsMissing(t *testing.T) {
	s := openTestStore(t)
	errCh := make(chan error, 1)
	s.SaveAsync(notes.New("never created"), func(err error) { errCh <- err })
	s.Flush()
	if err := <-errCh; !errors.Is(err, notes.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCloseDrainsQueue(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "notes.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	n := notes.New("pending")
	s.Create(n)
	n.Content = "written on close"
	s.SaveAsync(n, nil)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Saves after close report an error instead of panicking.
	errCh := make(chan error, 1)
	s.SaveAsync(n, func(err error) { errCh <- err })
	if err := <-errCh; err == nil {
		t.Error("expected error for save after close")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	s, err = Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, _, _ := s.Get(n.ID)
	if got.Content != "written on close" {
		t.Errorf("content = %q", got.Content)
	}
}

func TestDump(t *testing.T) {
	s := openTestStore(t)
	n := notes.New("Long one")
	n.Content = strings.Repeat("é", 40)
	n.CreatedAt = 42
	s.Create(n)

	var buf bytes.Buffer
	if err := s.Dump(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Note 1:",
		"  ID: " + n.ID.String(),
		"  Title: Long one",
		"  Content: " + strings.Repeat("é", 30) + " (truncated)",
		"  Created: 42",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 30, "short"},
		{"abcdef", 3, "abc"},
		{"猫猫猫猫", 2, "猫猫"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := preview(tt.in, tt.n); got != tt.want {
			t.Errorf("preview(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func writeFile(path string) error {
	return os.WriteFile(path, []byte("x"), 0o644)
}
