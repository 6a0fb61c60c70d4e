package notes

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNew(t *testing.T) {
	before := time.Now().Unix()
	n := New("Groceries")

	if n.ID == uuid.Nil {
		t.Fatal("expected a generated id")
	}
	if n.ID.Version() != 4 {
		t.Errorf("id version = %d, want 4", n.ID.Version())
	}
	if n.Title != "Groceries" || n.Content != "" {
		t.Errorf("got %+v", n)
	}
	if n.CreatedAt < before || n.CreatedAt > time.Now().Unix() {
		t.Errorf("CreatedAt = %d, want around %d", n.CreatedAt, before)
	}
	if !n.Created().Equal(time.Unix(n.CreatedAt, 0)) {
		t.Error("Created does not match CreatedAt")
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[uuid.UUID]bool)
	for range 100 {
		id := New("x").ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
