package store

import (
	"fmt"
	"io"
)

const dumpPreviewRunes = 30

// Dump writes every stored note to w in a human-readable form, content cut
// to a short preview.
func (s *Store) Dump(w io.Writer) error {
	list, err := s.List()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Database path: %s\n", s.Path())
	fmt.Fprintf(w, "Dumping %d note(s):\n", len(list))
	for i, n := range list {
		fmt.Fprintf(w, "Note %d:\n", i+1)
		fmt.Fprintf(w, "  ID: %s\n", n.ID)
		fmt.Fprintf(w, "  Title: %s\n", n.Title)
		fmt.Fprintf(w, "  Content: %s (truncated)\n", preview(n.Content, dumpPreviewRunes))
		fmt.Fprintf(w, "  Created: %d\n\n", n.CreatedAt)
	}
	return nil
}

func preview(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
