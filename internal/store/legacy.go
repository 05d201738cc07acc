package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/driftapp/drift-server/internal/domain"
)

// maxLegacyNotes caps the legacy fallback result set. The legacy collection
// is unbounded; the fallback view only ever shows the newest rows.
const maxLegacyNotes = 50

// CreateLegacyNote stores a legacy note. Only the seed tool writes these;
// the API server treats the collection as read-only.
func (s *Store) CreateLegacyNote(ctx context.Context, n *domain.LegacyNote) error {
	if err := s.LegacyNotes.Create(ctx, n.ID, n); err != nil {
		return fmt.Errorf("create legacy note: %w", err)
	}
	return nil
}

// ListLegacyNotes returns the user's legacy notes sorted by the legacy
// timestamp descending, capped at maxLegacyNotes rows.
func (s *Store) ListLegacyNotes(ctx context.Context, userID string) ([]*domain.LegacyNote, error) {
	notes := make([]*domain.LegacyNote, 0)

	for n, err := range s.LegacyNotes.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list legacy notes: %w", err)
		}
		if n.UserID != userID {
			continue
		}
		notes = append(notes, n)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Timestamp.After(notes[j].Timestamp)
	})

	if len(notes) > maxLegacyNotes {
		notes = notes[:maxLegacyNotes]
	}

	return notes, nil
}
