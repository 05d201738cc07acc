package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/driftapp/drift-server/internal/domain"
)

// DriftFilter narrows a drift listing. Query is a case-insensitive substring
// match over the drift's text fields; Status is an exact match.
type DriftFilter struct {
	Query  string
	Status domain.DriftStatus
}

// Empty reports whether the filter matches everything. The legacy fallback
// is only consulted for the unfiltered case.
func (f DriftFilter) Empty() bool {
	return f.Query == "" && f.Status == ""
}

func (f DriftFilter) matches(d *domain.Drift) bool {
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(d.Title), q) &&
			!strings.Contains(strings.ToLower(d.SourceTitle), q) &&
			!strings.Contains(strings.ToLower(d.Excerpt), q) &&
			!strings.Contains(strings.ToLower(d.Content), q) {
			return false
		}
	}
	return true
}

// CreateDrift stores a new drift, stamping both timestamps.
func (s *Store) CreateDrift(ctx context.Context, d *domain.Drift) error {
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	if err := s.Drifts.Create(ctx, d.ID, d); err != nil {
		return fmt.Errorf("create drift: %w", err)
	}
	return nil
}

// GetDrift retrieves a drift by ID, scoped to its owner. A drift owned by a
// different user is reported as not found rather than forbidden, so IDs do
// not leak across users.
func (s *Store) GetDrift(ctx context.Context, id, userID string) (*domain.Drift, error) {
	d, err := s.Drifts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrNotFound
	}
	return d, nil
}

// UpdateDrift persists a modified drift, refreshing UpdatedAt.
func (s *Store) UpdateDrift(ctx context.Context, d *domain.Drift) error {
	d.Touch()
	if err := s.Drifts.Update(ctx, d.ID, d); err != nil {
		return fmt.Errorf("update drift: %w", err)
	}
	return nil
}

// DeleteDrift removes a drift owned by userID. Hard delete, no tombstone.
func (s *Store) DeleteDrift(ctx context.Context, id, userID string) error {
	if _, err := s.GetDrift(ctx, id, userID); err != nil {
		return err
	}
	return s.Drifts.Delete(ctx, id)
}

// ListDrifts returns the user's drifts matching the filter, sorted by
// UpdatedAt descending.
func (s *Store) ListDrifts(ctx context.Context, userID string, filter DriftFilter) ([]*domain.Drift, error) {
	drifts := make([]*domain.Drift, 0)

	for d, err := range s.Drifts.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list drifts: %w", err)
		}
		if d.UserID != userID || !filter.matches(d) {
			continue
		}
		drifts = append(drifts, d)
	}

	sort.Slice(drifts, func(i, j int) bool {
		return drifts[i].UpdatedAt.After(drifts[j].UpdatedAt)
	})

	return drifts, nil
}
