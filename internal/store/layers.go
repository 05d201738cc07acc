package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/driftapp/drift-server/internal/domain"
)

// LayerFilter narrows a layer listing. Query is a case-insensitive substring
// match over the layer's text fields; Type is an exact match.
type LayerFilter struct {
	Query string
	Type  domain.LayerType
}

func (f LayerFilter) matches(l *domain.Layer) bool {
	if f.Type != "" && l.Type != f.Type {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.SourceTitle), q) &&
			!strings.Contains(strings.ToLower(l.Text), q) {
			return false
		}
	}
	return true
}

// CreateLayer stores a new layer, stamping both timestamps.
func (s *Store) CreateLayer(ctx context.Context, l *domain.Layer) error {
	now := time.Now()
	l.CreatedAt = now
	l.UpdatedAt = now

	if err := s.Layers.Create(ctx, l.ID, l); err != nil {
		return fmt.Errorf("create layer: %w", err)
	}
	return nil
}

// GetLayer retrieves a layer by ID, scoped to its owner.
func (s *Store) GetLayer(ctx context.Context, id, userID string) (*domain.Layer, error) {
	l, err := s.Layers.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.UserID != userID {
		return nil, ErrNotFound
	}
	return l, nil
}

// UpdateLayer persists a modified layer, refreshing UpdatedAt.
func (s *Store) UpdateLayer(ctx context.Context, l *domain.Layer) error {
	l.Touch()
	if err := s.Layers.Update(ctx, l.ID, l); err != nil {
		return fmt.Errorf("update layer: %w", err)
	}
	return nil
}

// DeleteLayer removes a layer owned by userID.
func (s *Store) DeleteLayer(ctx context.Context, id, userID string) error {
	if _, err := s.GetLayer(ctx, id, userID); err != nil {
		return err
	}
	return s.Layers.Delete(ctx, id)
}

// ListLayers returns the user's layers matching the filter, sorted by
// UpdatedAt descending.
func (s *Store) ListLayers(ctx context.Context, userID string, filter LayerFilter) ([]*domain.Layer, error) {
	layers := make([]*domain.Layer, 0)

	for l, err := range s.Layers.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list layers: %w", err)
		}
		if l.UserID != userID || !filter.matches(l) {
			continue
		}
		layers = append(layers, l)
	}

	sort.Slice(layers, func(i, j int) bool {
		return layers[i].UpdatedAt.After(layers[j].UpdatedAt)
	})

	return layers, nil
}
