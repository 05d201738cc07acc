// Package service implements the application operations on top of the store,
// including the fallback chains consulted when the primary source comes back
// empty.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/htmlutil"
	"github.com/driftapp/drift-server/internal/id"
	"github.com/driftapp/drift-server/internal/resolve"
	"github.com/driftapp/drift-server/internal/store"
)

// LegacySource is the read-only pre-migration notes collection consulted when
// a user has no drifts. *store.Store satisfies it; tests substitute stubs to
// exercise the unavailable path.
type LegacySource interface {
	ListLegacyNotes(ctx context.Context, userID string) ([]*domain.LegacyNote, error)
}

// DriftService manages drifts and their legacy fallback.
type DriftService struct {
	store  *store.Store
	legacy LegacySource
	logger *slog.Logger
}

// NewDriftService creates a drift service. legacy may be the store itself.
func NewDriftService(st *store.Store, legacy LegacySource, logger *slog.Logger) *DriftService {
	return &DriftService{
		store:  st,
		legacy: legacy,
		logger: logger,
	}
}

// Create stores a new drift for userID from the supplied fields.
// Status defaults to draft when not supplied.
func (s *DriftService) Create(ctx context.Context, userID string, patch domain.DriftPatch) (*domain.Drift, error) {
	driftID, err := id.Generate("drift")
	if err != nil {
		return nil, fmt.Errorf("generate drift ID: %w", err)
	}

	drift := &domain.Drift{
		ID:     driftID,
		UserID: userID,
		Status: domain.DriftStatusDraft,
	}
	patch.Apply(drift)

	if err := s.store.CreateDrift(ctx, drift); err != nil {
		return nil, err
	}

	s.logger.Info("drift created",
		"drift_id", drift.ID,
		"user_id", userID,
	)

	return drift, nil
}

// Get retrieves a drift owned by userID.
func (s *DriftService) Get(ctx context.Context, userID, driftID string) (*domain.Drift, error) {
	return s.store.GetDrift(ctx, driftID, userID)
}

// Update applies a partial update to a drift owned by userID.
func (s *DriftService) Update(ctx context.Context, userID, driftID string, patch domain.DriftPatch) (*domain.Drift, error) {
	drift, err := s.store.GetDrift(ctx, driftID, userID)
	if err != nil {
		return nil, err
	}

	patch.Apply(drift)

	if err := s.store.UpdateDrift(ctx, drift); err != nil {
		return nil, err
	}
	return drift, nil
}

// Delete removes a drift owned by userID.
func (s *DriftService) Delete(ctx context.Context, userID, driftID string) error {
	return s.store.DeleteDrift(ctx, driftID, userID)
}

// List returns the user's drifts matching the filter, newest first. When the
// primary result is exactly empty and no filter is active, the legacy notes
// collection is consulted and its rows reshaped into drifts. A nonempty
// primary result is returned as-is; sources are never blended.
func (s *DriftService) List(ctx context.Context, userID string, filter store.DriftFilter) ([]*domain.Drift, error) {
	drifts, err := s.store.ListDrifts(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(drifts) > 0 || !filter.Empty() {
		return drifts, nil
	}

	res := s.legacyDrifts(ctx, userID)
	switch res.Status {
	case resolve.Found:
		return res.Value, nil
	case resolve.Unavailable:
		// Optional source: degrade to the empty primary result.
		s.logger.Warn("legacy notes unavailable, serving empty list",
			"user_id", userID,
			"error", res.Err,
		)
	}
	return drifts, nil
}

// legacyDrifts consults the legacy collection and reshapes its rows.
func (s *DriftService) legacyDrifts(ctx context.Context, userID string) resolve.Result[[]*domain.Drift] {
	notes, err := s.legacy.ListLegacyNotes(ctx, userID)
	if err != nil {
		return resolve.Failed[[]*domain.Drift](err)
	}
	if len(notes) == 0 {
		return resolve.Miss[[]*domain.Drift]()
	}

	drifts := make([]*domain.Drift, 0, len(notes))
	for _, n := range notes {
		drifts = append(drifts, driftFromLegacy(n))
	}
	return resolve.Hit(drifts)
}

// driftFromLegacy reshapes a legacy note into the canonical drift shape.
func driftFromLegacy(n *domain.LegacyNote) *domain.Drift {
	return &domain.Drift{
		ID:           n.ID,
		UserID:       n.UserID,
		Title:        n.DisplayTitle(),
		SourceType:   domain.SourceTypeBook,
		SourceID:     n.BookID,
		SourceAnchor: n.AnchorValue(),
		Excerpt:      htmlutil.StripTags(n.Excerpt),
		Status:       domain.DriftStatusDraft,
		CreatedAt:    n.Timestamp,
		UpdatedAt:    n.Timestamp,
	}
}
