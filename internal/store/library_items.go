package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/driftapp/drift-server/internal/domain"
	"github.com/driftapp/drift-server/internal/id"
)

// upsertRetries bounds retries when concurrent collects for the same
// (userId, refId) collide. A conflict means another writer won the race;
// re-running merges into what it wrote.
const upsertRetries = 3

// UpsertLibraryItem ensures exactly one library item exists for
// (userID, refID), merging the supplied fields into an existing record or
// inserting a new one. The whole conditional update runs inside a single
// Badger transaction; callers wanting the post-write state must re-read,
// and that read is not snapshot-isolated with the write.
func (s *Store) UpsertLibraryItem(ctx context.Context, userID, refID string, patch domain.LibraryItemPatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if userID == "" || refID == "" {
		return ErrInvalidInput.WithMessage("userId and refId are required")
	}

	// Candidate ID for the insert path, generated outside the transaction
	// so retries reuse it.
	newID, err := id.Generate("item")
	if err != nil {
		return fmt.Errorf("generate library item ID: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < upsertRetries; attempt++ {
		lastErr = s.upsertLibraryItemOnce(userID, refID, newID, patch)
		if errors.Is(lastErr, badger.ErrConflict) {
			continue
		}
		return lastErr
	}
	return fmt.Errorf("upsert library item: %w", lastErr)
}

func (s *Store) upsertLibraryItemOnce(userID, refID, newID string, patch domain.LibraryItemPatch) error {
	idxKey := []byte(s.LibraryItems.indexKey(userRefIndex, userRefKey(userID, refID)))

	return s.db.Update(func(txn *badger.Txn) error {
		idxItem, err := txn.Get(idxKey)

		switch {
		case err == nil:
			// Merge into the existing record.
			var existingID string
			if err := idxItem.Value(func(val []byte) error {
				existingID = string(val)
				return nil
			}); err != nil {
				return err
			}

			primaryKey := []byte(libraryItemPrefix + existingID)
			rec, err := txn.Get(primaryKey)
			if err != nil {
				return fmt.Errorf("read library item %s: %w", existingID, err)
			}

			var item domain.LibraryItem
			if err := rec.Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return err
			}

			patch.Apply(&item)
			item.Touch()

			data, err := json.Marshal(&item)
			if err != nil {
				return fmt.Errorf("marshal library item: %w", err)
			}
			return txn.Set(primaryKey, data)

		case errors.Is(err, badger.ErrKeyNotFound):
			// Insert with defaults for unsupplied fields.
			now := time.Now()
			item := domain.LibraryItem{
				ID:        newID,
				UserID:    userID,
				RefID:     refID,
				RefType:   domain.SourceTypeBook,
				CreatedAt: now,
				UpdatedAt: now,
			}
			patch.Apply(&item)

			data, err := json.Marshal(&item)
			if err != nil {
				return fmt.Errorf("marshal library item: %w", err)
			}
			if err := txn.Set([]byte(libraryItemPrefix+newID), data); err != nil {
				return err
			}
			return txn.Set(idxKey, []byte(newID))

		default:
			return fmt.Errorf("check library item index: %w", err)
		}
	})
}

// GetLibraryItemByUserRef retrieves the item for a (userID, refID) pair.
func (s *Store) GetLibraryItemByUserRef(ctx context.Context, userID, refID string) (*domain.LibraryItem, error) {
	return s.LibraryItems.GetByIndex(ctx, userRefIndex, userRefKey(userID, refID))
}

// GetLibraryItemByRef returns the first stored item carrying refID,
// regardless of which user owns it. Single-item lookup deliberately ignores
// ownership: the record is only used as source metadata for the ref.
func (s *Store) GetLibraryItemByRef(ctx context.Context, refID string) (*domain.LibraryItem, error) {
	for item, err := range s.LibraryItems.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("scan library items: %w", err)
		}
		if item.RefID == refID {
			return item, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteLibraryItem removes the item for a (userID, refID) pair.
func (s *Store) DeleteLibraryItem(ctx context.Context, userID, refID string) error {
	item, err := s.GetLibraryItemByUserRef(ctx, userID, refID)
	if err != nil {
		return err
	}
	return s.LibraryItems.Delete(ctx, item.ID)
}

// ListLibraryItems returns the user's items, sorted by UpdatedAt descending.
func (s *Store) ListLibraryItems(ctx context.Context, userID string) ([]*domain.LibraryItem, error) {
	items := make([]*domain.LibraryItem, 0)

	for item, err := range s.LibraryItems.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list library items: %w", err)
		}
		if item.UserID != userID {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].UpdatedAt.After(items[j].UpdatedAt)
	})

	return items, nil
}
