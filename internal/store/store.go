// Package store persists drifts, layers, and library items in a Badger
// key-value database. Each entity family lives under its own key prefix;
// secondary indexes share the same transaction as the primary write.
package store

import (
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/driftapp/drift-server/internal/domain"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	Drifts       *Entity[domain.Drift]
	Layers       *Entity[domain.Layer]
	LibraryItems *Entity[domain.LibraryItem]
	LegacyNotes  *Entity[domain.LegacyNote]
}

// New opens (or creates) the database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, &Error{Code: 500, Message: "failed to open badger db", Err: err}
	}

	s := &Store{
		db:     db,
		logger: logger,
	}

	s.initEntities()

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return s, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// initEntities wires up the entity collections and their indexes.
func (s *Store) initEntities() {
	s.Drifts = NewEntity[domain.Drift](s, driftPrefix)
	s.Layers = NewEntity[domain.Layer](s, layerPrefix)
	s.LegacyNotes = NewEntity[domain.LegacyNote](s, legacyPrefix)

	// (userId, refId) is the natural key of a library item. The unique index
	// is the sole backstop against a write race between concurrent collects.
	s.LibraryItems = NewEntity[domain.LibraryItem](s, libraryItemPrefix).
		WithIndex(userRefIndex, func(i *domain.LibraryItem) []string {
			return []string{userRefKey(i.UserID, i.RefID)}
		})
}
