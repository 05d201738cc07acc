package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/driftapp/drift-server/internal/config"
	"github.com/driftapp/drift-server/internal/logger"
	"github.com/driftapp/drift-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the document store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Store.DataPath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Store initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
