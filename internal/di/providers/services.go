package providers

import (
	"github.com/samber/do/v2"

	"github.com/driftapp/drift-server/internal/catalog"
	"github.com/driftapp/drift-server/internal/logger"
	"github.com/driftapp/drift-server/internal/service"
)

// ProvideDriftService provides the drift service. The store doubles as the
// legacy notes source.
func ProvideDriftService(i do.Injector) (*service.DriftService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDriftService(storeHandle.Store, storeHandle.Store, log.Logger), nil
}

// ProvideLayerService provides the layer service.
func ProvideLayerService(i do.Injector) (*service.LayerService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLayerService(storeHandle.Store, log.Logger), nil
}

// ProvideLibraryService provides the library service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// A nil *catalog.Client must stay a nil interface, not a typed nil.
	var cat service.Catalog
	if client := do.MustInvoke[*catalog.Client](i); client != nil {
		cat = client
	}

	return service.NewLibraryService(storeHandle.Store, cat, log.Logger), nil
}
