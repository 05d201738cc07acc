package providers

import (
	"github.com/samber/do/v2"

	"github.com/driftapp/drift-server/internal/catalog"
	"github.com/driftapp/drift-server/internal/config"
	"github.com/driftapp/drift-server/internal/logger"
)

// ProvideCatalogClient provides the external catalog client. Returns nil when
// no catalog URL is configured; the library service then skips the catalog
// fallback.
func ProvideCatalogClient(i do.Injector) (*catalog.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Catalog.BaseURL == "" {
		log.Info("No catalog URL configured, catalog fallback disabled")
		return nil, nil
	}

	log.Info("Catalog client initialized", "base_url", cfg.Catalog.BaseURL)
	return catalog.NewClient(cfg.Catalog.BaseURL, log.Logger), nil
}
