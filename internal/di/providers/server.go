package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/driftapp/drift-server/internal/api"
	"github.com/driftapp/drift-server/internal/auth"
	"github.com/driftapp/drift-server/internal/config"
	"github.com/driftapp/drift-server/internal/logger"
	"github.com/driftapp/drift-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)

	driftService := do.MustInvoke[*service.DriftService](i)
	layerService := do.MustInvoke[*service.LayerService](i)
	libraryService := do.MustInvoke[*service.LibraryService](i)

	handler := api.NewServer(driftService, layerService, libraryService, tokenService, cfg.Auth, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
