// Package app contains the application setup for the ventas service.
package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Juan-Ayme/ventas/internal/config"
	"github.com/Juan-Ayme/ventas/internal/service"
	"github.com/Juan-Ayme/ventas/internal/store"
	"github.com/Juan-Ayme/ventas/internal/transport/rest"
	"github.com/Juan-Ayme/ventas/pkg/messaging"
	"github.com/Juan-Ayme/ventas/pkg/server"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependencies struct {
	ProductService service.ProductService
	SaleService    service.SaleService
	Logger         *slog.Logger
}

func SetupDependencies(dbPool *pgxpool.Pool, publisher messaging.Publisher, logger *slog.Logger) *Dependencies {
	pgStore := store.NewPgStore(dbPool)

	return &Dependencies{
		ProductService: service.NewProductService(pgStore.PgProductStore),
		SaleService:    service.NewSaleService(pgStore.PgSaleStore, publisher, time.Now),
		Logger:         logger,
	}
}

// SetupHttpHandler initializes the HTTP routes for the ventas application.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

// wireRoutes sets up the HTTP routes for the ventas application.
func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	rest.NewProductHandler(deps.ProductService, deps.Logger).RegisterRoutes(mux)
	rest.NewSaleHandler(deps.SaleService, deps.Logger).RegisterRoutes(mux)
}

// SetupHttpServer creates and configures an HTTP server for the ventas application.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {

	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, mux)
}
