package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	assetAPI "assetregistry/internal/app/server/api/http/asset"
	grantAPI "assetregistry/internal/app/server/api/http/grant"
	healthAPI "assetregistry/internal/app/server/api/http/health"
	"assetregistry/internal/app/server/api/http/middleware"
	"assetregistry/internal/app/server/api/http/middleware/logger"
	"assetregistry/internal/clock"
	"assetregistry/internal/domain/asset"
	"assetregistry/internal/domain/grant"
	"assetregistry/internal/state"
)

type Handlers struct {
	Health *healthAPI.Handler
	Asset  *assetAPI.Handler
	Grant  *grantAPI.Handler
}

// New builds a chi mux with every registry operation registered through huma.
func New(store state.Store, clk clock.Clock, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Asset Registry API", "1.0.0")
	API := humachi.New(mux, config)

	h := handlers(store, clk, log)
	h.Health.SetupRoutes(API)
	h.Asset.SetupRoutes(API)
	h.Grant.SetupRoutes(API)

	return mux
}

func handlers(store state.Store, clk clock.Clock, log *slog.Logger) *Handlers {
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	assetService := asset.NewService(store, clk, log)
	middlewares.Add(loggerMW.Middleware())
	assetHandler := assetAPI.NewHandler(assetService, log, middlewares.GetAllAndClear())

	grantService := grant.NewService(store, assetService, clk, log)
	middlewares.Add(loggerMW.Middleware())
	grantHandler := grantAPI.NewHandler(grantService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		Asset:  assetHandler,
		Grant:  grantHandler,
	}
}
