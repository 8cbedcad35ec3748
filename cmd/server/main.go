package main

import (
	"context"
	"net/http"
	"os"

	"assetregistry/internal/app/server/api"
	"assetregistry/internal/clock"
	"assetregistry/internal/config"
	"assetregistry/internal/infrastructure/storage"
	"assetregistry/internal/utils/logger"
)

func main() {
	cfg := config.New()
	log := logger.New(cfg.Env)

	store, err := storage.Open(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to open world state", "backend", cfg.State.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	mux := api.New(store, clock.Wall{}, log)

	log.Info("asset registry listening",
		"address", cfg.Server.RunAddress,
		"backend", cfg.State.Backend,
	)
	if err := http.ListenAndServe(cfg.Server.RunAddress, mux); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
