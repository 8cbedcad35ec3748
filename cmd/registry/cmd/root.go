package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"assetregistry/internal/config"
	"assetregistry/internal/infrastructure/storage"
	"assetregistry/internal/state"
	"assetregistry/internal/utils/logger"
)

var (
	cfg        *config.Config
	log        *slog.Logger
	store      state.Store
	backend    string
	sqlitePath string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "registry",
	Short: "Asset registry over a key-value world state",
	Long: `registry operates directly on the world state: seeding assets,
reading and updating them, running selector queries, and managing
time-limited access grants.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	err := rootCmd.Execute()
	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	cfg = config.New()
	if backend != "" {
		cfg.State.Backend = backend
	}
	if sqlitePath != "" {
		cfg.State.SQLitePath = sqlitePath
	}

	log = logger.New(cfg.Env)

	var err error
	store, err = storage.Open(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("open world state: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "world state backend (memory, sqlite, postgres)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "db", "", "sqlite database path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output records as JSON")
}
