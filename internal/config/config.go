package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Supported world-state backends.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Env    string
	Server server
	State  stateStore
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
}

type stateStore struct {
	Backend     string `env:"STATE_BACKEND"`
	DatabaseURI string `env:"DATABASE_URI"`
	SQLitePath  string `env:"SQLITE_PATH"`
	Migrations  string `env:"MIGRATIONS_PATH"`
}

// New reads configuration from the environment, with a .env file as
// fallback for local runs.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()

	cfg := Config{
		Env: viper.GetString("app_env"),
		Server: server{
			RunAddress: viper.GetString("run_address"),
		},
		State: stateStore{
			Backend:     viper.GetString("state_backend"),
			DatabaseURI: viper.GetString("database_uri"),
			SQLitePath:  viper.GetString("sqlite_path"),
			Migrations:  viper.GetString("migrations_path"),
		},
	}

	if cfg.Env == "" {
		cfg.Env = EnvLocal
	}
	if cfg.Server.RunAddress == "" {
		cfg.Server.RunAddress = ":8080"
	}
	if cfg.State.Backend == "" {
		cfg.State.Backend = BackendMemory
	}
	if cfg.State.SQLitePath == "" {
		cfg.State.SQLitePath = "registry.db"
	}
	if cfg.State.Migrations == "" {
		cfg.State.Migrations = "migrations"
	}

	return &cfg
}
