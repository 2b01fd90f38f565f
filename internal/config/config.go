package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	envconfig "github.com/tarsobcaldas/storage-control/internal/config/env"
)

var cfg *config

type config struct {
	Logger    Logger
	Warehouse Warehouse
	Storage   Storage
	Mongo     Database
}

func Load(path ...string) error {
	const op = "config.Load"

	if shouldLoadDotenv() {
		if err := godotenv.Load(path...); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: load .env: %w", op, err)
		}
	}

	loggerCfg, err := envconfig.NewLoggerConfig()
	if err != nil {
		return fmt.Errorf("%s Logger: %w", op, err)
	}

	warehouseCfg, err := envconfig.NewWarehouseConfig()
	if err != nil {
		return fmt.Errorf("%s Warehouse: %w", op, err)
	}

	storageCfg, err := envconfig.NewStorageConfig()
	if err != nil {
		return fmt.Errorf("%s Storage: %w", op, err)
	}

	cfg = &config{
		Logger:    loggerCfg,
		Warehouse: warehouseCfg,
		Storage:   storageCfg,
	}

	// Mongo settings are only required when the mongo backend is selected.
	if storageCfg.Backend() == "mongo" {
		mongoCfg, err := envconfig.NewMongoConfig()
		if err != nil {
			return fmt.Errorf("%s Mongo: %w", op, err)
		}
		cfg.Mongo = mongoCfg
	}

	return nil
}

func C() *config { return cfg }

func shouldLoadDotenv() bool {
	return os.Getenv("APP_ENV") == "local"
}
