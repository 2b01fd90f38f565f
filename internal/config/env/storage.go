package envconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type storageEnv struct {
	Backend     string        `env:"STORAGE_BACKEND" envDefault:"file"`
	SnapshotDir string        `env:"STORAGE_SNAPSHOT_DIR" envDefault:"snapshots"`
	IOTimeout   time.Duration `env:"STORAGE_IO_TIMEOUT" envDefault:"5s"`
}

type storage struct {
	raw storageEnv
}

func NewStorageConfig() (*storage, error) {
	var raw storageEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	if raw.Backend != "file" && raw.Backend != "mongo" {
		return nil, fmt.Errorf("unknown storage backend %q, want file or mongo", raw.Backend)
	}
	return &storage{raw: raw}, nil
}

func (cfg *storage) Backend() string          { return cfg.raw.Backend }
func (cfg *storage) SnapshotDir() string      { return cfg.raw.SnapshotDir }
func (cfg *storage) IOTimeout() time.Duration { return cfg.raw.IOTimeout }
