package envconfig

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type warehouseEnv struct {
	Rows     int    `env:"WAREHOUSE_ROWS" envDefault:"2"`
	Shelves  int    `env:"WAREHOUSE_SHELVES" envDefault:"6"`
	Levels   int    `env:"WAREHOUSE_LEVELS" envDefault:"4"`
	Zones    int    `env:"WAREHOUSE_ZONES" envDefault:"10"`
	Strategy string `env:"WAREHOUSE_STRATEGY" envDefault:"contiguous"`
}

type warehouse struct {
	raw warehouseEnv
}

func NewWarehouseConfig() (*warehouse, error) {
	var raw warehouseEnv
	if err := env.Parse(&raw); err != nil {
		return nil, err
	}
	for _, dim := range []int{raw.Rows, raw.Shelves, raw.Levels, raw.Zones} {
		if dim < 1 {
			return nil, fmt.Errorf("warehouse dimensions must be positive, got %dx%dx%dx%d",
				raw.Rows, raw.Shelves, raw.Levels, raw.Zones)
		}
	}
	return &warehouse{raw: raw}, nil
}

func (cfg *warehouse) Rows() int        { return cfg.raw.Rows }
func (cfg *warehouse) Shelves() int     { return cfg.raw.Shelves }
func (cfg *warehouse) Levels() int      { return cfg.raw.Levels }
func (cfg *warehouse) Zones() int       { return cfg.raw.Zones }
func (cfg *warehouse) Strategy() string { return cfg.raw.Strategy }
