// Package snapshot persists the full storage state (catalog plus warehouse)
// under a name, so a session can be saved and resumed later.
package snapshot

import (
	"context"

	"github.com/tarsobcaldas/storage-control/internal/catalog"
	"github.com/tarsobcaldas/storage-control/internal/warehouse"
)

// Snapshot is the unit of persistence: everything needed to restore a
// storage session.
type Snapshot struct {
	Name      string               `json:"name"`
	Products  *catalog.List        `json:"products"`
	Warehouse *warehouse.Warehouse `json:"warehouse"`
}

// Repository stores and retrieves named snapshots. Load returns
// model.ErrSnapshotNotFound when no snapshot with the name exists.
type Repository interface {
	Save(ctx context.Context, snap *Snapshot) error
	Load(ctx context.Context, name string) (*Snapshot, error)
}
