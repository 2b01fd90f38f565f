package model

import "errors"

// Placement engine failures. All are surfaced to the caller immediately,
// wrapped with the offending placement where one applies.
var (
	ErrInsufficientSpace    = errors.New("insufficient space")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrNoContiguousSpace    = errors.New("no contiguous space available for bulk placement")
	ErrZoneOccupied         = errors.New("zone is already occupied")
	ErrZoneEmpty            = errors.New("zone is empty")
	ErrZoneNotFound         = errors.New("zone not found")
	ErrLevelNotFound        = errors.New("level not found")
	ErrShelfNotFound        = errors.New("shelf not found")
	ErrRowNotFound          = errors.New("row not found")
	ErrNotEnoughZones       = errors.New("not enough zones to fit oversized item")
	ErrCannotRemovePart     = errors.New("cannot remove part without removing whole product")
	ErrNotProductStart      = errors.New("zone is not the start of a product")
	ErrProductNotListed     = errors.New("product not listed")
	ErrEndOfRows            = errors.New("end of last row reached")
	ErrEndOfWarehouse       = errors.New("end of warehouse reached")
	ErrLevelTooHigh         = errors.New("level too high")
	ErrFragileWithoutExpiry = errors.New("fragile product requires an expiry date")
)

// Persistence failures.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Catalog failures.
var (
	ErrNameExists        = errors.New("product with this name already exists")
	ErrNotEnoughQuantity = errors.New("not enough quantity")
	ErrHasStock          = errors.New("product still has stock")
	ErrInvalidArgument   = errors.New("invalid argument")
)
