package warehouse

import (
	"fmt"
	"time"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// newItem builds the placed-unit record for a product at a placement,
// enforcing the quality-dependent constraints: fragile products must carry
// an expiry date and may not be placed above their ceiling.
func newItem(product *model.Product, pl model.Placement, expiry *time.Time) (*model.Item, error) {
	if maxLevel, fragile := product.Quality.Ceiling(); fragile {
		if expiry == nil {
			return nil, fmt.Errorf("%w: product %s", model.ErrFragileWithoutExpiry, product.ID)
		}
		if pl.Level > maxLevel {
			return nil, fmt.Errorf("%w at %s", model.ErrLevelTooHigh, pl)
		}
	}

	return &model.Item{
		ProductID:     product.ID,
		Placement:     pl,
		ZonesRequired: product.Quality.SpanWidth(),
		ExpiryDate:    expiry,
		CreatedAt:     time.Now().UTC(),
	}, nil
}
