package warehouse

import (
	"fmt"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// Zone is the smallest addressable storage slot. It holds at most one part.
type Zone struct {
	Number int   `json:"number"`
	Part   *Part `json:"part,omitempty"`
}

func newZone(number int) *Zone {
	return &Zone{Number: number}
}

func (z *Zone) IsEmpty() bool { return z.Part == nil }

func (z *Zone) put(pl model.Placement, part *Part) error {
	if z.Part != nil {
		return fmt.Errorf("%w at %s", model.ErrZoneOccupied, pl)
	}
	z.Part = part
	return nil
}

// removeWhole vacates the zone. Only a whole item may be removed this way;
// any span fragment must go through the span-removal path.
func (z *Zone) removeWhole(pl model.Placement) error {
	if z.Part == nil {
		return fmt.Errorf("%w at %s", model.ErrZoneEmpty, pl)
	}
	if z.Part.Kind != PartWhole {
		return fmt.Errorf("%w at %s", model.ErrCannotRemovePart, pl)
	}
	z.Part = nil
	return nil
}
