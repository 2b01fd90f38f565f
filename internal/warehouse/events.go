package warehouse

import "github.com/tarsobcaldas/storage-control/internal/model"

// EventSink receives notifications about committed placements and removals.
// Implementations must be cheap; the sink is called inside the fill loops.
type EventSink interface {
	ItemPlaced(item *model.Item)
	ItemRemoved(item *model.Item)
}

// NopSink discards all events. It is the default sink.
type NopSink struct{}

func (NopSink) ItemPlaced(*model.Item)  {}
func (NopSink) ItemRemoved(*model.Item) {}
