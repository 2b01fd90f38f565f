package warehouse

import "github.com/tarsobcaldas/storage-control/internal/model"

type PartKind int32

const (
	// PartWhole is a single-zone item.
	PartWhole PartKind = iota
	// PartStart is the first zone of an oversized span and carries the item
	// payload for the whole span.
	PartStart
	// PartInterior is a zone strictly between the start and end of a span.
	PartInterior
	// PartEnd is the last zone of a span.
	PartEnd
)

// Part is the occupant of one zone. The item payload lives only on the
// whole/start zone; interior and end zones point back at the start so the
// underlying item is never duplicated across a span.
type Part struct {
	Kind PartKind    `json:"kind"`
	Item *model.Item `json:"item,omitempty"`
	// Start and End are zone numbers within the owning level.
	Start int `json:"start,omitempty"`
	End   int `json:"end,omitempty"`
}

func wholePart(item *model.Item) *Part {
	return &Part{Kind: PartWhole, Item: item}
}

func startPart(item *model.Item, end int) *Part {
	return &Part{Kind: PartStart, Item: item, Start: item.Placement.Zone, End: end}
}

func interiorPart(start, end int) *Part {
	return &Part{Kind: PartInterior, Start: start, End: end}
}

func endPart(start int) *Part {
	return &Part{Kind: PartEnd, Start: start}
}
