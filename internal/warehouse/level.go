package warehouse

import (
	"fmt"
	"strings"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// Level is an ordered run of zones. It owns the flat-map encoding at zone
// granularity and all span (oversized item) bookkeeping, since a span never
// crosses a level boundary.
type Level struct {
	Number         int     `json:"number"`
	AvailableSpace int     `json:"available_space"`
	Zones          []*Zone `json:"zones"`
}

func newLevel(number, zoneCount int) *Level {
	lvl := &Level{Number: number}
	for i := 1; i <= zoneCount; i++ {
		lvl.Zones = append(lvl.Zones, newZone(i))
		lvl.AvailableSpace++
	}
	return lvl
}

// Zone resolves a 1-based zone number, or nil when out of range.
func (l *Level) Zone(number int) *Zone {
	if number < 1 || number > len(l.Zones) {
		return nil
	}
	return l.Zones[number-1]
}

func (l *Level) Capacity() int { return len(l.Zones) }

func (l *Level) IsFull() bool { return l.AvailableSpace == 0 }

func (l *Level) IsEmpty() bool { return l.AvailableSpace == len(l.Zones) }

func (l *Level) AddItem(pl model.Placement, item *model.Item) error {
	zone := l.Zone(pl.Zone)
	if zone == nil {
		return fmt.Errorf("%w at %s", model.ErrZoneNotFound, pl)
	}
	if err := zone.put(pl, wholePart(item)); err != nil {
		return err
	}
	l.AvailableSpace--
	return nil
}

func (l *Level) RemoveItem(pl model.Placement) error {
	zone := l.Zone(pl.Zone)
	if zone == nil {
		return fmt.Errorf("%w at %s", model.ErrZoneNotFound, pl)
	}
	if err := zone.removeWhole(pl); err != nil {
		return err
	}
	l.AvailableSpace++
	return nil
}

func (l *Level) checkSpanFits(pl model.Placement, width int) error {
	if l.Zone(pl.Zone) == nil {
		return fmt.Errorf("%w at %s", model.ErrZoneNotFound, pl)
	}
	last := pl.Zone + width - 1
	if last > len(l.Zones) {
		return fmt.Errorf("%w at %s", model.ErrInsufficientSpace, pl)
	}
	for i := pl.Zone; i <= last; i++ {
		if !l.Zones[i-1].IsEmpty() {
			at := pl
			at.Zone = i
			return fmt.Errorf("%w at %s", model.ErrZoneOccupied, at)
		}
	}
	return nil
}

// AddSpan writes an oversized item across item.ZonesRequired contiguous
// zones starting at pl.Zone. Only the start zone carries the item payload.
func (l *Level) AddSpan(pl model.Placement, item *model.Item) error {
	width := item.ZonesRequired
	if width > len(l.Zones) {
		return fmt.Errorf("%w at %s", model.ErrNotEnoughZones, pl)
	}
	if err := l.checkSpanFits(pl, width); err != nil {
		return err
	}

	last := pl.Zone + width - 1
	l.Zones[pl.Zone-1].Part = startPart(item, last)
	for i := pl.Zone + 1; i < last; i++ {
		l.Zones[i-1].Part = interiorPart(pl.Zone, last)
	}
	l.Zones[last-1].Part = endPart(pl.Zone)
	l.AvailableSpace -= width
	return nil
}

// RemoveSpan vacates the whole span anchored at pl.Zone and reports how many
// zones were freed.
func (l *Level) RemoveSpan(pl model.Placement) (int, error) {
	zone := l.Zone(pl.Zone)
	if zone == nil {
		return 0, fmt.Errorf("%w at %s", model.ErrZoneNotFound, pl)
	}
	if zone.Part == nil {
		return 0, fmt.Errorf("%w at %s", model.ErrZoneEmpty, pl)
	}
	if zone.Part.Kind != PartStart {
		return 0, fmt.Errorf("%w at %s", model.ErrNotProductStart, pl)
	}

	start, end := zone.Part.Start, zone.Part.End
	for i := start; i <= end; i++ {
		l.Zones[i-1].Part = nil
	}
	width := end - start + 1
	l.AvailableSpace += width
	return width, nil
}

// Item resolves the underlying item occupying a zone. Interior and end
// fragments are followed back to the span's start zone.
func (l *Level) Item(zoneNumber int) *model.Item {
	zone := l.Zone(zoneNumber)
	if zone == nil || zone.Part == nil {
		return nil
	}
	switch zone.Part.Kind {
	case PartWhole, PartStart:
		return zone.Part.Item
	default:
		start := l.Zone(zone.Part.Start)
		if start == nil || start.Part == nil || start.Part.Kind != PartStart {
			return nil
		}
		return start.Part.Item
	}
}

// FlatMap encodes the level as one character per zone, '1' occupied and '0'
// vacant, in zone order.
func (l *Level) FlatMap() string {
	var b strings.Builder
	b.Grow(len(l.Zones))
	for _, zone := range l.Zones {
		if zone.IsEmpty() {
			b.WriteByte('0')
		} else {
			b.WriteByte('1')
		}
	}
	return b.String()
}

// spanFlatMap rewrites the level map for a span of the given width: every
// maximal run of vacant zones becomes floor(run/width) marker blocks of the
// form "1" + "0"*(width-1), one per possible span start; leftover vacant
// zones that cannot host a span are dropped, occupied zones pass through as
// '1'. The companion slice maps every output position back to the 1-based
// zone number it stands for (the span's start zone for marker characters).
func (l *Level) spanFlatMap(width int) (string, []int) {
	var b strings.Builder
	var zones []int

	emitRun := func(start, length int) {
		for length >= width {
			b.WriteByte('1')
			b.WriteString(strings.Repeat("0", width-1))
			for i := 0; i < width; i++ {
				zones = append(zones, start)
			}
			start += width
			length -= width
		}
	}

	runStart, runLen := 0, 0
	for _, zone := range l.Zones {
		if zone.IsEmpty() {
			if runLen == 0 {
				runStart = zone.Number
			}
			runLen++
			continue
		}
		emitRun(runStart, runLen)
		runLen = 0
		b.WriteByte('1')
		zones = append(zones, zone.Number)
	}
	emitRun(runStart, runLen)

	return b.String(), zones
}

// findVacantZone reports the first vacant zone number.
func (l *Level) findVacantZone() (int, bool) {
	for _, zone := range l.Zones {
		if zone.IsEmpty() {
			return zone.Number, true
		}
	}
	return 0, false
}

// findSpanVacantZone reports the first zone number starting a vacant run of
// at least width zones.
func (l *Level) findSpanVacantZone(width int) (int, bool) {
	run := 0
	for _, zone := range l.Zones {
		if !zone.IsEmpty() {
			run = 0
			continue
		}
		run++
		if run == width {
			return zone.Number - width + 1, true
		}
	}
	return 0, false
}

// Items returns every item anchored in this level, in zone order.
func (l *Level) Items() []*model.Item {
	var items []*model.Item
	for _, zone := range l.Zones {
		if zone.Part == nil {
			continue
		}
		if zone.Part.Kind == PartWhole || zone.Part.Kind == PartStart {
			items = append(items, zone.Part.Item)
		}
	}
	return items
}

func (l *Level) Contains(productID string) bool {
	for _, item := range l.Items() {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
