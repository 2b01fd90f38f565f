package warehouse

import (
	"fmt"
	"strings"
	"time"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// Row is an ordered run of shelves. It owns the shelf-spanning flat-map
// logic and the sequential walk-and-wrap filling used by every placement
// strategy.
type Row struct {
	Number         int      `json:"number"`
	AvailableSpace int      `json:"available_space"`
	Shelves        []*Shelf `json:"shelves"`
}

func newRow(number, shelfCount, levelsPerShelf, zonesPerLevel int) *Row {
	r := &Row{Number: number}
	for i := 1; i <= shelfCount; i++ {
		sh := newShelf(i, levelsPerShelf, zonesPerLevel)
		r.Shelves = append(r.Shelves, sh)
		r.AvailableSpace += sh.AvailableSpace
	}
	return r
}

// Shelf resolves a 1-based shelf number, or nil when out of range.
func (r *Row) Shelf(number int) *Shelf {
	if number < 1 || number > len(r.Shelves) {
		return nil
	}
	return r.Shelves[number-1]
}

func (r *Row) Capacity() int {
	total := 0
	for _, sh := range r.Shelves {
		total += sh.Capacity()
	}
	return total
}

func (r *Row) IsFull() bool { return r.AvailableSpace == 0 }

func (r *Row) IsEmpty() bool {
	for _, sh := range r.Shelves {
		if !sh.IsEmpty() {
			return false
		}
	}
	return true
}

func (r *Row) AddItem(pl model.Placement, item *model.Item) error {
	sh := r.Shelf(pl.Shelf)
	if sh == nil {
		return fmt.Errorf("%w at %s", model.ErrShelfNotFound, pl)
	}
	if err := sh.AddItem(pl, item); err != nil {
		return err
	}
	r.AvailableSpace--
	return nil
}

func (r *Row) RemoveItem(pl model.Placement) error {
	sh := r.Shelf(pl.Shelf)
	if sh == nil {
		return fmt.Errorf("%w at %s", model.ErrShelfNotFound, pl)
	}
	if err := sh.RemoveItem(pl); err != nil {
		return err
	}
	r.AvailableSpace++
	return nil
}

func (r *Row) AddSpan(pl model.Placement, item *model.Item) error {
	sh := r.Shelf(pl.Shelf)
	if sh == nil {
		return fmt.Errorf("%w at %s", model.ErrShelfNotFound, pl)
	}
	if err := sh.AddSpan(pl, item); err != nil {
		return err
	}
	r.AvailableSpace -= item.ZonesRequired
	return nil
}

func (r *Row) RemoveSpan(pl model.Placement) (int, error) {
	sh := r.Shelf(pl.Shelf)
	if sh == nil {
		return 0, fmt.Errorf("%w at %s", model.ErrShelfNotFound, pl)
	}
	width, err := sh.RemoveSpan(pl)
	if err != nil {
		return 0, err
	}
	r.AvailableSpace += width
	return width, nil
}

func (r *Row) Item(shelf, level, zone int) *model.Item {
	sh := r.Shelf(shelf)
	if sh == nil {
		return nil
	}
	return sh.Item(level, zone)
}

func (r *Row) FlatMap() string {
	var b strings.Builder
	b.Grow(r.Capacity())
	for _, sh := range r.Shelves {
		b.WriteString(sh.FlatMap())
	}
	return b.String()
}

func (r *Row) spanFlatMap(width int) string {
	var b strings.Builder
	for _, sh := range r.Shelves {
		b.WriteString(sh.spanFlatMap(width))
	}
	return b.String()
}

func (r *Row) positionToZone(position int) (shelf, level, zone int, ok bool) {
	cumulative := 0
	for _, sh := range r.Shelves {
		capacity := sh.Capacity()
		if position < cumulative+capacity {
			level, zone, ok = sh.positionToZone(position - cumulative)
			return sh.Number, level, zone, ok
		}
		cumulative += capacity
	}
	return 0, 0, 0, false
}

func (r *Row) spanPositionToZone(position, width int) (shelf, level, zone int, ok bool) {
	cumulative := 0
	for _, sh := range r.Shelves {
		length := len(sh.spanFlatMap(width))
		if position < cumulative+length {
			level, zone, ok = sh.spanPositionToZone(position-cumulative, width)
			return sh.Number, level, zone, ok
		}
		cumulative += length
	}
	return 0, 0, 0, false
}

// placeRun fills the row sequentially from start, one unit per span width,
// wrapping zone -> level -> shelf. Levels above a fragile ceiling are
// skipped by advancing to the next shelf. The run stops without error when
// the row is exhausted; the caller continues on the next row. qty is
// decremented for every committed unit, so partial progress survives an
// error return.
func (r *Row) placeRun(
	product *model.Product,
	qty *int,
	expiry *time.Time,
	start model.Placement,
	sink EventSink,
) error {
	width := product.Quality.SpanWidth()
	maxLevel, fragile := product.Quality.Ceiling()

	shelf, level, zone := start.Shelf, start.Level, start.Zone
	for *qty > 0 {
		sh := r.Shelf(shelf)
		if sh == nil {
			return nil
		}
		limit := len(sh.Levels)
		if fragile && maxLevel < limit {
			limit = maxLevel
		}
		if level > limit {
			shelf, level, zone = shelf+1, 1, 1
			continue
		}
		lvl := sh.Level(level)
		if zone+width-1 > len(lvl.Zones) {
			level, zone = level+1, 1
			continue
		}

		pl := model.Placement{Row: r.Number, Shelf: shelf, Level: level, Zone: zone}
		item, err := newItem(product, pl, expiry)
		if err != nil {
			return err
		}
		if width > 1 {
			err = r.AddSpan(pl, item)
		} else {
			err = r.AddItem(pl, item)
		}
		if err != nil {
			return err
		}
		sink.ItemPlaced(item)
		*qty--
		zone += width
	}
	return nil
}

func (r *Row) Items() []*model.Item {
	var items []*model.Item
	for _, sh := range r.Shelves {
		items = append(items, sh.Items()...)
	}
	return items
}

func (r *Row) Contains(productID string) bool {
	for _, sh := range r.Shelves {
		if sh.Contains(productID) {
			return true
		}
	}
	return false
}
