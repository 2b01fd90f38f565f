package warehouse

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// Warehouse is the root of the placement hierarchy: rows of shelves of
// levels of zones. All placement strategies and stock queries live here.
type Warehouse struct {
	AvailableSpace int      `json:"available_space"`
	Strategy       Strategy `json:"strategy"`
	Rows           []*Row   `json:"rows"`

	sink EventSink
}

// Option configures a warehouse at construction time.
type Option func(*Warehouse)

func WithStrategy(s Strategy) Option {
	return func(w *Warehouse) { w.Strategy = s }
}

func WithSink(sink EventSink) Option {
	return func(w *Warehouse) { w.sink = sink }
}

// New builds an empty warehouse with the given uniform dimensions.
func New(rows, shelves, levels, zones int, opts ...Option) *Warehouse {
	w := &Warehouse{Strategy: StrategyContiguous}
	for i := 1; i <= rows; i++ {
		row := newRow(i, shelves, levels, zones)
		w.Rows = append(w.Rows, row)
		w.AvailableSpace += row.AvailableSpace
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SetSink installs the event sink. Needed after deserialization, since the
// sink is not part of the persisted state.
func (w *Warehouse) SetSink(sink EventSink) { w.sink = sink }

func (w *Warehouse) eventSink() EventSink {
	if w.sink == nil {
		return NopSink{}
	}
	return w.sink
}

// Row resolves a 1-based row number, or nil when out of range.
func (w *Warehouse) Row(number int) *Row {
	if number < 1 || number > len(w.Rows) {
		return nil
	}
	return w.Rows[number-1]
}

func (w *Warehouse) Capacity() int {
	total := 0
	for _, row := range w.Rows {
		total += row.Capacity()
	}
	return total
}

func (w *Warehouse) IsFull() bool { return w.AvailableSpace == 0 }

func (w *Warehouse) IsEmpty() bool {
	for _, row := range w.Rows {
		if !row.IsEmpty() {
			return false
		}
	}
	return true
}

// zoneAt resolves the zone a placement points at, reporting which hierarchy
// layer is missing when out of range.
func (w *Warehouse) zoneAt(pl model.Placement) (*Zone, error) {
	row := w.Row(pl.Row)
	if row == nil {
		return nil, fmt.Errorf("%w at %s", model.ErrRowNotFound, pl)
	}
	sh := row.Shelf(pl.Shelf)
	if sh == nil {
		return nil, fmt.Errorf("%w at %s", model.ErrShelfNotFound, pl)
	}
	lvl := sh.Level(pl.Level)
	if lvl == nil {
		return nil, fmt.Errorf("%w at %s", model.ErrLevelNotFound, pl)
	}
	zone := lvl.Zone(pl.Zone)
	if zone == nil {
		return nil, fmt.Errorf("%w at %s", model.ErrZoneNotFound, pl)
	}
	return zone, nil
}

// Item resolves the item occupying a placement, following span fragments
// back to their start zone. Returns nil when the placement is vacant or out
// of range.
func (w *Warehouse) Item(pl model.Placement) *model.Item {
	row := w.Row(pl.Row)
	if row == nil {
		return nil
	}
	return row.Item(pl.Shelf, pl.Level, pl.Zone)
}

func (w *Warehouse) AddItem(pl model.Placement, item *model.Item) error {
	row := w.Row(pl.Row)
	if row == nil {
		return fmt.Errorf("%w at %s", model.ErrRowNotFound, pl)
	}
	if err := row.AddItem(pl, item); err != nil {
		return err
	}
	w.AvailableSpace--
	w.eventSink().ItemPlaced(item)
	return nil
}

func (w *Warehouse) AddSpan(pl model.Placement, item *model.Item) error {
	row := w.Row(pl.Row)
	if row == nil {
		return fmt.Errorf("%w at %s", model.ErrRowNotFound, pl)
	}
	if err := row.AddSpan(pl, item); err != nil {
		return err
	}
	w.AvailableSpace -= item.ZonesRequired
	w.eventSink().ItemPlaced(item)
	return nil
}

// RemoveAt vacates whatever occupies a placement and returns the removed
// item. A whole item is removed directly; a span is removed through its
// start zone only.
func (w *Warehouse) RemoveAt(pl model.Placement) (*model.Item, error) {
	zone, err := w.zoneAt(pl)
	if err != nil {
		return nil, err
	}
	if zone.Part == nil {
		return nil, fmt.Errorf("%w at %s", model.ErrZoneEmpty, pl)
	}

	row := w.Row(pl.Row)
	switch zone.Part.Kind {
	case PartWhole:
		item := zone.Part.Item
		if err := row.RemoveItem(pl); err != nil {
			return nil, err
		}
		w.AvailableSpace++
		w.eventSink().ItemRemoved(item)
		return item, nil
	case PartStart:
		item := zone.Part.Item
		width, err := row.RemoveSpan(pl)
		if err != nil {
			return nil, err
		}
		w.AvailableSpace += width
		w.eventSink().ItemRemoved(item)
		return item, nil
	default:
		return nil, fmt.Errorf("%w at %s", model.ErrCannotRemovePart, pl)
	}
}

// FlatMap encodes the whole warehouse as one character per zone, '1'
// occupied and '0' vacant, concatenated zone -> level -> shelf -> row.
func (w *Warehouse) FlatMap() string {
	var b strings.Builder
	b.Grow(w.Capacity())
	for _, row := range w.Rows {
		b.WriteString(row.FlatMap())
	}
	return b.String()
}

// SpanFlatMap encodes the warehouse for a span of the given width, with
// vacant runs collapsed into per-start marker blocks.
func (w *Warehouse) SpanFlatMap(width int) string {
	var b strings.Builder
	for _, row := range w.Rows {
		b.WriteString(row.spanFlatMap(width))
	}
	return b.String()
}

// PositionToPlacement translates a 0-based flat-map position into a 1-based
// placement.
func (w *Warehouse) PositionToPlacement(position int) (model.Placement, bool) {
	cumulative := 0
	for _, row := range w.Rows {
		capacity := row.Capacity()
		if position < cumulative+capacity {
			shelf, level, zone, ok := row.positionToZone(position - cumulative)
			if !ok {
				return model.Placement{}, false
			}
			return model.Placement{Row: row.Number, Shelf: shelf, Level: level, Zone: zone}, true
		}
		cumulative += capacity
	}
	return model.Placement{}, false
}

// SpanPositionToPlacement translates a 0-based position in the span flat map
// into the placement of the span start it marks.
func (w *Warehouse) SpanPositionToPlacement(position, width int) (model.Placement, bool) {
	cumulative := 0
	for _, row := range w.Rows {
		length := len(row.spanFlatMap(width))
		if position < cumulative+length {
			shelf, level, zone, ok := row.spanPositionToZone(position-cumulative, width)
			if !ok {
				return model.Placement{}, false
			}
			return model.Placement{Row: row.Number, Shelf: shelf, Level: level, Zone: zone}, true
		}
		cumulative += length
	}
	return model.Placement{}, false
}

// PlacementToPosition is the inverse of PositionToPlacement.
func (w *Warehouse) PlacementToPosition(pl model.Placement) (int, bool) {
	if _, err := w.zoneAt(pl); err != nil {
		return 0, false
	}
	position := 0
	for _, row := range w.Rows[:pl.Row-1] {
		position += row.Capacity()
	}
	row := w.Row(pl.Row)
	for _, sh := range row.Shelves[:pl.Shelf-1] {
		position += sh.Capacity()
	}
	sh := row.Shelf(pl.Shelf)
	for _, lvl := range sh.Levels[:pl.Level-1] {
		position += lvl.Capacity()
	}
	return position + pl.Zone - 1, true
}

// Restock places qty units of the product according to the active strategy
// and reports how many units were committed. On error the count still
// reflects units already placed; callers must reconcile their stock totals
// with it.
func (w *Warehouse) Restock(product *model.Product, qty int, expiry *time.Time) (int, error) {
	const op = "warehouse.Restock"

	if qty <= 0 {
		return 0, fmt.Errorf("%s: %w: quantity must be positive", op, model.ErrInvalidArgument)
	}

	var placed int
	var err error
	switch w.Strategy {
	case StrategyRoundRobin:
		placed, err = w.placeRoundRobin(product, qty, expiry)
	case StrategyClosestToStart:
		placed, err = w.placeClosestToStart(product, qty, expiry)
	default:
		placed, err = w.placeContiguous(product, qty, expiry)
	}
	if err != nil {
		return placed, fmt.Errorf("%s: %w", op, err)
	}
	return placed, nil
}

// placeQuantity walks rows from start, filling each sequentially and
// continuing at the top of the next row. It mutates qty as units commit.
func (w *Warehouse) placeQuantity(product *model.Product, qty *int, expiry *time.Time, start model.Placement) error {
	width := product.Quality.SpanWidth()
	cursor := start
	for *qty > 0 {
		row := w.Row(cursor.Row)
		if row == nil {
			return fmt.Errorf("%w after row %d", model.ErrEndOfRows, len(w.Rows))
		}
		before := *qty
		err := row.placeRun(product, qty, expiry, cursor, w.eventSink())
		w.AvailableSpace -= (before - *qty) * width
		if err != nil {
			return err
		}
		cursor = model.Placement{Row: cursor.Row + 1, Shelf: 1, Level: 1, Zone: 1}
	}
	return nil
}

// placeContiguous stores the whole batch in one unbroken run of zones.
func (w *Warehouse) placeContiguous(product *model.Product, qty int, expiry *time.Time) (int, error) {
	width := product.Quality.SpanWidth()
	if qty*width > w.AvailableSpace {
		return 0, fmt.Errorf("%w: need %d zones, have %d", model.ErrInsufficientSpace, qty*width, w.AvailableSpace)
	}

	var start model.Placement
	if width == 1 {
		idx := strings.Index(w.FlatMap(), strings.Repeat("0", qty))
		if idx < 0 {
			return 0, fmt.Errorf("%w for %d units", model.ErrNoContiguousSpace, qty)
		}
		start, _ = w.PositionToPlacement(idx)
	} else {
		marker := "1" + strings.Repeat("0", width-1)
		idx := strings.Index(w.SpanFlatMap(width), strings.Repeat(marker, qty))
		if idx < 0 {
			return 0, fmt.Errorf("%w for %d units of width %d", model.ErrNoContiguousSpace, qty, width)
		}
		start, _ = w.SpanPositionToPlacement(idx, width)
	}

	remaining := qty
	err := w.placeQuantity(product, &remaining, expiry, start)
	return qty - remaining, err
}

// placeRoundRobin resumes filling right after the last occupied zone.
func (w *Warehouse) placeRoundRobin(product *model.Product, qty int, expiry *time.Time) (int, error) {
	width := product.Quality.SpanWidth()
	if qty*width > w.AvailableSpace {
		return 0, fmt.Errorf("%w: need %d zones, have %d", model.ErrInsufficientSpace, qty*width, w.AvailableSpace)
	}

	start := model.Placement{Row: 1, Shelf: 1, Level: 1, Zone: 1}
	if last := strings.LastIndex(w.FlatMap(), "1"); last >= 0 {
		if last+1 >= w.Capacity() {
			return 0, fmt.Errorf("%w: last occupied zone is the final zone", model.ErrEndOfWarehouse)
		}
		pl, ok := w.PositionToPlacement(last + 1)
		if !ok {
			return 0, fmt.Errorf("%w: position %d", model.ErrEndOfWarehouse, last+1)
		}
		start = pl
	}

	remaining := qty
	err := w.placeQuantity(product, &remaining, expiry, start)
	return qty - remaining, err
}

// placeClosestToStart assigns units one at a time to the vacant zone nearest
// the warehouse entrance, scanning (row, shelf) pairs in increasing
// row+shelf order with ties broken by the lower row.
func (w *Warehouse) placeClosestToStart(product *model.Product, qty int, expiry *time.Time) (int, error) {
	width := product.Quality.SpanWidth()
	maxLevel := 0
	if m, fragile := product.Quality.Ceiling(); fragile {
		maxLevel = m
	}

	rows := len(w.Rows)
	shelves := 0
	if rows > 0 {
		shelves = len(w.Rows[0].Shelves)
	}

	type slot struct{ row, shelf int }
	var order []slot
	for sum := 2; sum <= rows+shelves; sum++ {
		for row := 1; row < sum; row++ {
			shelf := sum - row
			if row <= rows && shelf >= 1 && shelf <= shelves {
				order = append(order, slot{row, shelf})
			}
		}
	}

	exhausted := make(map[slot]bool)
	placed := 0
	for placed < qty {
		committed := false
		for _, s := range order {
			if exhausted[s] {
				continue
			}
			sh := w.Rows[s.row-1].Shelves[s.shelf-1]

			var level, zone int
			var ok bool
			if width > 1 {
				level, zone, ok = sh.findSpanVacantZone(width, maxLevel)
			} else {
				level, zone, ok = sh.findVacantZone(maxLevel)
			}
			if !ok {
				exhausted[s] = true
				continue
			}

			pl := model.Placement{Row: s.row, Shelf: s.shelf, Level: level, Zone: zone}
			item, err := newItem(product, pl, expiry)
			if err != nil {
				return placed, err
			}
			row := w.Rows[s.row-1]
			if width > 1 {
				err = row.AddSpan(pl, item)
			} else {
				err = row.AddItem(pl, item)
			}
			if err != nil {
				return placed, err
			}
			w.AvailableSpace -= width
			w.eventSink().ItemPlaced(item)
			placed++
			committed = true
			break
		}
		if !committed {
			return placed, fmt.Errorf("%w: no reachable vacant zone", model.ErrInsufficientSpace)
		}
	}
	return placed, nil
}

// Items returns every stored item in placement order.
func (w *Warehouse) Items() []*model.Item {
	var items []*model.Item
	for _, row := range w.Rows {
		items = append(items, row.Items()...)
	}
	return items
}

// ItemsWithID returns every stored item of one product, in placement order.
func (w *Warehouse) ItemsWithID(productID string) []*model.Item {
	return lo.Filter(w.Items(), func(item *model.Item, _ int) bool {
		return item.ProductID == productID
	})
}

func (w *Warehouse) Contains(productID string) bool {
	for _, row := range w.Rows {
		if row.Contains(productID) {
			return true
		}
	}
	return false
}

// sortFEFO orders items first-expired-first-out. Items without an expiry
// date sort last; ties keep placement order.
func sortFEFO(items []*model.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].ExpiryDate, items[j].ExpiryDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// RemoveStock takes qty units of a product, earliest expiry first, and
// returns the removed items. Nothing is removed when stock is insufficient.
func (w *Warehouse) RemoveStock(productID string, qty int) ([]*model.Item, error) {
	const op = "warehouse.RemoveStock"

	if qty <= 0 {
		return nil, fmt.Errorf("%s: %w: quantity must be positive", op, model.ErrInvalidArgument)
	}
	items := w.ItemsWithID(productID)
	if len(items) < qty {
		return nil, fmt.Errorf("%s: %w: have %d, want %d", op, model.ErrInsufficientStock, len(items), qty)
	}

	sortFEFO(items)
	taken := make([]*model.Item, 0, qty)
	for _, item := range items[:qty] {
		removed, err := w.RemoveAt(item.Placement)
		if err != nil {
			return taken, fmt.Errorf("%s: %w", op, err)
		}
		taken = append(taken, removed)
	}
	return taken, nil
}

// RemoveAllStock vacates every unit of a product and returns the removed
// items.
func (w *Warehouse) RemoveAllStock(productID string) ([]*model.Item, error) {
	const op = "warehouse.RemoveAllStock"

	items := w.ItemsWithID(productID)
	removed := make([]*model.Item, 0, len(items))
	for _, item := range items {
		taken, err := w.RemoveAt(item.Placement)
		if err != nil {
			return removed, fmt.Errorf("%s: %w", op, err)
		}
		removed = append(removed, taken)
	}
	return removed, nil
}

// ExpiredItems returns items whose expiry date lies strictly before asOf.
func (w *Warehouse) ExpiredItems(asOf time.Time) []*model.Item {
	return lo.Filter(w.Items(), func(item *model.Item, _ int) bool {
		return item.ExpiryDate != nil && item.ExpiryDate.Before(asOf)
	})
}

// ExpiringItems returns items expiring within the window starting at asOf.
// Already expired items are not included.
func (w *Warehouse) ExpiringItems(asOf time.Time, window time.Duration) []*model.Item {
	deadline := asOf.Add(window)
	return lo.Filter(w.Items(), func(item *model.Item, _ int) bool {
		return item.ExpiryDate != nil &&
			!item.ExpiryDate.Before(asOf) &&
			item.ExpiryDate.Before(deadline)
	})
}
