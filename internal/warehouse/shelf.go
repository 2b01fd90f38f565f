package warehouse

import (
	"fmt"
	"strings"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// Shelf is an ordered stack of levels. It owns the level-spanning flat-map
// logic: concatenation in level order and translation of linear positions
// back into (level, zone) pairs.
type Shelf struct {
	Number         int      `json:"number"`
	AvailableSpace int      `json:"available_space"`
	Levels         []*Level `json:"levels"`
}

func newShelf(number, levelCount, zonesPerLevel int) *Shelf {
	sh := &Shelf{Number: number}
	for i := 1; i <= levelCount; i++ {
		lvl := newLevel(i, zonesPerLevel)
		sh.Levels = append(sh.Levels, lvl)
		sh.AvailableSpace += lvl.AvailableSpace
	}
	return sh
}

// Level resolves a 1-based level number, or nil when out of range.
func (s *Shelf) Level(number int) *Level {
	if number < 1 || number > len(s.Levels) {
		return nil
	}
	return s.Levels[number-1]
}

func (s *Shelf) Capacity() int {
	total := 0
	for _, lvl := range s.Levels {
		total += lvl.Capacity()
	}
	return total
}

func (s *Shelf) IsFull() bool { return s.AvailableSpace == 0 }

func (s *Shelf) IsEmpty() bool {
	for _, lvl := range s.Levels {
		if !lvl.IsEmpty() {
			return false
		}
	}
	return true
}

func (s *Shelf) AddItem(pl model.Placement, item *model.Item) error {
	lvl := s.Level(pl.Level)
	if lvl == nil {
		return fmt.Errorf("%w at %s", model.ErrLevelNotFound, pl)
	}
	if err := lvl.AddItem(pl, item); err != nil {
		return err
	}
	s.AvailableSpace--
	return nil
}

func (s *Shelf) RemoveItem(pl model.Placement) error {
	lvl := s.Level(pl.Level)
	if lvl == nil {
		return fmt.Errorf("%w at %s", model.ErrLevelNotFound, pl)
	}
	if err := lvl.RemoveItem(pl); err != nil {
		return err
	}
	s.AvailableSpace++
	return nil
}

func (s *Shelf) AddSpan(pl model.Placement, item *model.Item) error {
	lvl := s.Level(pl.Level)
	if lvl == nil {
		return fmt.Errorf("%w at %s", model.ErrLevelNotFound, pl)
	}
	if err := lvl.AddSpan(pl, item); err != nil {
		return err
	}
	s.AvailableSpace -= item.ZonesRequired
	return nil
}

func (s *Shelf) RemoveSpan(pl model.Placement) (int, error) {
	lvl := s.Level(pl.Level)
	if lvl == nil {
		return 0, fmt.Errorf("%w at %s", model.ErrLevelNotFound, pl)
	}
	width, err := lvl.RemoveSpan(pl)
	if err != nil {
		return 0, err
	}
	s.AvailableSpace += width
	return width, nil
}

func (s *Shelf) Item(level, zone int) *model.Item {
	lvl := s.Level(level)
	if lvl == nil {
		return nil
	}
	return lvl.Item(zone)
}

func (s *Shelf) FlatMap() string {
	var b strings.Builder
	b.Grow(s.Capacity())
	for _, lvl := range s.Levels {
		b.WriteString(lvl.FlatMap())
	}
	return b.String()
}

func (s *Shelf) spanFlatMap(width int) string {
	var b strings.Builder
	for _, lvl := range s.Levels {
		m, _ := lvl.spanFlatMap(width)
		b.WriteString(m)
	}
	return b.String()
}

// positionToZone translates a 0-based position in the shelf's flat map into
// 1-based (level, zone).
func (s *Shelf) positionToZone(position int) (level, zone int, ok bool) {
	cumulative := 0
	for _, lvl := range s.Levels {
		capacity := lvl.Capacity()
		if position < cumulative+capacity {
			return lvl.Number, position - cumulative + 1, true
		}
		cumulative += capacity
	}
	return 0, 0, false
}

// spanPositionToZone translates a 0-based position in the shelf's span flat
// map, accounting for the per-level block collapsing.
func (s *Shelf) spanPositionToZone(position, width int) (level, zone int, ok bool) {
	cumulative := 0
	for _, lvl := range s.Levels {
		m, zones := lvl.spanFlatMap(width)
		if position < cumulative+len(m) {
			return lvl.Number, zones[position-cumulative], true
		}
		cumulative += len(m)
	}
	return 0, 0, false
}

// findVacantZone reports the first vacant (level, zone) at or below the
// ceiling. maxLevel <= 0 means no ceiling.
func (s *Shelf) findVacantZone(maxLevel int) (level, zone int, ok bool) {
	for _, lvl := range s.Levels {
		if maxLevel > 0 && lvl.Number > maxLevel {
			break
		}
		if z, found := lvl.findVacantZone(); found {
			return lvl.Number, z, true
		}
	}
	return 0, 0, false
}

func (s *Shelf) findSpanVacantZone(width, maxLevel int) (level, zone int, ok bool) {
	for _, lvl := range s.Levels {
		if maxLevel > 0 && lvl.Number > maxLevel {
			break
		}
		if z, found := lvl.findSpanVacantZone(width); found {
			return lvl.Number, z, true
		}
	}
	return 0, 0, false
}

func (s *Shelf) Items() []*model.Item {
	var items []*model.Item
	for _, lvl := range s.Levels {
		items = append(items, lvl.Items()...)
	}
	return items
}

func (s *Shelf) Contains(productID string) bool {
	for _, lvl := range s.Levels {
		if lvl.Contains(productID) {
			return true
		}
	}
	return false
}
