package warehouse

import (
	"fmt"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

// Strategy selects how restocked units are assigned to zones.
type Strategy string

const (
	// StrategyContiguous keeps every unit of a batch in one unbroken run of
	// zones, searching the whole warehouse flat map for a large enough gap.
	StrategyContiguous Strategy = "contiguous"

	// StrategyRoundRobin resumes filling right after the last occupied zone,
	// spreading successive batches across the warehouse.
	StrategyRoundRobin Strategy = "round-robin"

	// StrategyClosestToStart prefers zones near row 1 / shelf 1, scanning
	// (row, shelf) pairs in increasing row+shelf order.
	StrategyClosestToStart Strategy = "closest-to-start"
)

// ParseStrategy resolves a user-supplied strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyContiguous, StrategyRoundRobin, StrategyClosestToStart:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", model.ErrInvalidArgument, s)
	}
}

func (s Strategy) Valid() bool {
	_, err := ParseStrategy(string(s))
	return err == nil
}

func (s Strategy) String() string { return string(s) }
