package model

import (
	"fmt"
	"time"
)

// Placement addresses a single zone inside the warehouse. All components are
// 1-based.
type Placement struct {
	Row   int `json:"row"`
	Shelf int `json:"shelf"`
	Level int `json:"level"`
	Zone  int `json:"zone"`
}

func (p Placement) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", p.Row, p.Shelf, p.Level, p.Zone)
}

// Item is one placed unit of a product. Placement is the anchor coordinate;
// an oversized item additionally occupies the ZonesRequired-1 zones that
// follow it within the same level.
type Item struct {
	ProductID     string     `json:"product_id"`
	Placement     Placement  `json:"placement"`
	ZonesRequired int        `json:"zones_required"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
