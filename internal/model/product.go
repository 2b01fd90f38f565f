package model

import "fmt"

type QualityKind int32

const (
	QualityNormal QualityKind = iota
	QualityFragile
	QualityOversized
	QualityOversizedFragile
)

// Quality describes the handling constraints of a product. MaxLevel is only
// meaningful for fragile kinds, ZonesRequired only for oversized kinds.
type Quality struct {
	Kind          QualityKind `json:"kind"`
	MaxLevel      int         `json:"max_level,omitempty"`
	ZonesRequired int         `json:"zones_required,omitempty"`
}

func Normal() Quality {
	return Quality{Kind: QualityNormal}
}

func Fragile(maxLevel int) Quality {
	return Quality{Kind: QualityFragile, MaxLevel: maxLevel}
}

func Oversized(zonesRequired int) Quality {
	return Quality{Kind: QualityOversized, ZonesRequired: zonesRequired}
}

func OversizedFragile(zonesRequired, maxLevel int) Quality {
	return Quality{
		Kind:          QualityOversizedFragile,
		MaxLevel:      maxLevel,
		ZonesRequired: zonesRequired,
	}
}

// Ceiling reports the highest level a product may occupy. ok is false for
// qualities without a fragility ceiling.
func (q Quality) Ceiling() (level int, ok bool) {
	switch q.Kind {
	case QualityFragile, QualityOversizedFragile:
		return q.MaxLevel, true
	default:
		return 0, false
	}
}

// SpanWidth reports how many contiguous zones a single unit occupies.
func (q Quality) SpanWidth() int {
	switch q.Kind {
	case QualityOversized, QualityOversizedFragile:
		if q.ZonesRequired > 1 {
			return q.ZonesRequired
		}
		return 1
	default:
		return 1
	}
}

func (q Quality) String() string {
	switch q.Kind {
	case QualityFragile:
		return "fragile"
	case QualityOversized:
		return "oversized"
	case QualityOversizedFragile:
		return "oversized and fragile"
	default:
		return "normal"
	}
}

type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	PriceCents int64   `json:"price_cents"`
	Quantity   int     `json:"quantity"`
	Quality    Quality `json:"quality"`
}

// FormatPrice renders a price in cents as dollars, e.g. 1050 -> "$10.50".
func FormatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
