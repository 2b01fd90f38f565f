package app

import (
	"context"

	"github.com/tarsobcaldas/storage-control/internal/logger"
	"github.com/tarsobcaldas/storage-control/internal/model"
)

// logSink traces every placement and removal through the structured logger.
type logSink struct{}

func (logSink) ItemPlaced(item *model.Item) {
	logger.Debug(context.Background(), "item placed",
		logger.String("product_id", item.ProductID),
		logger.String("placement", item.Placement.String()),
		logger.Int("zones", item.ZonesRequired),
	)
}

func (logSink) ItemRemoved(item *model.Item) {
	logger.Debug(context.Background(), "item removed",
		logger.String("product_id", item.ProductID),
		logger.String("placement", item.Placement.String()),
		logger.Int("zones", item.ZonesRequired),
	)
}
