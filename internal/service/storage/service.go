// Package storage orchestrates the catalog and the warehouse, keeping the
// tracked quantities and the physically placed units consistent, and drives
// snapshot persistence.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/tarsobcaldas/storage-control/internal/catalog"
	"github.com/tarsobcaldas/storage-control/internal/logger"
	"github.com/tarsobcaldas/storage-control/internal/model"
	"github.com/tarsobcaldas/storage-control/internal/repository/snapshot"
	"github.com/tarsobcaldas/storage-control/internal/warehouse"
)

type Service struct {
	products  *catalog.List
	warehouse *warehouse.Warehouse
	repo      snapshot.Repository
	sink      warehouse.EventSink
	ioTimeout time.Duration
}

func NewService(
	products *catalog.List,
	wh *warehouse.Warehouse,
	repo snapshot.Repository,
	sink warehouse.EventSink,
	ioTimeout time.Duration,
) *Service {
	if sink != nil {
		wh.SetSink(sink)
	}
	return &Service{
		products:  products,
		warehouse: wh,
		repo:      repo,
		sink:      sink,
		ioTimeout: ioTimeout,
	}
}

func (s *Service) CreateProduct(ctx context.Context, name string, priceCents int64, quality model.Quality) (*model.Product, error) {
	const op = "storage.CreateProduct"

	product, err := s.products.Add(name, priceCents, quality)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "product listed",
		logger.String("id", product.ID),
		logger.String("name", product.Name),
		logger.String("quality", product.Quality.String()),
	)
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, name string) error {
	const op = "storage.DeleteProduct"

	product, err := s.products.ProductByName(name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.products.Remove(product.ID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "product delisted", logger.String("name", product.Name))
	return nil
}

func (s *Service) ChangePrice(ctx context.Context, name string, priceCents int64) error {
	const op = "storage.ChangePrice"

	product, err := s.products.ProductByName(name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.products.SetPrice(product.ID, priceCents); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "price changed",
		logger.String("name", product.Name),
		logger.Int64("price_cents", priceCents),
	)
	return nil
}

// Restock places qty units of a named product and reports how many were
// committed. The tracked quantity follows the committed count even when
// placement stops early, so catalog and warehouse never diverge.
func (s *Service) Restock(ctx context.Context, name string, qty int, expiry *time.Time) (int, error) {
	const op = "storage.Restock"

	product, err := s.products.ProductByName(name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	placed, placeErr := s.warehouse.Restock(product, qty, expiry)
	if placed > 0 {
		if err := s.products.StepQuantity(product.ID, placed); err != nil {
			return placed, fmt.Errorf("%s: %w", op, err)
		}
	}
	if placeErr != nil {
		logger.Warn(ctx, "restock stopped early",
			logger.String("name", product.Name),
			logger.Int("requested", qty),
			logger.Int("placed", placed),
			logger.ErrorF(placeErr),
		)
		return placed, fmt.Errorf("%s: %w", op, placeErr)
	}

	logger.Info(ctx, "restocked",
		logger.String("name", product.Name),
		logger.Int("placed", placed),
	)
	return placed, nil
}

// RemoveStock takes qty units of a named product, earliest expiry first.
func (s *Service) RemoveStock(ctx context.Context, name string, qty int) ([]*model.Item, error) {
	const op = "storage.RemoveStock"

	product, err := s.products.ProductByName(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	taken, takeErr := s.warehouse.RemoveStock(product.ID, qty)
	if len(taken) > 0 {
		if err := s.products.StepQuantity(product.ID, -len(taken)); err != nil {
			return taken, fmt.Errorf("%s: %w", op, err)
		}
	}
	if takeErr != nil {
		return taken, fmt.Errorf("%s: %w", op, takeErr)
	}

	logger.Info(ctx, "stock taken",
		logger.String("name", product.Name),
		logger.Int("taken", len(taken)),
	)
	return taken, nil
}

// EmptyStock vacates every unit of a named product and reports how many were
// removed.
func (s *Service) EmptyStock(ctx context.Context, name string) (int, error) {
	const op = "storage.EmptyStock"

	product, err := s.products.ProductByName(name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	removed, removeErr := s.warehouse.RemoveAllStock(product.ID)
	if len(removed) > 0 {
		if err := s.products.StepQuantity(product.ID, -len(removed)); err != nil {
			return len(removed), fmt.Errorf("%s: %w", op, err)
		}
	}
	if removeErr != nil {
		return len(removed), fmt.Errorf("%s: %w", op, removeErr)
	}

	logger.Info(ctx, "stock emptied",
		logger.String("name", product.Name),
		logger.Int("removed", len(removed)),
	)
	return len(removed), nil
}

func (s *Service) Products() []*model.Product { return s.products.All() }

func (s *Service) SearchProducts(query string) []*model.Product {
	return s.products.SearchByName(query)
}

func (s *Service) ProductsByQuality(kind model.QualityKind) []*model.Product {
	return s.products.FilterByQuality(kind)
}

func (s *Service) ProductsByMaxPrice(priceCents int64) []*model.Product {
	return s.products.FilterByMaxPrice(priceCents)
}

func (s *Service) ProductsByMinPrice(priceCents int64) []*model.Product {
	return s.products.FilterByMinPrice(priceCents)
}

func (s *Service) Product(name string) (*model.Product, error) {
	product, err := s.products.ProductByName(name)
	if err != nil {
		return nil, fmt.Errorf("storage.Product: %w", err)
	}
	return product, nil
}

// Items lists every placed unit of a named product, in placement order.
func (s *Service) Items(name string) ([]*model.Item, error) {
	product, err := s.products.ProductByName(name)
	if err != nil {
		return nil, fmt.Errorf("storage.Items: %w", err)
	}
	return s.warehouse.ItemsWithID(product.ID), nil
}

func (s *Service) ExpiredItems() []*model.Item {
	return s.warehouse.ExpiredItems(time.Now())
}

func (s *Service) ExpiringItems(window time.Duration) []*model.Item {
	return s.warehouse.ExpiringItems(time.Now(), window)
}

// ExpiredItemsFor narrows the expired query to one named product.
func (s *Service) ExpiredItemsFor(name string) ([]*model.Item, error) {
	product, err := s.products.ProductByName(name)
	if err != nil {
		return nil, fmt.Errorf("storage.ExpiredItemsFor: %w", err)
	}
	return filterByProduct(s.ExpiredItems(), product.ID), nil
}

// ExpiringItemsFor narrows the expiring query to one named product.
func (s *Service) ExpiringItemsFor(name string, window time.Duration) ([]*model.Item, error) {
	product, err := s.products.ProductByName(name)
	if err != nil {
		return nil, fmt.Errorf("storage.ExpiringItemsFor: %w", err)
	}
	return filterByProduct(s.ExpiringItems(window), product.ID), nil
}

func filterByProduct(items []*model.Item, productID string) []*model.Item {
	out := make([]*model.Item, 0, len(items))
	for _, item := range items {
		if item.ProductID == productID {
			out = append(out, item)
		}
	}
	return out
}

func (s *Service) Capacity() int { return s.warehouse.Capacity() }

func (s *Service) AvailableSpace() int { return s.warehouse.AvailableSpace }

func (s *Service) FlatMap() string { return s.warehouse.FlatMap() }

func (s *Service) Strategy() warehouse.Strategy { return s.warehouse.Strategy }

func (s *Service) SetStrategy(ctx context.Context, name string) error {
	const op = "storage.SetStrategy"

	strategy, err := warehouse.ParseStrategy(name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.warehouse.Strategy = strategy

	logger.Info(ctx, "strategy changed", logger.String("strategy", strategy.String()))
	return nil
}

// Save persists the whole session under the given name.
func (s *Service) Save(ctx context.Context, name string) error {
	const op = "storage.Save"

	if name == "" {
		return fmt.Errorf("%s: %w: empty snapshot name", op, model.ErrInvalidArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	defer cancel()

	err := s.repo.Save(ctx, &snapshot.Snapshot{
		Name:      name,
		Products:  s.products,
		Warehouse: s.warehouse,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info(ctx, "snapshot saved", logger.String("name", name))
	return nil
}

// Load replaces the current session with a saved snapshot.
func (s *Service) Load(ctx context.Context, name string) error {
	const op = "storage.Load"

	ctx, cancel := context.WithTimeout(ctx, s.ioTimeout)
	defer cancel()

	snap, err := s.repo.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.products = snap.Products
	s.warehouse = snap.Warehouse
	if s.sink != nil {
		s.warehouse.SetSink(s.sink)
	}

	logger.Info(ctx, "snapshot loaded", logger.String("name", name))
	return nil
}
