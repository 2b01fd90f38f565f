package app

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/tarsobcaldas/storage-control/internal/catalog"
	"github.com/tarsobcaldas/storage-control/internal/config"
	"github.com/tarsobcaldas/storage-control/internal/repository/snapshot"
	"github.com/tarsobcaldas/storage-control/internal/service/storage"
	"github.com/tarsobcaldas/storage-control/internal/transport/repl"
	"github.com/tarsobcaldas/storage-control/internal/warehouse"
)

type di struct {
	mongo      *mongo.Client
	collection *mongo.Collection

	repository snapshot.Repository
	products   *catalog.List
	warehouse  *warehouse.Warehouse
	service    *storage.Service
	repl       *repl.REPL
}

func newDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		mongoClient, err := mongo.Connect(
			options.Client().ApplyURI(cfg.Mongo.DSN()),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create mongodb client: %v\n", err))
		}
		if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
			panic(fmt.Sprintf("failed to ping database: %v\n", err))
		}

		d.mongo = mongoClient
	}

	return d.mongo
}

func (d *di) SnapshotCollection(ctx context.Context) *mongo.Collection {
	if d.collection == nil {
		d.collection = d.MongoDB(ctx).
			Database(config.C().Mongo.DatabaseName()).
			Collection(config.C().Mongo.SnapshotCollection())
	}

	return d.collection
}

func (d *di) SnapshotRepository(ctx context.Context) snapshot.Repository {
	if d.repository == nil {
		cfg := config.C()
		switch cfg.Storage.Backend() {
		case "mongo":
			d.repository = snapshot.NewMongoRepository(d.SnapshotCollection(ctx))
		default:
			d.repository = snapshot.NewFileRepository(cfg.Storage.SnapshotDir())
		}
	}

	return d.repository
}

func (d *di) Catalog() *catalog.List {
	if d.products == nil {
		d.products = catalog.NewList()
		if err := catalog.Bootstrap(d.products); err != nil {
			panic(fmt.Sprintf("failed to bootstrap catalog: %v\n", err))
		}
	}

	return d.products
}

func (d *di) Warehouse() *warehouse.Warehouse {
	if d.warehouse == nil {
		cfg := config.C().Warehouse

		strategy, err := warehouse.ParseStrategy(cfg.Strategy())
		if err != nil {
			panic(fmt.Sprintf("bad warehouse strategy: %v\n", err))
		}

		d.warehouse = warehouse.New(
			cfg.Rows(), cfg.Shelves(), cfg.Levels(), cfg.Zones(),
			warehouse.WithStrategy(strategy),
		)
	}

	return d.warehouse
}

func (d *di) StorageService(ctx context.Context) *storage.Service {
	if d.service == nil {
		d.service = storage.NewService(
			d.Catalog(),
			d.Warehouse(),
			d.SnapshotRepository(ctx),
			logSink{},
			config.C().Storage.IOTimeout(),
		)
	}

	return d.service
}

func (d *di) Close(ctx context.Context) error {
	if d.mongo != nil {
		return d.mongo.Disconnect(ctx)
	}
	return nil
}
