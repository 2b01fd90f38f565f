package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tarsobcaldas/storage-control/internal/model"
)

type mongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(collection *mongo.Collection) *mongoRepository {
	return &mongoRepository{coll: collection}
}

func (r *mongoRepository) Save(ctx context.Context, snap *Snapshot) error {
	const op = "snapshot.mongo.Save"

	if snap == nil || snap.Name == "" {
		return fmt.Errorf("%s: %w: empty snapshot name", op, model.ErrInvalidArgument)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ent := SnapshotEntity{
		Name:      snap.Name,
		Document:  data,
		UpdatedAt: time.Now().UTC(),
	}
	_, err = r.coll.ReplaceOne(ctx,
		bson.M{"_id": ent.Name},
		ent,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *mongoRepository) Load(ctx context.Context, name string) (*Snapshot, error) {
	const op = "snapshot.mongo.Load"

	var ent SnapshotEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w: %q", op, model.ErrSnapshotNotFound, name)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(ent.Document, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &snap, nil
}
