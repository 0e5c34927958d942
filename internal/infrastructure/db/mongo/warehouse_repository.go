package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soportec/inventory-system/internal/core/domain"
)

const collectionWarehouses = "warehouses"

// WarehouseRepository implements ports.WarehouseRepository using MongoDB.
type WarehouseRepository struct {
	col *mongo.Collection
}

func NewWarehouseRepository(db *mongo.Database) *WarehouseRepository {
	return &WarehouseRepository{col: db.Collection(collectionWarehouses)}
}

func (r *WarehouseRepository) Create(ctx context.Context, w *domain.Warehouse) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, w)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("warehouse code %s already exists", w.Code)
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

func (r *WarehouseRepository) FindByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *WarehouseRepository) FindByCode(ctx context.Context, code string) (*domain.Warehouse, error) {
	return r.findOne(ctx, bson.M{"code": code})
}

func (r *WarehouseRepository) findOne(ctx context.Context, filter bson.M) (*domain.Warehouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var w domain.Warehouse
	err := r.col.FindOne(ctx, filter).Decode(&w)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("find warehouse: %w", err)
	}
	return &w, nil
}

func (r *WarehouseRepository) Update(ctx context.Context, w *domain.Warehouse) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": w.ID}, w)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrWarehouseNotFound
	}
	return nil
}

func (r *WarehouseRepository) List(ctx context.Context) ([]*domain.Warehouse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer cur.Close(ctx)

	var warehouses []*domain.Warehouse
	if err := cur.All(ctx, &warehouses); err != nil {
		return nil, fmt.Errorf("decode warehouses: %w", err)
	}
	return warehouses, nil
}

// EnsureIndexes creates necessary indexes on the warehouses collection.
func (r *WarehouseRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
