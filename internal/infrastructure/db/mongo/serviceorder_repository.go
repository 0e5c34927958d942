package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soportec/inventory-system/internal/core/domain"
	"github.com/soportec/inventory-system/internal/core/ports"
)

const collectionServiceOrders = "service_orders"

// ServiceOrderRepository implements ports.ServiceOrderRepository using MongoDB.
type ServiceOrderRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewServiceOrderRepository(db *mongo.Database) *ServiceOrderRepository {
	return &ServiceOrderRepository{db: db, col: db.Collection(collectionServiceOrders)}
}

func (r *ServiceOrderRepository) Create(ctx context.Context, o *domain.ServiceOrder) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, o)
	if err != nil {
		return fmt.Errorf("insert service order: %w", err)
	}
	return nil
}

func (r *ServiceOrderRepository) FindByID(ctx context.Context, id string) (*domain.ServiceOrder, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.ServiceOrder
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceOrderNotFound
		}
		return nil, fmt.Errorf("find service order: %w", err)
	}
	return &o, nil
}

func (r *ServiceOrderRepository) Update(ctx context.Context, o *domain.ServiceOrder) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o)
	if err != nil {
		return fmt.Errorf("update service order: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrServiceOrderNotFound
	}
	return nil
}

// List returns one page of service orders matching filter, newest first,
// plus the total count.
func (r *ServiceOrderRepository) List(ctx context.Context, filter ports.ListServiceOrdersFilter) ([]*domain.ServiceOrder, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	if filter.TechnicianID != "" {
		query["technician_id"] = filter.TechnicianID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count service orders: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list service orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.ServiceOrder
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("decode service orders: %w", err)
	}
	return orders, total, nil
}

// NextNumber reserves the next sequential order number, e.g. OS-00042.
func (r *ServiceOrderRepository) NextNumber(ctx context.Context) (string, error) {
	seq, err := nextSequence(ctx, r.db, "service_orders")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OS-%05d", seq), nil
}

// EnsureIndexes creates necessary indexes on the service orders collection.
func (r *ServiceOrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
