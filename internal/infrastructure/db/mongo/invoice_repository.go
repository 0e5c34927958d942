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

const collectionInvoices = "invoices"

// InvoiceRepository implements ports.InvoiceRepository using MongoDB.
// Invoices are immutable once written; there is no Update.
type InvoiceRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	return &InvoiceRepository{db: db, col: db.Collection(collectionInvoices)}
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, inv)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateInvoice
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *InvoiceRepository) FindByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	return r.findOne(ctx, bson.M{"number": number})
}

func (r *InvoiceRepository) findOne(ctx context.Context, filter bson.M) (*domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var inv domain.Invoice
	err := r.col.FindOne(ctx, filter).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("find invoice: %w", err)
	}
	return &inv, nil
}

// List returns one page of invoices matching filter, newest first, plus
// the total count.
func (r *InvoiceRepository) List(ctx context.Context, filter ports.ListInvoicesFilter) ([]*domain.Invoice, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.CustomerID != "" {
		query["customer_id"] = filter.CustomerID
	}
	issued := bson.M{}
	if !filter.DateFrom.IsZero() {
		issued["$gte"] = filter.DateFrom
	}
	if !filter.DateTo.IsZero() {
		issued["$lte"] = filter.DateTo
	}
	if len(issued) > 0 {
		query["issued_at"] = issued
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count invoices: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "issued_at", Value: -1}}).
		SetSkip(int64(filter.Page-1) * int64(filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list invoices: %w", err)
	}
	defer cur.Close(ctx)

	var invoices []*domain.Invoice
	if err := cur.All(ctx, &invoices); err != nil {
		return nil, 0, fmt.Errorf("decode invoices: %w", err)
	}
	return invoices, total, nil
}

// NextNumber reserves the next sequential invoice number, e.g. F-000042.
func (r *InvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	seq, err := nextSequence(ctx, r.db, "invoices")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("F-%06d", seq), nil
}

// EnsureIndexes creates necessary indexes on the invoices collection.
func (r *InvoiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "issued_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
