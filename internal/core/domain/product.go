package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateSKU      = errors.New("product sku already exists")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is a catalog entry for equipment or parts sold and serviced
// by the business.
type Product struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	SKU         string       `json:"sku" bson:"sku"`
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description,omitempty" bson:"description,omitempty"`
	Category    string       `json:"category" bson:"category"`
	Brand       string       `json:"brand,omitempty" bson:"brand,omitempty"`
	UnitPrice   int64        `json:"unit_price" bson:"unit_price"` // CLP, no decimals
	Stock       []StockEntry `json:"stock,omitempty" bson:"stock,omitempty"`
	Active      bool         `json:"active" bson:"active"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" bson:"updated_at"`
}

// StockEntry is the on-hand quantity of a product in one warehouse.
type StockEntry struct {
	WarehouseID string `json:"warehouse_id" bson:"warehouse_id"`
	Quantity    int64  `json:"quantity" bson:"quantity"`
}

// QuantityIn returns the on-hand quantity in the given warehouse.
func (p *Product) QuantityIn(warehouseID string) int64 {
	for _, s := range p.Stock {
		if s.WarehouseID == warehouseID {
			return s.Quantity
		}
	}
	return 0
}
