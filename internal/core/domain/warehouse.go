package domain

import (
	"errors"
	"time"
)

var ErrWarehouseNotFound = errors.New("warehouse not found")

// Warehouse is a physical storage location holding product stock.
type Warehouse struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Code      string    `json:"code" bson:"code"`
	Name      string    `json:"name" bson:"name"`
	Address   Address   `json:"address" bson:"address"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
