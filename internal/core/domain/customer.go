package domain

import (
	"errors"
	"time"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrDuplicateRUT     = errors.New("customer rut already exists")
)

// Customer is a client of the business, person or company, identified
// by their Chilean RUT.
type Customer struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	RUT       string    `json:"rut" bson:"rut"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address   Address   `json:"address" bson:"address"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Address is a Chilean postal address; RegionID and CommuneID reference
// the static location tables.
type Address struct {
	Street    string `json:"street" bson:"street"`
	RegionID  int    `json:"region_id" bson:"region_id"`
	CommuneID int    `json:"commune_id" bson:"commune_id"`
}
