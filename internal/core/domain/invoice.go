package domain

import (
	"errors"
	"time"
)

var (
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrEmptyInvoice     = errors.New("invoice has no line items")
	ErrDuplicateInvoice = errors.New("invoice number already exists")
)

// Invoice is a purchase invoice issued to a customer. Line totals and
// the grand total are computed at creation and stored denormalized.
type Invoice struct {
	ID          string        `json:"id" bson:"_id,omitempty"`
	Number      string        `json:"number" bson:"number"`
	CustomerID  string        `json:"customer_id" bson:"customer_id"`
	WarehouseID string        `json:"warehouse_id" bson:"warehouse_id"`
	Lines       []InvoiceLine `json:"lines" bson:"lines"`
	Net         int64         `json:"net" bson:"net"`
	Tax         int64         `json:"tax" bson:"tax"`
	Total       int64         `json:"total" bson:"total"`
	IssuedBy    string        `json:"issued_by" bson:"issued_by"` // user id of the seller
	IssuedAt    time.Time     `json:"issued_at" bson:"issued_at"`
}

// InvoiceLine is one product position on an invoice.
type InvoiceLine struct {
	ProductID string `json:"product_id" bson:"product_id"`
	SKU       string `json:"sku" bson:"sku"`
	Name      string `json:"name" bson:"name"`
	Quantity  int64  `json:"quantity" bson:"quantity"`
	UnitPrice int64  `json:"unit_price" bson:"unit_price"`
	Subtotal  int64  `json:"subtotal" bson:"subtotal"`
}

// IVARate is the Chilean value-added tax applied to invoice net totals.
const IVARate = 0.19

// ComputeTotals fills Subtotal on every line plus Net, Tax and Total.
func (inv *Invoice) ComputeTotals() {
	var net int64
	for i := range inv.Lines {
		inv.Lines[i].Subtotal = inv.Lines[i].Quantity * inv.Lines[i].UnitPrice
		net += inv.Lines[i].Subtotal
	}
	inv.Net = net
	inv.Tax = int64(float64(net) * IVARate)
	inv.Total = inv.Net + inv.Tax
}
