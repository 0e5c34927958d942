package domain

import (
	"errors"
	"time"
)

// ServiceOrderStatus represents the lifecycle state of a service order.
type ServiceOrderStatus string

const (
	OrderReceived   ServiceOrderStatus = "received"
	OrderDiagnosing ServiceOrderStatus = "diagnosing"
	OrderRepairing  ServiceOrderStatus = "repairing"
	OrderReady      ServiceOrderStatus = "ready"
	OrderDelivered  ServiceOrderStatus = "delivered"
	OrderCancelled  ServiceOrderStatus = "cancelled"
)

// validOrderTransitions defines the allowed state machine transitions.
var validOrderTransitions = map[ServiceOrderStatus][]ServiceOrderStatus{
	OrderReceived:   {OrderDiagnosing, OrderCancelled},
	OrderDiagnosing: {OrderRepairing, OrderReady, OrderCancelled},
	OrderRepairing:  {OrderReady, OrderCancelled},
	OrderReady:      {OrderDelivered},
}

var (
	ErrServiceOrderNotFound = errors.New("service order not found")
	ErrInvalidTransition    = errors.New("invalid status transition")
)

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s ServiceOrderStatus) CanTransitionTo(next ServiceOrderStatus) bool {
	for _, allowed := range validOrderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ServiceOrder tracks a piece of customer equipment through the repair
// workshop.
type ServiceOrder struct {
	ID            string              `json:"id" bson:"_id,omitempty"`
	Number        string              `json:"number" bson:"number"`
	CustomerID    string              `json:"customer_id" bson:"customer_id"`
	Equipment     string              `json:"equipment" bson:"equipment"`
	SerialNumber  string              `json:"serial_number,omitempty" bson:"serial_number,omitempty"`
	Problem       string              `json:"problem" bson:"problem"`
	Diagnosis     string              `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	TechnicianID  string              `json:"technician_id,omitempty" bson:"technician_id,omitempty"` // user id
	Status        ServiceOrderStatus  `json:"status" bson:"status"`
	StatusHistory []OrderStatusChange `json:"status_history" bson:"status_history"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

// OrderStatusChange is one entry in a service order's status history.
type OrderStatusChange struct {
	Status    ServiceOrderStatus `json:"status" bson:"status"`
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	ByUserID  string             `json:"by_user_id,omitempty" bson:"by_user_id,omitempty"`
}
