// Package store holds sample view-model types used to exercise path binding:
// nested structs, sequences of sub-objects, sequences of scalars and fields
// that are private by convention.
package store

import (
	"time"
)

// Address is a postal address attached to a customer.
type Address struct {
	Street string `bind:"street"`
	City   string `bind:"city"`
}

// Customer represents the user placing orders.
type Customer struct {
	ID       int64    `bind:"id"`
	Email    string   `bind:"email"`
	FullName string   `bind:"name"`
	Address  *Address `bind:"address"`
	IsActive bool     `bind:"active"`

	notes string // unexported, never bound
}

// OrderItem represents a specific product line within an order.
type OrderItem struct {
	ProductID int64  `bind:"product_id"`
	Name      string `bind:"name"`
	Quantity  int    `bind:"quantity"`
	UnitPrice int64  `bind:"unit_price"` // cents
}

// Order represents a transaction made by a customer.
type Order struct {
	ID        int64       `bind:"id"`
	Customer  *Customer   `bind:"customer"`
	Status    OrderStatus `bind:"status"`
	Items     []OrderItem `bind:"items"`
	Tags      []string    `bind:"tags"` // bound as a single field
	OrderedAt time.Time   `bind:"ordered_at"`

	Revision int `bind:"_revision"` // private by convention
}

// OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// Ledger is a view-model root holding several orders.
type Ledger struct {
	Owner  string    `bind:"owner"`
	Orders []*Order  `bind:"orders"`
	Scores []float64 `bind:"scores"`
}

// SampleOrder returns a small, fully populated order.
func SampleOrder() *Order {
	return &Order{
		ID: 1001,
		Customer: &Customer{
			ID:       7,
			Email:    "ada@example.com",
			FullName: "Ada Lovelace",
			Address:  &Address{Street: "12 St James's Square", City: "London"},
			IsActive: true,
			notes:    "prefers email",
		},
		Status: StatusPaid,
		Items: []OrderItem{
			{ProductID: 1, Name: "Difference Engine", Quantity: 1, UnitPrice: 150000},
			{ProductID: 2, Name: "Punch Cards", Quantity: 200, UnitPrice: 5},
		},
		Tags:      []string{"priority", "gift"},
		OrderedAt: time.Date(1843, time.July, 1, 12, 0, 0, 0, time.UTC),
		Revision:  3,
	}
}

// SampleLedger returns a ledger with three orders.
func SampleLedger() *Ledger {
	first := SampleOrder()

	second := SampleOrder()
	second.ID = 1002
	second.Customer = &Customer{ID: 8, Email: "charles@example.com", FullName: "Charles Babbage"}
	second.Items = nil

	third := SampleOrder()
	third.ID = 1003
	third.Customer = &Customer{ID: 9, Email: "mary@example.com", FullName: "Mary Somerville"}
	third.Items = third.Items[:1]

	return &Ledger{
		Owner:  "analytical",
		Orders: []*Order{first, second, third},
		Scores: []float64{0.5, 0.75, 1},
	}
}
