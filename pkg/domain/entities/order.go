package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerOrder is external demand for a finished part. Priority is a
// rank, not a weight: lower values are more urgent. Ties break on earlier
// due date, then on document order.
type CustomerOrder struct {
	ID       OrderID
	PartID   PartID
	Quantity decimal.Decimal
	DueDate  time.Time
	Priority int
}

// NewCustomerOrder creates a validated CustomerOrder
func NewCustomerOrder(
	id OrderID,
	partID PartID,
	quantity decimal.Decimal,
	dueDate time.Time,
	priority int,
) (*CustomerOrder, error) {
	if id == "" {
		return nil, fmt.Errorf("order id cannot be empty")
	}
	if partID == "" {
		return nil, fmt.Errorf("order %s: part id cannot be empty", id)
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("order %s: quantity must be positive, got %s", id, quantity)
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("order %s: due date is required", id)
	}

	return &CustomerOrder{
		ID:       id,
		PartID:   partID,
		Quantity: quantity,
		DueDate:  dueDate,
		Priority: priority,
	}, nil
}
