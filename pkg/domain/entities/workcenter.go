package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WorkCenter is a finite resource with a fixed capacity per time bucket
type WorkCenter struct {
	ID                WorkCenterID
	Name              string
	CapacityPerBucket decimal.Decimal // hours per bucket
}

// NewWorkCenter creates a validated WorkCenter
func NewWorkCenter(id WorkCenterID, name string, capacityPerBucket decimal.Decimal) (*WorkCenter, error) {
	if id == "" {
		return nil, fmt.Errorf("work center id cannot be empty")
	}
	if capacityPerBucket.IsNegative() {
		return nil, fmt.Errorf("work center %s: capacity cannot be negative, got %s", id, capacityPerBucket)
	}
	if name == "" {
		name = string(id)
	}

	return &WorkCenter{
		ID:                id,
		Name:              name,
		CapacityPerBucket: capacityPerBucket,
	}, nil
}
