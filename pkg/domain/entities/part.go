package entities

import "fmt"

// PartID uniquely identifies a part
type PartID string

// StepID uniquely identifies a routing step
type StepID string

// WorkCenterID uniquely identifies a work center
type WorkCenterID string

// OrderID uniquely identifies a customer order
type OrderID string

// Part represents immutable part reference data
type Part struct {
	ID            PartID
	Name          string
	UnitOfMeasure string
}

// NewPart creates a validated Part
func NewPart(id PartID, name, unitOfMeasure string) (*Part, error) {
	if id == "" {
		return nil, fmt.Errorf("part id cannot be empty")
	}
	if name == "" {
		name = string(id)
	}
	if unitOfMeasure == "" {
		unitOfMeasure = "EA"
	}

	return &Part{
		ID:            id,
		Name:          name,
		UnitOfMeasure: unitOfMeasure,
	}, nil
}
