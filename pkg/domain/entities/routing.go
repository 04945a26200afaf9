package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StepInput is one consumed part on a routing step, quantity per output unit
type StepInput struct {
	PartID PartID
	Qty    decimal.Decimal
}

// RoutingStep is a single operation in a part's routing. It produces
// OutputQty units of Part per run, consumes Inputs per output unit, and
// occupies its work center for ProcTimePerUnit hours per output unit.
// Steps producing the same part form an ordered chain by SequenceNo.
type RoutingStep struct {
	ID              StepID
	PartID          PartID
	OutputQty       decimal.Decimal
	Inputs          []StepInput
	WorkCenterID    WorkCenterID
	ProcTimePerUnit decimal.Decimal
	SequenceNo      int
	MinBatchQty     decimal.Decimal // zero = exact scaling, no floor
}

// NewRoutingStep creates a validated RoutingStep
func NewRoutingStep(
	id StepID,
	partID PartID,
	outputQty decimal.Decimal,
	inputs []StepInput,
	workCenterID WorkCenterID,
	procTimePerUnit decimal.Decimal,
	sequenceNo int,
) (*RoutingStep, error) {
	if id == "" {
		return nil, fmt.Errorf("step id cannot be empty")
	}
	if partID == "" {
		return nil, fmt.Errorf("step %s: output part id cannot be empty", id)
	}
	if !outputQty.IsPositive() {
		return nil, fmt.Errorf("step %s: output quantity must be positive, got %s", id, outputQty)
	}
	if workCenterID == "" {
		return nil, fmt.Errorf("step %s: work center id cannot be empty", id)
	}
	if procTimePerUnit.IsNegative() {
		return nil, fmt.Errorf("step %s: processing time cannot be negative, got %s", id, procTimePerUnit)
	}
	for _, in := range inputs {
		if in.PartID == "" {
			return nil, fmt.Errorf("step %s: input part id cannot be empty", id)
		}
		if in.PartID == partID {
			return nil, fmt.Errorf("step %s: part %s cannot be an input to its own production", id, partID)
		}
		if !in.Qty.IsPositive() {
			return nil, fmt.Errorf("step %s: input %s quantity must be positive, got %s", id, in.PartID, in.Qty)
		}
	}

	return &RoutingStep{
		ID:              id,
		PartID:          partID,
		OutputQty:       outputQty,
		Inputs:          inputs,
		WorkCenterID:    workCenterID,
		ProcTimePerUnit: procTimePerUnit,
		SequenceNo:      sequenceNo,
	}, nil
}
