package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleEntry is one placed step instance: a quantity run on a work
// center within a single time bucket. Start and End are derived from the
// plan start, the bucket index, the intra-bucket offset on the work center
// and the producing entries' end times, so a consumer never starts before
// its producers end.
type ScheduleEntry struct {
	OrderID      OrderID
	StepID       StepID
	PartID       PartID
	WorkCenterID WorkCenterID
	Bucket       int
	Quantity     decimal.Decimal
	Hours        decimal.Decimal
	Start        time.Time
	End          time.Time
}

// OrderCompletion summarizes one scheduled order
type OrderCompletion struct {
	OrderID    OrderID
	PartID     PartID
	Completion time.Time
	DueDate    time.Time
	Lateness   time.Duration // negative = early
}

// Late reports whether the order finished after its due date
func (c OrderCompletion) Late() bool {
	return c.Lateness > 0
}

// InfeasibleOrder is a reported condition, not an error: the order could
// not be placed and the rest of the run continued without it.
type InfeasibleOrder struct {
	OrderID      OrderID
	BlockingStep StepID
	Reason       string
}

// RawMaterialDecl is a user-declared raw material, cross-checked against
// inference. OnHand is optional; nil means stock is not tracked and no
// shortage is computed for the part.
type RawMaterialDecl struct {
	PartID PartID
	OnHand *decimal.Decimal
}

// Shortage reports insufficient declared stock for a raw material
type Shortage struct {
	PartID   PartID
	Required decimal.Decimal
	OnHand   decimal.Decimal
	Missing  decimal.Decimal
	Orders   []OrderID
}

// WarningCode classifies validation warnings
type WarningCode string

const (
	// WarnDeclaredNotRaw flags a declared raw material that some step produces
	WarnDeclaredNotRaw WarningCode = "declared_not_raw"
	// WarnInferredNotDeclared flags an inferred raw material missing from a
	// non-empty declared list
	WarnInferredNotDeclared WarningCode = "inferred_not_declared"
	// WarnUnknownPart flags an order or declaration referencing a part the
	// catalog has never seen
	WarnUnknownPart WarningCode = "unknown_part"
	// WarnShadowedStep flags a duplicate (part, sequence) routing step that
	// lost the first-declared tie-break
	WarnShadowedStep WarningCode = "shadowed_step"
	// WarnBOMCycle flags a cycle in the part consumption graph; orders
	// touching it fail individually during explosion
	WarnBOMCycle WarningCode = "bom_cycle"
)

// Warning is a non-fatal validation finding surfaced with the plan
type Warning struct {
	Code    WarningCode
	Entity  string
	Message string
}
