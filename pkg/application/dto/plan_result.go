package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// PlanResult contains the complete output of one scheduling run
type PlanResult struct {
	RunID       string
	GeneratedAt time.Time
	PlanStart   time.Time

	Rows        []ScheduleRow
	Completions []entities.OrderCompletion
	LateOrders  []entities.OrderCompletion
	Infeasible  []entities.InfeasibleOrder

	Utilization []WorkCenterUtilization
	Ledger      []LedgerRow

	RawMaterialsInferred []entities.PartID
	RawMaterialsDeclared []entities.PartID
	Shortages            []entities.Shortage
	Warnings             []entities.Warning
}

// ScheduleRow is one presentation-ready schedule line
type ScheduleRow struct {
	OrderID      entities.OrderID
	StepID       entities.StepID
	PartID       entities.PartID
	WorkCenterID entities.WorkCenterID
	Bucket       int
	Quantity     decimal.Decimal
	Hours        decimal.Decimal
	Start        time.Time
	End          time.Time
}

// WorkCenterUtilization aggregates load per work center over the buckets
// the schedule actually touched
type WorkCenterUtilization struct {
	WorkCenterID  entities.WorkCenterID
	BucketsUsed   int
	HoursUsed     decimal.Decimal
	HoursCapacity decimal.Decimal
	Percent       decimal.Decimal
}

// LedgerRow is one work center/bucket slice of the capacity ledger
type LedgerRow struct {
	WorkCenterID entities.WorkCenterID
	Bucket       int
	Used         decimal.Decimal
	Remaining    decimal.Decimal
}
