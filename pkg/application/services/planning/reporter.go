package planning

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/shopsched/pkg/application/dto"
	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// Reporter flattens a scheduling run into the presentation-ready plan
// result. Pure transformation; every business decision happened upstream.
type Reporter struct{}

// NewReporter creates a new reporter
func NewReporter() *Reporter {
	return &Reporter{}
}

// Build assembles the plan result from the schedule, the consumed ledger,
// the exploded trees and the raw-material analysis
func (r *Reporter) Build(
	schedule *ScheduleResult,
	ledger *CapacityLedger,
	trees []*DemandTree,
	inferred []entities.PartID,
	declared []*entities.RawMaterialDecl,
	warnings []entities.Warning,
) *dto.PlanResult {
	result := &dto.PlanResult{
		Completions:          schedule.Completions,
		Infeasible:           schedule.Infeasible,
		RawMaterialsInferred: inferred,
		Warnings:             warnings,
	}

	result.Rows = r.scheduleRows(schedule.Entries)
	result.LateOrders = r.lateOrders(schedule.Completions)
	result.Ledger = r.ledgerRows(ledger)
	result.Utilization = r.utilization(ledger)

	for _, decl := range declared {
		result.RawMaterialsDeclared = append(result.RawMaterialsDeclared, decl.PartID)
	}
	result.Shortages = r.shortages(trees, declared, schedule.Infeasible)

	return result
}

func (r *Reporter) scheduleRows(entries []entities.ScheduleEntry) []dto.ScheduleRow {
	rows := make([]dto.ScheduleRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, dto.ScheduleRow{
			OrderID:      entry.OrderID,
			StepID:       entry.StepID,
			PartID:       entry.PartID,
			WorkCenterID: entry.WorkCenterID,
			Bucket:       entry.Bucket,
			Quantity:     entry.Quantity,
			Hours:        entry.Hours,
			Start:        entry.Start,
			End:          entry.End,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].Start.Equal(rows[j].Start) {
			return rows[i].Start.Before(rows[j].Start)
		}
		return rows[i].OrderID < rows[j].OrderID
	})
	return rows
}

func (r *Reporter) lateOrders(completions []entities.OrderCompletion) []entities.OrderCompletion {
	var late []entities.OrderCompletion
	for _, c := range completions {
		if c.Late() {
			late = append(late, c)
		}
	}
	sort.SliceStable(late, func(i, j int) bool { return late[i].Lateness > late[j].Lateness })
	return late
}

func (r *Reporter) ledgerRows(ledger *CapacityLedger) []dto.LedgerRow {
	slices := ledger.Rows()
	rows := make([]dto.LedgerRow, 0, len(slices))
	for _, s := range slices {
		rows = append(rows, dto.LedgerRow{
			WorkCenterID: s.WorkCenterID,
			Bucket:       s.Bucket,
			Used:         s.Used,
			Remaining:    s.Remaining,
		})
	}
	return rows
}

// utilization aggregates per work center over the buckets the schedule
// touched: used hours against capacity across the work center's makespan
func (r *Reporter) utilization(ledger *CapacityLedger) []dto.WorkCenterUtilization {
	perCenter := make(map[entities.WorkCenterID]*dto.WorkCenterUtilization)
	lastBucket := make(map[entities.WorkCenterID]int)

	for _, s := range ledger.Rows() {
		u, ok := perCenter[s.WorkCenterID]
		if !ok {
			u = &dto.WorkCenterUtilization{
				WorkCenterID: s.WorkCenterID,
				HoursUsed:    decimal.Zero,
			}
			perCenter[s.WorkCenterID] = u
		}
		u.BucketsUsed++
		u.HoursUsed = u.HoursUsed.Add(s.Used)
		if s.Bucket > lastBucket[s.WorkCenterID] {
			lastBucket[s.WorkCenterID] = s.Bucket
		}
	}

	var out []dto.WorkCenterUtilization
	for id, u := range perCenter {
		capacity, err := ledger.Capacity(id)
		if err != nil {
			continue
		}
		span := decimal.NewFromInt(int64(lastBucket[id] + 1))
		u.HoursCapacity = capacity.Mul(span)
		if u.HoursCapacity.IsPositive() {
			u.Percent = u.HoursUsed.Div(u.HoursCapacity).Mul(decimal.NewFromInt(100)).Round(1)
		}
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].WorkCenterID < out[j].WorkCenterID })
	return out
}

// shortages compares aggregate raw-material demand of the scheduled
// orders against declared on-hand stock. Declarations without an on-hand
// quantity are untracked and never short.
func (r *Reporter) shortages(
	trees []*DemandTree,
	declared []*entities.RawMaterialDecl,
	infeasible []entities.InfeasibleOrder,
) []entities.Shortage {
	onHand := make(map[entities.PartID]decimal.Decimal)
	for _, decl := range declared {
		if decl.OnHand != nil {
			onHand[decl.PartID] = *decl.OnHand
		}
	}
	if len(onHand) == 0 {
		return nil
	}

	skipped := make(map[entities.OrderID]bool, len(infeasible))
	for _, inf := range infeasible {
		skipped[inf.OrderID] = true
	}

	required := make(map[entities.PartID]decimal.Decimal)
	consumers := make(map[entities.PartID][]entities.OrderID)
	for _, tree := range trees {
		if skipped[tree.Order.ID] {
			continue
		}
		for part, qty := range tree.RawRequirements {
			if _, tracked := onHand[part]; !tracked {
				continue
			}
			required[part] = required[part].Add(qty)
			consumers[part] = append(consumers[part], tree.Order.ID)
		}
	}

	parts := make([]entities.PartID, 0, len(required))
	for part := range required {
		parts = append(parts, part)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })

	var shortages []entities.Shortage
	for _, part := range parts {
		missing := required[part].Sub(onHand[part])
		if !missing.IsPositive() {
			continue
		}
		shortages = append(shortages, entities.Shortage{
			PartID:   part,
			Required: required[part],
			OnHand:   onHand[part],
			Missing:  missing,
			Orders:   consumers[part],
		})
	}
	return shortages
}
