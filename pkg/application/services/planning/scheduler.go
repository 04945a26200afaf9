package planning

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// SchedulerConfig bounds one scheduling run
type SchedulerConfig struct {
	// PlanStart is the start of bucket 0.
	PlanStart time.Time
	// HorizonBuckets caps how far ahead a step may be placed.
	HorizonBuckets int
	// BucketLength is the wall-clock span of one bucket.
	BucketLength time.Duration
}

// DefaultSchedulerConfig returns a one-year daily-bucket configuration
// starting at midnight UTC today
func DefaultSchedulerConfig() SchedulerConfig {
	now := time.Now().UTC()
	return SchedulerConfig{
		PlanStart:      time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		HorizonBuckets: 365,
		BucketLength:   24 * time.Hour,
	}
}

// Scheduler places exploded demand on work centers with a greedy list
// scheduler: orders by priority, then due date, then document order; each
// node at the earliest bucket that satisfies precedence and capacity. No
// preemption and no reordering once an order's placement begins. The
// result is feasible, not optimal.
type Scheduler struct {
	config SchedulerConfig
	logger *zap.Logger
}

// NewScheduler creates a scheduler with the given configuration
func NewScheduler(config SchedulerConfig, logger *zap.Logger) *Scheduler {
	if config.HorizonBuckets <= 0 {
		config.HorizonBuckets = 365
	}
	if config.BucketLength <= 0 {
		config.BucketLength = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{config: config, logger: logger}
}

// ScheduleResult is the scheduler's output for one run
type ScheduleResult struct {
	Entries     []entities.ScheduleEntry
	Completions []entities.OrderCompletion
	Infeasible  []entities.InfeasibleOrder
}

// placement records one reservation so an infeasible order can be backed
// out without disturbing other orders
type placement struct {
	node   *DemandNode
	bucket int
	offset decimal.Decimal
}

// capacityBook is the slice of the capacity ledger the scheduler needs
type capacityBook interface {
	FirstFit(id entities.WorkCenterID, earliest int, hours decimal.Decimal, horizon int) (int, bool)
	Reserve(id entities.WorkCenterID, bucket int, hours decimal.Decimal) (decimal.Decimal, error)
	Release(id entities.WorkCenterID, bucket int, hours decimal.Decimal)
	Capacity(id entities.WorkCenterID) (decimal.Decimal, error)
}

// Schedule places every tree's nodes on the ledger. Trees are processed by
// order priority (lower value first), earlier due date, then input order.
// An order that cannot be fully placed is reported infeasible, its
// reservations are released, and the remaining orders still schedule. A
// refused reservation in a bucket FirstFit approved is an
// internal-consistency bug and aborts the run with an error.
func (s *Scheduler) Schedule(ctx context.Context, trees []*DemandTree, ledger capacityBook) (*ScheduleResult, error) {
	ordered := make([]*DemandTree, len(trees))
	copy(ordered, trees)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Order, ordered[j].Order
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return a.DueDate.Before(b.DueDate)
	})

	result := &ScheduleResult{}

	for _, tree := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		placements, blocked, err := s.placeOrder(tree, ledger)
		if err != nil {
			return nil, err
		}
		if blocked != nil {
			for _, p := range placements {
				ledger.Release(p.node.Step.WorkCenterID, p.bucket, p.node.Hours)
			}
			result.Infeasible = append(result.Infeasible, *blocked)
			s.logger.Warn("order infeasible",
				zap.String("order", string(blocked.OrderID)),
				zap.String("step", string(blocked.BlockingStep)),
				zap.String("reason", blocked.Reason))
			continue
		}

		completion := s.appendEntries(result, tree, placements)
		result.Completions = append(result.Completions, completion)
		s.logger.Debug("order scheduled",
			zap.String("order", string(tree.Order.ID)),
			zap.Int("steps", len(placements)),
			zap.Time("completion", completion.Completion))
	}

	return result, nil
}

// placeOrder greedily places one tree's nodes in topological order. On the
// first unplaceable node it stops and describes the blockage; the caller
// releases whatever was reserved so far. A reservation the ledger refuses
// after FirstFit approved it is returned as an error, not a blockage.
func (s *Scheduler) placeOrder(tree *DemandTree, ledger capacityBook) ([]placement, *entities.InfeasibleOrder, error) {
	placements := make([]placement, 0, len(tree.Nodes))
	buckets := make([]int, len(tree.Nodes))

	for _, node := range tree.Nodes {
		earliest := 0
		for _, pred := range node.Predecessors {
			if buckets[pred]+1 > earliest {
				earliest = buckets[pred] + 1
			}
		}

		wc := node.Step.WorkCenterID
		bucket, ok := ledger.FirstFit(wc, earliest, node.Hours, s.config.HorizonBuckets)
		if !ok {
			return placements, &entities.InfeasibleOrder{
				OrderID:      tree.Order.ID,
				BlockingStep: node.Step.ID,
				Reason:       s.blockReason(node, ledger),
			}, nil
		}

		offset, err := ledger.Reserve(wc, bucket, node.Hours)
		if err != nil {
			return placements, nil, fmt.Errorf("placing step %s of order %s: %w",
				node.Step.ID, tree.Order.ID, err)
		}

		buckets[node.Index] = bucket
		placements = append(placements, placement{node: node, bucket: bucket, offset: offset})
	}

	return placements, nil, nil
}

// blockReason explains why a node can never be placed
func (s *Scheduler) blockReason(node *DemandNode, ledger capacityBook) string {
	capacity, err := ledger.Capacity(node.Step.WorkCenterID)
	if err != nil {
		return err.Error()
	}
	if capacity.IsZero() {
		return fmt.Sprintf("work center %s has zero capacity", node.Step.WorkCenterID)
	}
	if node.Hours.GreaterThan(capacity) {
		return fmt.Sprintf("step needs %s h but work center %s offers %s h per bucket",
			node.Hours, node.Step.WorkCenterID, capacity)
	}
	return fmt.Sprintf("no remaining capacity on work center %s within %d buckets",
		node.Step.WorkCenterID, s.config.HorizonBuckets)
}

// appendEntries converts placements to schedule entries with concrete
// timestamps and computes the order's completion and lateness. A work
// center's per-bucket capacity may exceed the bucket's wall-clock span
// (parallel machines), letting a producer run past the bucket boundary;
// each consumer is held until every one of its producers has ended.
func (s *Scheduler) appendEntries(result *ScheduleResult, tree *DemandTree, placements []placement) entities.OrderCompletion {
	var completion time.Time
	ends := make([]time.Time, len(tree.Nodes))

	for _, p := range placements {
		start := s.config.PlanStart.
			Add(time.Duration(p.bucket) * s.config.BucketLength).
			Add(durationFromHours(p.offset))
		for _, pred := range p.node.Predecessors {
			if ends[pred].After(start) {
				start = ends[pred]
			}
		}
		end := start.Add(durationFromHours(p.node.Hours))
		ends[p.node.Index] = end

		result.Entries = append(result.Entries, entities.ScheduleEntry{
			OrderID:      tree.Order.ID,
			StepID:       p.node.Step.ID,
			PartID:       p.node.Step.PartID,
			WorkCenterID: p.node.Step.WorkCenterID,
			Bucket:       p.bucket,
			Quantity:     p.node.Quantity,
			Hours:        p.node.Hours,
			Start:        start,
			End:          end,
		})

		if end.After(completion) {
			completion = end
		}
	}

	return entities.OrderCompletion{
		OrderID:    tree.Order.ID,
		PartID:     tree.Order.PartID,
		Completion: completion,
		DueDate:    tree.Order.DueDate,
		Lateness:   completion.Sub(tree.Order.DueDate),
	}
}

// durationFromHours converts decimal hours to a wall-clock duration
func durationFromHours(hours decimal.Decimal) time.Duration {
	return time.Duration(hours.Mul(decimal.NewFromInt(int64(time.Hour))).IntPart())
}
