package planning

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// CapacityLedger tracks remaining capacity per work center per time
// bucket for one scheduling run. The scheduler owns the ledger
// exclusively; nothing is shared across runs.
type CapacityLedger struct {
	capacity map[entities.WorkCenterID]decimal.Decimal
	used     map[entities.WorkCenterID][]decimal.Decimal
}

// NewCapacityLedger creates a ledger over the given work centers
func NewCapacityLedger(workCenters []*entities.WorkCenter) *CapacityLedger {
	ledger := &CapacityLedger{
		capacity: make(map[entities.WorkCenterID]decimal.Decimal, len(workCenters)),
		used:     make(map[entities.WorkCenterID][]decimal.Decimal, len(workCenters)),
	}
	for _, wc := range workCenters {
		ledger.capacity[wc.ID] = wc.CapacityPerBucket
	}
	return ledger
}

// Capacity returns the per-bucket capacity of a work center
func (l *CapacityLedger) Capacity(id entities.WorkCenterID) (decimal.Decimal, error) {
	capacity, exists := l.capacity[id]
	if !exists {
		return decimal.Zero, fmt.Errorf("work center not in ledger: %s", id)
	}
	return capacity, nil
}

// Used returns the hours already reserved in a bucket
func (l *CapacityLedger) Used(id entities.WorkCenterID, bucket int) decimal.Decimal {
	buckets := l.used[id]
	if bucket < 0 || bucket >= len(buckets) {
		return decimal.Zero
	}
	return buckets[bucket]
}

// Remaining returns the unreserved hours in a bucket
func (l *CapacityLedger) Remaining(id entities.WorkCenterID, bucket int) (decimal.Decimal, error) {
	capacity, err := l.Capacity(id)
	if err != nil {
		return decimal.Zero, err
	}
	return capacity.Sub(l.Used(id, bucket)), nil
}

// FirstFit returns the earliest bucket in [earliest, horizon) whose
// remaining capacity covers hours. The second return is false when no such
// bucket exists; in that case a step can never be placed there.
func (l *CapacityLedger) FirstFit(id entities.WorkCenterID, earliest int, hours decimal.Decimal, horizon int) (int, bool) {
	capacity, exists := l.capacity[id]
	if !exists || hours.GreaterThan(capacity) {
		return 0, false
	}
	if earliest < 0 {
		earliest = 0
	}
	for bucket := earliest; bucket < horizon; bucket++ {
		if capacity.Sub(l.Used(id, bucket)).GreaterThanOrEqual(hours) {
			return bucket, true
		}
	}
	return 0, false
}

// Reserve consumes hours from a bucket and returns the hours that were
// already in use, which is the new reservation's offset within the bucket.
// An overdraw returns a CapacityViolationError: the scheduler only
// reserves buckets FirstFit approved, so hitting one is a bug.
func (l *CapacityLedger) Reserve(id entities.WorkCenterID, bucket int, hours decimal.Decimal) (decimal.Decimal, error) {
	capacity, err := l.Capacity(id)
	if err != nil {
		return decimal.Zero, err
	}
	if bucket < 0 {
		return decimal.Zero, fmt.Errorf("bucket cannot be negative: %d", bucket)
	}

	buckets := l.used[id]
	for len(buckets) <= bucket {
		buckets = append(buckets, decimal.Zero)
	}

	offset := buckets[bucket]
	if offset.Add(hours).GreaterThan(capacity) {
		return decimal.Zero, &entities.CapacityViolationError{WorkCenterID: id, Bucket: bucket}
	}

	buckets[bucket] = offset.Add(hours)
	l.used[id] = buckets
	return offset, nil
}

// Release returns previously reserved hours to a bucket, used to back out
// an order that turned out to be infeasible mid-placement
func (l *CapacityLedger) Release(id entities.WorkCenterID, bucket int, hours decimal.Decimal) {
	buckets := l.used[id]
	if bucket < 0 || bucket >= len(buckets) {
		return
	}
	buckets[bucket] = buckets[bucket].Sub(hours)
	if buckets[bucket].IsNegative() {
		buckets[bucket] = decimal.Zero
	}
}

// Rows flattens the ledger into per-bucket rows for reporting, ordered by
// work center id then bucket
func (l *CapacityLedger) Rows() []LedgerSlice {
	ids := make([]entities.WorkCenterID, 0, len(l.capacity))
	for id := range l.capacity {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []LedgerSlice
	for _, id := range ids {
		capacity := l.capacity[id]
		for bucket, used := range l.used[id] {
			if used.IsZero() {
				continue
			}
			rows = append(rows, LedgerSlice{
				WorkCenterID: id,
				Bucket:       bucket,
				Used:         used,
				Remaining:    capacity.Sub(used),
			})
		}
	}
	return rows
}

// LedgerSlice is one non-empty work center/bucket cell of the ledger
type LedgerSlice struct {
	WorkCenterID entities.WorkCenterID
	Bucket       int
	Used         decimal.Decimal
	Remaining    decimal.Decimal
}
