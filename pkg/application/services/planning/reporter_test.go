package planning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

func runPlan(t *testing.T, trees []*DemandTree, ledger *CapacityLedger) *ScheduleResult {
	t.Helper()
	scheduler := NewScheduler(testConfig(), nil)
	result, err := scheduler.Schedule(context.Background(), trees, ledger)
	require.NoError(t, err)
	return result
}

func TestReporter_RowsSortedByStart(t *testing.T) {
	catalog := catalogWith(t,
		step(t, "OP-FRAME", "FRAME", "1", "WELD", "2", 10, in("TUBE", "4")),
		step(t, "OP-BIKE", "BIKE", "1", "ASSY", "1", 10, in("FRAME", "1")),
	)
	exploder := NewExploder(catalog)
	trees := explodeAll(t, exploder,
		order(t, "SO-1", "BIKE", "1", testDue, 1),
		order(t, "SO-2", "BIKE", "1", testDue, 2),
	)
	ledger := NewCapacityLedger([]*entities.WorkCenter{
		workCenter(t, "WELD", "8"),
		workCenter(t, "ASSY", "8"),
	})
	schedule := runPlan(t, trees, ledger)

	result := NewReporter().Build(schedule, ledger, trees, nil, nil, nil)
	require.Len(t, result.Rows, 4)
	for i := 1; i < len(result.Rows); i++ {
		assert.False(t, result.Rows[i].Start.Before(result.Rows[i-1].Start),
			"rows appear in start-time order")
	}
}

func TestReporter_LateOrders(t *testing.T) {
	catalog := catalogWith(t,
		step(t, "OP-WIDGET", "WIDGET", "1", "WC1", "4", 10),
	)
	exploder := NewExploder(catalog)
	trees := explodeAll(t, exploder,
		order(t, "SO-LATE", "WIDGET", "1", testPlanStart.Add(-24*time.Hour), 1),
		order(t, "SO-ONTIME", "WIDGET", "1", testDue, 2),
	)
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WC1", "8")})
	schedule := runPlan(t, trees, ledger)

	result := NewReporter().Build(schedule, ledger, trees, nil, nil, nil)
	require.Len(t, result.Completions, 2)
	require.Len(t, result.LateOrders, 1)
	assert.Equal(t, entities.OrderID("SO-LATE"), result.LateOrders[0].OrderID)
}

func TestReporter_Utilization(t *testing.T) {
	catalog := catalogWith(t,
		step(t, "OP-WIDGET", "WIDGET", "1", "WC1", "4", 10),
	)
	exploder := NewExploder(catalog)
	trees := explodeAll(t, exploder,
		order(t, "SO-1", "WIDGET", "1", testDue, 1),
		order(t, "SO-2", "WIDGET", "2", testDue, 2),
	)
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WC1", "8")})
	schedule := runPlan(t, trees, ledger)

	result := NewReporter().Build(schedule, ledger, trees, nil, nil, nil)
	require.Len(t, result.Utilization, 1)

	// 4 h in bucket 0, 8 h in bucket 1 = 12 h over a 16 h span.
	u := result.Utilization[0]
	assert.Equal(t, entities.WorkCenterID("WC1"), u.WorkCenterID)
	assert.Equal(t, 2, u.BucketsUsed)
	assert.True(t, u.HoursUsed.Equal(dec("12")))
	assert.True(t, u.HoursCapacity.Equal(dec("16")))
	assert.True(t, u.Percent.Equal(dec("75")))
}

func TestReporter_ShortagesRequireOnHand(t *testing.T) {
	catalog := catalogWith(t,
		step(t, "OP-FRAME", "FRAME", "1", "WELD", "1", 10, in("TUBE", "4")),
	)
	exploder := NewExploder(catalog)
	trees := explodeAll(t, exploder,
		order(t, "SO-1", "FRAME", "2", testDue, 1),
		order(t, "SO-2", "FRAME", "1", testDue, 2),
	)
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WELD", "8")})
	schedule := runPlan(t, trees, ledger)

	// Without on-hand figures nothing is tracked.
	declared := []*entities.RawMaterialDecl{{PartID: "TUBE"}}
	result := NewReporter().Build(schedule, ledger, trees, nil, declared, nil)
	assert.Empty(t, result.Shortages)
	assert.Equal(t, []entities.PartID{"TUBE"}, result.RawMaterialsDeclared)

	// 12 tubes needed, 10 on hand.
	stock := dec("10")
	declared = []*entities.RawMaterialDecl{{PartID: "TUBE", OnHand: &stock}}
	result = NewReporter().Build(schedule, ledger, trees, nil, declared, nil)
	require.Len(t, result.Shortages, 1)

	shortage := result.Shortages[0]
	assert.Equal(t, entities.PartID("TUBE"), shortage.PartID)
	assert.True(t, shortage.Required.Equal(dec("12")))
	assert.True(t, shortage.OnHand.Equal(dec("10")))
	assert.True(t, shortage.Missing.Equal(dec("2")))
	assert.ElementsMatch(t, []entities.OrderID{"SO-1", "SO-2"}, shortage.Orders)
}

func TestReporter_ShortagesSkipInfeasibleOrders(t *testing.T) {
	catalog := catalogWith(t,
		step(t, "OP-FRAME", "FRAME", "1", "WELD", "1", 10, in("TUBE", "4")),
		step(t, "OP-HUGE", "HUGE", "1", "WELD", "100", 10, in("TUBE", "50")),
	)
	exploder := NewExploder(catalog)
	trees := explodeAll(t, exploder,
		order(t, "SO-OK", "FRAME", "1", testDue, 1),
		order(t, "SO-DOOMED", "HUGE", "1", testDue, 2),
	)
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WELD", "8")})
	schedule := runPlan(t, trees, ledger)
	require.Len(t, schedule.Infeasible, 1)

	stock := dec("0")
	declared := []*entities.RawMaterialDecl{{PartID: "TUBE", OnHand: &stock}}
	result := NewReporter().Build(schedule, ledger, trees, nil, declared, nil)
	require.Len(t, result.Shortages, 1)

	// Only the scheduled order's 4 tubes count; the infeasible order's 50
	// never leave the warehouse.
	assert.True(t, result.Shortages[0].Required.Equal(dec("4")))
	assert.Equal(t, []entities.OrderID{"SO-OK"}, result.Shortages[0].Orders)
}

func TestReporter_CarriesAnalysisThrough(t *testing.T) {
	catalog := catalogWith(t,
		step(t, "OP-FRAME", "FRAME", "1", "WELD", "1", 10, in("TUBE", "4")),
	)
	exploder := NewExploder(catalog)
	trees := explodeAll(t, exploder, order(t, "SO-1", "FRAME", "1", testDue, 1))
	ledger := NewCapacityLedger([]*entities.WorkCenter{workCenter(t, "WELD", "8")})
	schedule := runPlan(t, trees, ledger)

	inferred := []entities.PartID{"TUBE"}
	warnings := []entities.Warning{{Code: entities.WarnUnknownPart, Entity: "SO-9"}}
	result := NewReporter().Build(schedule, ledger, trees, inferred, nil, warnings)

	assert.Equal(t, inferred, result.RawMaterialsInferred)
	assert.Equal(t, warnings, result.Warnings)
	require.Len(t, result.Ledger, 1)
	assert.True(t, result.Ledger[0].Used.Equal(dec("1")))
	assert.True(t, result.Ledger[0].Remaining.Equal(dec("7")))
}
