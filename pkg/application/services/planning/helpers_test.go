package planning

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
	"github.com/mfgkit/shopsched/pkg/infrastructure/repositories/memory"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func in(part entities.PartID, qty string) entities.StepInput {
	return entities.StepInput{PartID: part, Qty: dec(qty)}
}

func step(
	t *testing.T,
	id entities.StepID,
	part entities.PartID,
	outputQty string,
	wc entities.WorkCenterID,
	procHours string,
	seq int,
	inputs ...entities.StepInput,
) *entities.RoutingStep {
	t.Helper()
	s, err := entities.NewRoutingStep(id, part, dec(outputQty), inputs, wc, dec(procHours), seq)
	require.NoError(t, err)
	return s
}

func workCenter(t *testing.T, id entities.WorkCenterID, capacity string) *entities.WorkCenter {
	t.Helper()
	wc, err := entities.NewWorkCenter(id, "", dec(capacity))
	require.NoError(t, err)
	return wc
}

func order(
	t *testing.T,
	id entities.OrderID,
	part entities.PartID,
	qty string,
	due time.Time,
	priority int,
) *entities.CustomerOrder {
	t.Helper()
	o, err := entities.NewCustomerOrder(id, part, dec(qty), due, priority)
	require.NoError(t, err)
	return o
}

func catalogWith(t *testing.T, steps ...*entities.RoutingStep) *memory.CatalogRepository {
	t.Helper()
	catalog := memory.NewCatalogRepository()
	require.NoError(t, catalog.LoadSteps(steps))
	return catalog
}

// testPlanStart keeps timestamps deterministic across the planning tests
var testPlanStart = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func testConfig() SchedulerConfig {
	return SchedulerConfig{
		PlanStart:      testPlanStart,
		HorizonBuckets: 30,
		BucketLength:   24 * time.Hour,
	}
}
