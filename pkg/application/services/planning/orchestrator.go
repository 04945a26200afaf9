package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mfgkit/shopsched/pkg/application/dto"
	"github.com/mfgkit/shopsched/pkg/domain/entities"
	"github.com/mfgkit/shopsched/pkg/domain/repositories"
	"github.com/mfgkit/shopsched/pkg/domain/services"
)

// PlanningOrchestrator runs one complete scheduling pass: catalog
// validation, raw-material inference, per-order explosion, capacity
// scheduling and report assembly. Each run builds its own ledger and
// demand trees; nothing survives between runs.
type PlanningOrchestrator struct {
	catalog    repositories.CatalogRepository
	orders     repositories.OrderRepository
	inferencer *services.RawMaterialInferencer
	validator  *services.RoutingValidator
	scheduler  *Scheduler
	reporter   *Reporter
	config     SchedulerConfig
	logger     *zap.Logger
}

// NewPlanningOrchestrator creates an orchestrator over loaded repositories
func NewPlanningOrchestrator(
	catalog repositories.CatalogRepository,
	orders repositories.OrderRepository,
	config SchedulerConfig,
	logger *zap.Logger,
) *PlanningOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanningOrchestrator{
		catalog:    catalog,
		orders:     orders,
		inferencer: services.NewRawMaterialInferencer(),
		validator:  services.NewRoutingValidator(),
		scheduler:  NewScheduler(config, logger),
		reporter:   NewReporter(),
		config:     config,
		logger:     logger,
	}
}

// Run executes one scheduling run. Catalog-wide validation failures abort
// the run; order-scoped failures (cycles, missing routes) sideline only
// the affected order and are reported with the plan.
func (po *PlanningOrchestrator) Run(ctx context.Context) (*dto.PlanResult, error) {
	steps, err := po.catalog.AllSteps()
	if err != nil {
		return nil, fmt.Errorf("failed to read routing steps: %w", err)
	}
	workCenters, err := po.catalog.AllWorkCenters()
	if err != nil {
		return nil, fmt.Errorf("failed to read work centers: %w", err)
	}
	declared, err := po.catalog.RawMaterialDecls()
	if err != nil {
		return nil, fmt.Errorf("failed to read raw material declarations: %w", err)
	}
	allOrders, err := po.orders.AllOrders()
	if err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	catalogReport, err := po.validator.ValidateCatalog(steps, workCenters)
	if err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	inferred := po.inferencer.Infer(steps)
	warnings := catalogReport.Warnings
	warnings = append(warnings, po.inferencer.CrossCheck(declared, inferred)...)

	orderWarnings := po.validator.CheckOrders(allOrders, steps, declared)
	warnings = append(warnings, orderWarnings...)
	unknownPart := make(map[entities.OrderID]bool)
	for _, w := range orderWarnings {
		if w.Code == entities.WarnUnknownPart {
			unknownPart[entities.OrderID(w.Entity)] = true
		}
	}

	po.logger.Info("starting scheduling run",
		zap.Int("orders", len(allOrders)),
		zap.Int("steps", len(steps)),
		zap.Int("work_centers", len(workCenters)),
		zap.Int("raw_materials", len(inferred)))

	exploder := NewExploder(po.catalog)
	trees := make([]*DemandTree, 0, len(allOrders))
	var unplannable []entities.InfeasibleOrder

	for _, order := range allOrders {
		tree, err := exploder.Explode(order)
		if err != nil {
			if unknownPart[order.ID] {
				// A dangling order reference is an order-scoped validation
				// failure, not a missing route.
				err = entities.NewValidationError(entities.ScopeOrder,
					string(order.ID), "order references unknown part %s", order.PartID)
			}
			unplannable = append(unplannable, po.explainExplosionFailure(order, err))
			continue
		}
		trees = append(trees, tree)
	}

	ledger := NewCapacityLedger(workCenters)
	schedule, err := po.scheduler.Schedule(ctx, trees, ledger)
	if err != nil {
		return nil, fmt.Errorf("scheduling failed: %w", err)
	}
	schedule.Infeasible = append(unplannable, schedule.Infeasible...)

	result := po.reporter.Build(schedule, ledger, trees,
		po.inferencer.InferSorted(steps), declared, warnings)
	result.RunID = uuid.NewString()
	result.GeneratedAt = time.Now().UTC()
	result.PlanStart = po.config.PlanStart

	po.logger.Info("scheduling run finished",
		zap.String("run_id", result.RunID),
		zap.Int("entries", len(result.Rows)),
		zap.Int("late_orders", len(result.LateOrders)),
		zap.Int("infeasible", len(result.Infeasible)),
		zap.Int("warnings", len(result.Warnings)))

	return result, nil
}

// explainExplosionFailure translates an explosion error into the reported
// per-order condition. Order-scoped validation failures, cycles and
// missing routes never abort the run.
func (po *PlanningOrchestrator) explainExplosionFailure(order *entities.CustomerOrder, err error) entities.InfeasibleOrder {
	reason := err.Error()
	if errors.Is(err, ErrNoRoute) {
		reason = "no producing route"
	}
	var vErr *entities.ValidationError
	if errors.As(err, &vErr) {
		reason = vErr.Reason
	}
	var cycleErr *entities.CycleError
	if errors.As(err, &cycleErr) {
		reason = cycleErr.Error()
	}

	po.logger.Warn("order excluded from scheduling",
		zap.String("order", string(order.ID)),
		zap.String("reason", reason))

	return entities.InfeasibleOrder{
		OrderID: order.ID,
		Reason:  reason,
	}
}
