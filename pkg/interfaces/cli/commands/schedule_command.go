package commands

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mfgkit/shopsched/pkg/application/services/planning"
	"github.com/mfgkit/shopsched/pkg/infrastructure/config"
	"github.com/mfgkit/shopsched/pkg/infrastructure/documents"
	"github.com/mfgkit/shopsched/pkg/infrastructure/logger"
	"github.com/mfgkit/shopsched/pkg/infrastructure/repositories/memory"
	"github.com/mfgkit/shopsched/pkg/interfaces/cli/output"
)

// Config holds configuration for the schedule command
type Config struct {
	ConfigFile   string
	OrdersFile   string
	BOMFile      string
	CapacityFile string
	RawFile      string
	Format       string
	GanttFile    string
	Verbose      bool
	Help         bool
}

// ScheduleCommand loads the input documents, runs one scheduling pass and
// emits the plan
type ScheduleCommand struct {
	config Config
}

// NewScheduleCommand creates a schedule command with the given configuration
func NewScheduleCommand(cfg Config) *ScheduleCommand {
	return &ScheduleCommand{config: cfg}
}

// Execute runs the schedule command
func (c *ScheduleCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if c.config.OrdersFile == "" || c.config.BOMFile == "" || c.config.CapacityFile == "" {
		return fmt.Errorf("orders, bom and capacity documents are required (see -help)")
	}

	appConfig, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}
	if c.config.Format != "" {
		appConfig.Output.Format = c.config.Format
	}
	if c.config.GanttFile != "" {
		appConfig.Output.GanttFile = c.config.GanttFile
	}
	if c.config.Verbose {
		appConfig.Log.Level = "debug"
	}

	log := logger.New(logger.Config{
		Level:  appConfig.Log.Level,
		Format: appConfig.Log.Format,
		Output: "stderr",
	})
	defer log.Sync()

	loader := documents.NewLoader()

	orders, err := loader.LoadOrders(c.config.OrdersFile)
	if err != nil {
		return fmt.Errorf("error loading orders: %w", err)
	}
	steps, err := loader.LoadSteps(c.config.BOMFile)
	if err != nil {
		return fmt.Errorf("error loading BOM: %w", err)
	}
	workCenters, err := loader.LoadWorkCenters(c.config.CapacityFile)
	if err != nil {
		return fmt.Errorf("error loading capacity: %w", err)
	}
	rawDecls, err := loader.LoadRawMaterials(c.config.RawFile)
	if err != nil {
		return fmt.Errorf("error loading raw materials: %w", err)
	}

	catalog := memory.NewCatalogRepository()
	if err := catalog.LoadParts(loader.SynthesizeParts(steps, orders, rawDecls)); err != nil {
		return fmt.Errorf("failed to load parts: %w", err)
	}
	if err := catalog.LoadSteps(steps); err != nil {
		return fmt.Errorf("failed to load steps: %w", err)
	}
	if err := catalog.LoadWorkCenters(workCenters); err != nil {
		return fmt.Errorf("failed to load work centers: %w", err)
	}
	if err := catalog.LoadRawMaterialDecls(rawDecls); err != nil {
		return fmt.Errorf("failed to load raw materials: %w", err)
	}

	orderRepo := memory.NewOrderRepository()
	if err := orderRepo.LoadOrders(orders); err != nil {
		return fmt.Errorf("failed to load orders: %w", err)
	}

	planStart, err := appConfig.ResolvePlanStart()
	if err != nil {
		return err
	}
	orchestrator := planning.NewPlanningOrchestrator(catalog, orderRepo, planning.SchedulerConfig{
		PlanStart:      planStart,
		HorizonBuckets: appConfig.Planner.HorizonBuckets,
		BucketLength:   appConfig.BucketLength(),
	}, log)

	result, err := orchestrator.Run(ctx)
	if err != nil {
		return err
	}

	if err := output.Generate(os.Stdout, result, output.Config{
		Format:  appConfig.Output.Format,
		Verbose: c.config.Verbose,
	}); err != nil {
		return err
	}

	if appConfig.Output.GanttFile != "" {
		chart := output.NewGanttChart(result)
		svg := chart.GenerateSVG(result)
		if err := os.WriteFile(appConfig.Output.GanttFile, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("failed to write Gantt chart: %w", err)
		}
		log.Info("Gantt chart written", zap.String("path", appConfig.Output.GanttFile))
	}

	return nil
}

func (c *ScheduleCommand) showHelp() {
	fmt.Println(`shopsched - finite-capacity production scheduler

Usage:
  shopsched -orders orders.json -bom bom.json -capacity capacity.json [options]

Options:
  -orders    Customer orders document (JSON or YAML), required
  -bom       BOM/routing document, required
  -capacity  Work-center capacity document, required
  -raw       Declared raw materials document, optional
  -config    Planner config file (viper formats), optional
  -format    Output format: text, json, csv (default text)
  -gantt     Write an SVG Gantt chart to this path
  -verbose   Debug logging plus the capacity ledger in text output
  -help      Show this message`)
}
