package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mfgkit/shopsched/pkg/interfaces/cli/commands"
)

func main() {
	var (
		ordersFile   = flag.String("orders", "", "Path to customer orders document (JSON/YAML)")
		bomFile      = flag.String("bom", "", "Path to BOM/routing document")
		capacityFile = flag.String("capacity", "", "Path to work-center capacity document")
		rawFile      = flag.String("raw", "", "Path to declared raw materials document (optional)")
		configFile   = flag.String("config", "", "Path to planner config file (optional)")
		format       = flag.String("format", "", "Output format: text, json, csv")
		ganttFile    = flag.String("gantt", "", "Write an SVG Gantt chart to this path")
		verbose      = flag.Bool("verbose", false, "Enable verbose output")
		help         = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	cmd := commands.NewScheduleCommand(commands.Config{
		ConfigFile:   *configFile,
		OrdersFile:   *ordersFile,
		BOMFile:      *bomFile,
		CapacityFile: *capacityFile,
		RawFile:      *rawFile,
		Format:       *format,
		GanttFile:    *ganttFile,
		Verbose:      *verbose,
		Help:         *help,
	})

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
