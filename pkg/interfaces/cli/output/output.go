package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mfgkit/shopsched/pkg/application/dto"
	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format  string
	Verbose bool
}

// Generate writes the plan result to w in the configured format
func Generate(w io.Writer, result *dto.PlanResult, config Config) error {
	switch config.Format {
	case "text":
		return generateText(w, result, config)
	case "json":
		return generateJSON(w, result)
	case "csv":
		return generateCSV(w, result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateText(w io.Writer, result *dto.PlanResult, config Config) error {
	fmt.Fprintf(w, "Schedule run %s (plan start %s)\n",
		result.RunID, result.PlanStart.Format("2006-01-02"))
	fmt.Fprintf(w, "================================================================\n\n")

	fmt.Fprintf(w, "Scheduled entries: %d\n", len(result.Rows))
	fmt.Fprintf(w, "Orders completed:  %d\n", len(result.Completions))
	fmt.Fprintf(w, "Late orders:       %d\n", len(result.LateOrders))
	fmt.Fprintf(w, "Infeasible orders: %d\n", len(result.Infeasible))
	fmt.Fprintf(w, "Warnings:          %d\n\n", len(result.Warnings))

	if len(result.Rows) > 0 {
		fmt.Fprintf(w, "Schedule\n")
		fmt.Fprintf(w, "%-10s %-12s %-12s %-10s %6s %8s %8s  %-16s %-16s\n",
			"Order", "Step", "Part", "WorkCtr", "Bucket", "Qty", "Hours", "Start", "End")
		for _, row := range result.Rows {
			fmt.Fprintf(w, "%-10s %-12s %-12s %-10s %6d %8s %8s  %-16s %-16s\n",
				row.OrderID, row.StepID, row.PartID, row.WorkCenterID,
				row.Bucket, row.Quantity, row.Hours,
				row.Start.Format("2006-01-02 15:04"),
				row.End.Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(w)
	}

	if len(result.Completions) > 0 {
		fmt.Fprintf(w, "Order completions\n")
		fmt.Fprintf(w, "%-10s %-12s %-16s %-12s %10s\n",
			"Order", "Part", "Completion", "Due", "Lateness")
		for _, c := range result.Completions {
			fmt.Fprintf(w, "%-10s %-12s %-16s %-12s %10s\n",
				c.OrderID, c.PartID,
				c.Completion.Format("2006-01-02 15:04"),
				c.DueDate.Format("2006-01-02"),
				formatLateness(c))
		}
		fmt.Fprintln(w)
	}

	if len(result.Infeasible) > 0 {
		fmt.Fprintf(w, "Infeasible orders\n")
		for _, inf := range result.Infeasible {
			if inf.BlockingStep != "" {
				fmt.Fprintf(w, "  %s (step %s): %s\n", inf.OrderID, inf.BlockingStep, inf.Reason)
			} else {
				fmt.Fprintf(w, "  %s: %s\n", inf.OrderID, inf.Reason)
			}
		}
		fmt.Fprintln(w)
	}

	if len(result.Utilization) > 0 {
		fmt.Fprintf(w, "Work center utilization\n")
		fmt.Fprintf(w, "%-10s %8s %10s %10s %8s\n",
			"WorkCtr", "Buckets", "Used(h)", "Cap(h)", "Util%")
		for _, u := range result.Utilization {
			fmt.Fprintf(w, "%-10s %8d %10s %10s %8s\n",
				u.WorkCenterID, u.BucketsUsed, u.HoursUsed, u.HoursCapacity, u.Percent)
		}
		fmt.Fprintln(w)
	}

	if len(result.Shortages) > 0 {
		fmt.Fprintf(w, "Raw material shortages\n")
		for _, s := range result.Shortages {
			fmt.Fprintf(w, "  %s: need %s, on hand %s, missing %s (orders %v)\n",
				s.PartID, s.Required, s.OnHand, s.Missing, s.Orders)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Raw materials (inferred): %v\n", result.RawMaterialsInferred)
	if len(result.RawMaterialsDeclared) > 0 {
		fmt.Fprintf(w, "Raw materials (declared): %v\n", result.RawMaterialsDeclared)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  [%s] %s\n", warning.Code, warning.Message)
		}
	}

	if config.Verbose && len(result.Ledger) > 0 {
		fmt.Fprintf(w, "\nCapacity ledger\n")
		fmt.Fprintf(w, "%-10s %6s %10s %10s\n", "WorkCtr", "Bucket", "Used(h)", "Free(h)")
		for _, row := range result.Ledger {
			fmt.Fprintf(w, "%-10s %6d %10s %10s\n",
				row.WorkCenterID, row.Bucket, row.Used, row.Remaining)
		}
	}

	return nil
}

func generateJSON(w io.Writer, result *dto.PlanResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode plan result: %w", err)
	}
	return nil
}

func generateCSV(w io.Writer, result *dto.PlanResult) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"order_id", "step_id", "part_id", "work_center_id",
		"bucket", "quantity", "hours", "start", "end"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range result.Rows {
		record := []string{
			string(row.OrderID),
			string(row.StepID),
			string(row.PartID),
			string(row.WorkCenterID),
			fmt.Sprintf("%d", row.Bucket),
			row.Quantity.String(),
			row.Hours.String(),
			row.Start.Format("2006-01-02T15:04:05Z07:00"),
			row.End.Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return nil
}

// formatLateness renders signed lateness in hours, "+" meaning late
func formatLateness(c entities.OrderCompletion) string {
	hours := c.Lateness.Hours()
	return fmt.Sprintf("%+.1fh", hours)
}
