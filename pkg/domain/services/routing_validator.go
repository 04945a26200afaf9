package services

import (
	"strings"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// RoutingValidator checks catalog-wide integrity of the loaded tables:
// every step must name a known work center and step ids must be unique.
// Broken references fail the whole run; cycles in the consumption graph
// are surfaced as warnings here and fail individual orders during
// explosion.
type RoutingValidator struct{}

// NewRoutingValidator creates a new routing validator
func NewRoutingValidator() *RoutingValidator {
	return &RoutingValidator{}
}

// ValidationReport collects warnings from a catalog validation pass
type ValidationReport struct {
	Warnings []entities.Warning
}

// ValidateCatalog verifies step references and uniqueness. It returns a
// catalog-scoped ValidationError on the first hard violation and a report
// of non-fatal findings, cycles included, otherwise.
func (v *RoutingValidator) ValidateCatalog(
	steps []*entities.RoutingStep,
	workCenters []*entities.WorkCenter,
) (*ValidationReport, error) {
	report := &ValidationReport{}

	known := make(map[entities.WorkCenterID]bool, len(workCenters))
	for _, wc := range workCenters {
		known[wc.ID] = true
	}

	seenStep := make(map[entities.StepID]bool, len(steps))
	seenPosition := make(map[entities.PartID]map[int]entities.StepID)

	for _, step := range steps {
		if seenStep[step.ID] {
			return nil, entities.NewValidationError(entities.ScopeCatalog,
				string(step.ID), "duplicate step id")
		}
		seenStep[step.ID] = true

		if !known[step.WorkCenterID] {
			return nil, entities.NewValidationError(entities.ScopeCatalog,
				string(step.ID), "unknown work center %s", step.WorkCenterID)
		}

		positions, ok := seenPosition[step.PartID]
		if !ok {
			positions = make(map[int]entities.StepID)
			seenPosition[step.PartID] = positions
		}
		if winner, dup := positions[step.SequenceNo]; dup {
			// First-declared wins; the shadowed step is reported, not used.
			report.Warnings = append(report.Warnings, entities.Warning{
				Code:   entities.WarnShadowedStep,
				Entity: string(step.ID),
				Message: "step " + string(step.ID) + " duplicates sequence position of step " +
					string(winner) + " for part " + string(step.PartID),
			})
		} else {
			positions[step.SequenceNo] = step.ID
		}
	}

	if cycle := v.findCycle(steps); cycle != nil {
		// Only orders whose explosion reaches the cycle fail; the rest of
		// the catalog stays usable, so this is a warning, not an abort.
		report.Warnings = append(report.Warnings, entities.Warning{
			Code:    entities.WarnBOMCycle,
			Entity:  string(cycle[0]),
			Message: "part consumption graph has a cycle: " + joinPath(cycle),
		})
	}

	return report, nil
}

// CheckOrders reports orders whose target part is completely unknown to
// the catalog (neither produced, consumed, nor declared)
func (v *RoutingValidator) CheckOrders(
	orders []*entities.CustomerOrder,
	steps []*entities.RoutingStep,
	declared []*entities.RawMaterialDecl,
) []entities.Warning {
	known := make(map[entities.PartID]bool)
	for _, step := range steps {
		known[step.PartID] = true
		for _, in := range step.Inputs {
			known[in.PartID] = true
		}
	}
	for _, decl := range declared {
		known[decl.PartID] = true
	}

	var warnings []entities.Warning
	for _, order := range orders {
		if !known[order.PartID] {
			warnings = append(warnings, entities.Warning{
				Code:    entities.WarnUnknownPart,
				Entity:  string(order.ID),
				Message: "order " + string(order.ID) + " references unknown part " + string(order.PartID),
			})
		}
	}

	return warnings
}

func joinPath(parts []entities.PartID) string {
	names := make([]string, len(parts))
	for i, p := range parts {
		names[i] = string(p)
	}
	return strings.Join(names, " -> ")
}

// findCycle runs a DFS over the part consumption graph (produced part ->
// input parts) and returns the first cycle found, or nil
func (v *RoutingValidator) findCycle(steps []*entities.RoutingStep) []entities.PartID {
	adjacency := make(map[entities.PartID][]entities.PartID)
	for _, step := range steps {
		for _, in := range step.Inputs {
			children := adjacency[step.PartID]
			found := false
			for _, child := range children {
				if child == in.PartID {
					found = true
					break
				}
			}
			if !found {
				adjacency[step.PartID] = append(children, in.PartID)
			}
		}
	}

	visited := make(map[entities.PartID]bool)
	onStack := make(map[entities.PartID]bool)

	var cycle []entities.PartID
	var dfs func(part entities.PartID, path []entities.PartID) bool
	dfs = func(part entities.PartID, path []entities.PartID) bool {
		visited[part] = true
		onStack[part] = true
		path = append(path, part)

		for _, child := range adjacency[part] {
			if onStack[child] {
				start := 0
				for i, p := range path {
					if p == child {
						start = i
						break
					}
				}
				cycle = append(cycle, path[start:]...)
				cycle = append(cycle, child)
				return true
			}
			if !visited[child] && dfs(child, path) {
				return true
			}
		}

		onStack[part] = false
		return false
	}

	for _, step := range steps {
		if !visited[step.PartID] {
			if dfs(step.PartID, nil) {
				return cycle
			}
		}
	}

	return nil
}
