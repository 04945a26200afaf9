package services

import (
	"fmt"
	"sort"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// RawMaterialInferencer derives the purchased-part set from the routing
// graph: a part is raw iff some step consumes it and no step produces it.
// Inference is a pure function over the loaded steps and is recomputed
// whenever the catalog changes; there is no cache to invalidate.
type RawMaterialInferencer struct{}

// NewRawMaterialInferencer creates a new inferencer
func NewRawMaterialInferencer() *RawMaterialInferencer {
	return &RawMaterialInferencer{}
}

// Infer computes the raw-material set over the given steps. An empty step
// set yields an empty set. A part that is both consumed and produced is an
// intermediate, not a raw material.
func (inf *RawMaterialInferencer) Infer(steps []*entities.RoutingStep) map[entities.PartID]bool {
	produced := make(map[entities.PartID]bool)
	consumed := make(map[entities.PartID]bool)

	for _, step := range steps {
		produced[step.PartID] = true
		for _, in := range step.Inputs {
			consumed[in.PartID] = true
		}
	}

	raw := make(map[entities.PartID]bool)
	for part := range consumed {
		if !produced[part] {
			raw[part] = true
		}
	}

	return raw
}

// InferSorted returns the inferred raw materials as a sorted slice for
// deterministic reporting
func (inf *RawMaterialInferencer) InferSorted(steps []*entities.RoutingStep) []entities.PartID {
	raw := inf.Infer(steps)

	parts := make([]entities.PartID, 0, len(raw))
	for part := range raw {
		parts = append(parts, part)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })

	return parts
}

// CrossCheck compares a user-declared raw-material list against the
// inference result. Inference is authoritative for scheduling; mismatches
// either way are surfaced as warnings. An empty declared list produces no
// warnings: declaration is optional.
func (inf *RawMaterialInferencer) CrossCheck(
	declared []*entities.RawMaterialDecl,
	inferred map[entities.PartID]bool,
) []entities.Warning {
	if len(declared) == 0 {
		return nil
	}

	var warnings []entities.Warning

	declaredSet := make(map[entities.PartID]bool, len(declared))
	for _, decl := range declared {
		declaredSet[decl.PartID] = true
		if !inferred[decl.PartID] {
			warnings = append(warnings, entities.Warning{
				Code:    entities.WarnDeclaredNotRaw,
				Entity:  string(decl.PartID),
				Message: fmt.Sprintf("part %s is declared raw but the routing produces it", decl.PartID),
			})
		}
	}

	missing := make([]entities.PartID, 0)
	for part := range inferred {
		if !declaredSet[part] {
			missing = append(missing, part)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	for _, part := range missing {
		warnings = append(warnings, entities.Warning{
			Code:    entities.WarnInferredNotDeclared,
			Entity:  string(part),
			Message: fmt.Sprintf("part %s is consumed but never produced and is missing from the declared raw materials", part),
		})
	}

	return warnings
}
