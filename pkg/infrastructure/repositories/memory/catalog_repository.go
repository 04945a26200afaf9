package memory

import (
	"fmt"
	"sort"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
	"github.com/mfgkit/shopsched/pkg/domain/repositories"
)

// CatalogRepository provides in-memory catalog storage for one run
type CatalogRepository struct {
	parts    []entities.Part
	partsMap map[entities.PartID]int

	steps       []entities.RoutingStep
	stepIndexes map[entities.PartID][]int // output part -> step positions

	workCenters   []entities.WorkCenter
	workCenterMap map[entities.WorkCenterID]int
	rawMaterials  []entities.RawMaterialDecl
}

// NewCatalogRepository creates a new in-memory catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		partsMap:      make(map[entities.PartID]int),
		stepIndexes:   make(map[entities.PartID][]int),
		workCenterMap: make(map[entities.WorkCenterID]int),
	}
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// LoadParts loads part reference data into the repository
func (r *CatalogRepository) LoadParts(parts []*entities.Part) error {
	for _, part := range parts {
		if _, exists := r.partsMap[part.ID]; exists {
			return fmt.Errorf("duplicate part id: %s", part.ID)
		}
		r.partsMap[part.ID] = len(r.parts)
		r.parts = append(r.parts, *part)
	}
	return nil
}

// GetPart returns part reference data by id. Parts referenced only by
// steps may be absent from the part table; callers fall back to the id.
func (r *CatalogRepository) GetPart(id entities.PartID) (*entities.Part, error) {
	index, exists := r.partsMap[id]
	if !exists {
		return nil, fmt.Errorf("part not found: %s", id)
	}
	return &r.parts[index], nil
}

// AllParts returns all loaded parts
func (r *CatalogRepository) AllParts() ([]*entities.Part, error) {
	parts := make([]*entities.Part, len(r.parts))
	for i := range r.parts {
		parts[i] = &r.parts[i]
	}
	return parts, nil
}

// LoadSteps loads routing steps in declaration order
func (r *CatalogRepository) LoadSteps(steps []*entities.RoutingStep) error {
	for _, step := range steps {
		r.stepIndexes[step.PartID] = append(r.stepIndexes[step.PartID], len(r.steps))
		r.steps = append(r.steps, *step)
	}
	return nil
}

// AllSteps returns routing steps in declaration order
func (r *CatalogRepository) AllSteps() ([]*entities.RoutingStep, error) {
	steps := make([]*entities.RoutingStep, len(r.steps))
	for i := range r.steps {
		steps[i] = &r.steps[i]
	}
	return steps, nil
}

// StepsProducing returns the routing chain for a part, ordered by sequence
// number with declaration order breaking ties
func (r *CatalogRepository) StepsProducing(partID entities.PartID) ([]*entities.RoutingStep, error) {
	indexes := r.stepIndexes[partID]
	if len(indexes) == 0 {
		return nil, nil
	}

	ordered := make([]int, len(indexes))
	copy(ordered, indexes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return r.steps[ordered[i]].SequenceNo < r.steps[ordered[j]].SequenceNo
	})

	steps := make([]*entities.RoutingStep, len(ordered))
	for i, idx := range ordered {
		steps[i] = &r.steps[idx]
	}
	return steps, nil
}

// LoadWorkCenters loads work centers into the repository
func (r *CatalogRepository) LoadWorkCenters(workCenters []*entities.WorkCenter) error {
	for _, wc := range workCenters {
		if _, exists := r.workCenterMap[wc.ID]; exists {
			return fmt.Errorf("duplicate work center id: %s", wc.ID)
		}
		r.workCenterMap[wc.ID] = len(r.workCenters)
		r.workCenters = append(r.workCenters, *wc)
	}
	return nil
}

// GetWorkCenter returns a work center by id
func (r *CatalogRepository) GetWorkCenter(id entities.WorkCenterID) (*entities.WorkCenter, error) {
	index, exists := r.workCenterMap[id]
	if !exists {
		return nil, fmt.Errorf("work center not found: %s", id)
	}
	return &r.workCenters[index], nil
}

// AllWorkCenters returns all loaded work centers
func (r *CatalogRepository) AllWorkCenters() ([]*entities.WorkCenter, error) {
	workCenters := make([]*entities.WorkCenter, len(r.workCenters))
	for i := range r.workCenters {
		workCenters[i] = &r.workCenters[i]
	}
	return workCenters, nil
}

// LoadRawMaterialDecls loads the optional user-declared raw-material list
func (r *CatalogRepository) LoadRawMaterialDecls(decls []*entities.RawMaterialDecl) error {
	for _, decl := range decls {
		r.rawMaterials = append(r.rawMaterials, *decl)
	}
	return nil
}

// RawMaterialDecls returns the declared raw materials, possibly empty
func (r *CatalogRepository) RawMaterialDecls() ([]*entities.RawMaterialDecl, error) {
	decls := make([]*entities.RawMaterialDecl, len(r.rawMaterials))
	for i := range r.rawMaterials {
		decls[i] = &r.rawMaterials[i]
	}
	return decls, nil
}
