package planning

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
	"github.com/mfgkit/shopsched/pkg/domain/repositories"
)

// ErrNoRoute marks an order whose target part has no producing step. The
// caller reports the order infeasible instead of failing the run.
var ErrNoRoute = errors.New("no producing route")

// DemandNode is one exploded step instance: a run of Step for Quantity
// output units on the step's work center. Predecessors index nodes of the
// same tree that must finish before this one starts, covering both input
// edges across parts and chain edges within one part's routing.
type DemandNode struct {
	Index        int
	Step         *entities.RoutingStep
	Quantity     decimal.Decimal
	Hours        decimal.Decimal
	Predecessors []int
}

// DemandTree is the exploded demand of a single order. Nodes are in
// topological order: every predecessor appears before its consumers.
type DemandTree struct {
	Order *entities.CustomerOrder
	Nodes []*DemandNode

	// RawRequirements accumulates leaf quantities per raw material.
	RawRequirements map[entities.PartID]decimal.Decimal
}

// Exploder expands an order into its demand tree using the catalog's
// routing data. A part's routing is the sequence-ordered chain of steps
// producing it; parts with no producing step are raw-material leaves.
type Exploder struct {
	catalog repositories.CatalogRepository
}

// NewExploder creates an exploder over the given catalog
func NewExploder(catalog repositories.CatalogRepository) *Exploder {
	return &Exploder{catalog: catalog}
}

// Explode expands one order depth-first down to raw materials. Quantities
// scale linearly with the order quantity; a step's MinBatchQty, when set,
// floors the units handled by that step instance. Revisiting a part on the
// current expansion path fails with a CycleError.
func (e *Exploder) Explode(order *entities.CustomerOrder) (*DemandTree, error) {
	tree := &DemandTree{
		Order:           order,
		RawRequirements: make(map[entities.PartID]decimal.Decimal),
	}

	onPath := make(map[entities.PartID]bool)
	terminals, err := e.explodePart(tree, order.PartID, order.Quantity, onPath, nil)
	if err != nil {
		return nil, err
	}
	if len(terminals) == 0 && len(tree.Nodes) == 0 {
		// The target part is a purchased leaf; nothing to manufacture.
		return nil, ErrNoRoute
	}

	return tree, nil
}

// explodePart expands the demand for qty units of partID and returns the
// terminal node indexes a consumer of this part must wait for. Raw
// materials produce no nodes and no precedence.
func (e *Exploder) explodePart(
	tree *DemandTree,
	partID entities.PartID,
	qty decimal.Decimal,
	onPath map[entities.PartID]bool,
	path []entities.PartID,
) ([]int, error) {
	if onPath[partID] {
		return nil, &entities.CycleError{Path: append(append([]entities.PartID{}, path...), partID)}
	}

	chain, err := e.routingChain(partID)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		tree.RawRequirements[partID] = tree.RawRequirements[partID].Add(qty)
		return nil, nil
	}

	onPath[partID] = true
	path = append(path, partID)
	defer delete(onPath, partID)

	prev := -1
	for _, step := range chain {
		units := qty
		if step.MinBatchQty.IsPositive() && units.LessThan(step.MinBatchQty) {
			units = step.MinBatchQty
		}
		runs := units.Div(step.OutputQty)

		var predecessors []int
		if prev >= 0 {
			predecessors = append(predecessors, prev)
		}

		// Inputs must be available before the step runs.
		for _, in := range step.Inputs {
			required := runs.Mul(in.Qty)
			terminals, err := e.explodePart(tree, in.PartID, required, onPath, path)
			if err != nil {
				return nil, err
			}
			predecessors = append(predecessors, terminals...)
		}

		node := &DemandNode{
			Index:        len(tree.Nodes),
			Step:         step,
			Quantity:     units,
			Hours:        units.Mul(step.ProcTimePerUnit),
			Predecessors: predecessors,
		}
		tree.Nodes = append(tree.Nodes, node)
		prev = node.Index
	}

	// The chain's last step hands the finished part to consumers.
	return []int{prev}, nil
}

// routingChain returns the part's producing steps ordered by sequence
// number, dropping steps shadowed by an earlier declaration at the same
// position. Shadowing is warned about during catalog validation.
func (e *Exploder) routingChain(partID entities.PartID) ([]*entities.RoutingStep, error) {
	steps, err := e.catalog.StepsProducing(partID)
	if err != nil {
		return nil, err
	}

	var chain []*entities.RoutingStep
	seen := make(map[int]bool, len(steps))
	for _, step := range steps {
		if seen[step.SequenceNo] {
			continue
		}
		seen[step.SequenceNo] = true
		chain = append(chain, step)
	}
	return chain, nil
}
