package documents

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// Loader decodes the four input documents (orders, BOM/routing, work
// center capacity, declared raw materials) from JSON or YAML files and
// converts them into validated domain entities. The documents are
// produced by surrounding tooling; the loader only checks shape and
// field-level constraints, leaving cross-references to catalog validation.
type Loader struct {
	validate *validator.Validate
}

// NewLoader creates a document loader
func NewLoader() *Loader {
	return &Loader{validate: validator.New()}
}

type orderDoc struct {
	OrderID  string  `json:"order_id" yaml:"order_id" validate:"required"`
	PartID   string  `json:"part_id" yaml:"part_id" validate:"required"`
	Quantity float64 `json:"quantity" yaml:"quantity" validate:"gt=0"`
	DueDate  string  `json:"due_date" yaml:"due_date" validate:"required"`
	Priority int     `json:"priority" yaml:"priority"`
}

type stepInputDoc struct {
	PartID string  `json:"part_id" yaml:"part_id" validate:"required"`
	Qty    float64 `json:"qty" yaml:"qty" validate:"gt=0"`
}

type stepDoc struct {
	StepID          string         `json:"step_id" yaml:"step_id" validate:"required"`
	PartID          string         `json:"part_id" yaml:"part_id" validate:"required"`
	OutputQty       float64        `json:"output_qty" yaml:"output_qty" validate:"gt=0"`
	Inputs          []stepInputDoc `json:"inputs" yaml:"inputs" validate:"dive"`
	WorkCenterID    string         `json:"work_center_id" yaml:"work_center_id" validate:"required"`
	ProcTimePerUnit float64        `json:"proc_time_per_unit" yaml:"proc_time_per_unit" validate:"gte=0"`
	SequenceNo      int            `json:"sequence_no" yaml:"sequence_no"`
	MinBatchQty     float64        `json:"min_batch_qty,omitempty" yaml:"min_batch_qty,omitempty" validate:"gte=0"`
}

type rawMaterialDoc struct {
	Part   string   `json:"part" yaml:"part" validate:"required"`
	OnHand *float64 `json:"on_hand,omitempty" yaml:"on_hand,omitempty"`
}

// LoadOrders loads the customer orders document
func (l *Loader) LoadOrders(path string) ([]*entities.CustomerOrder, error) {
	var docs []orderDoc
	if err := l.readDocument(path, &docs); err != nil {
		return nil, err
	}

	var orders []*entities.CustomerOrder
	for i, doc := range docs {
		if err := l.validate.Struct(doc); err != nil {
			return nil, fmt.Errorf("orders document %s row %d: %w", path, i+1, err)
		}
		dueDate, err := time.Parse("2006-01-02", doc.DueDate)
		if err != nil {
			return nil, fmt.Errorf("orders document %s row %d: due_date must be YYYY-MM-DD, got %q", path, i+1, doc.DueDate)
		}
		order, err := entities.NewCustomerOrder(
			entities.OrderID(doc.OrderID),
			entities.PartID(doc.PartID),
			decimal.NewFromFloat(doc.Quantity),
			dueDate.UTC(),
			doc.Priority,
		)
		if err != nil {
			return nil, fmt.Errorf("orders document %s row %d: %w", path, i+1, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// LoadSteps loads the BOM/routing document
func (l *Loader) LoadSteps(path string) ([]*entities.RoutingStep, error) {
	var docs []stepDoc
	if err := l.readDocument(path, &docs); err != nil {
		return nil, err
	}

	var steps []*entities.RoutingStep
	for i, doc := range docs {
		if err := l.validate.Struct(doc); err != nil {
			return nil, fmt.Errorf("BOM document %s row %d: %w", path, i+1, err)
		}
		inputs := make([]entities.StepInput, 0, len(doc.Inputs))
		for _, in := range doc.Inputs {
			inputs = append(inputs, entities.StepInput{
				PartID: entities.PartID(in.PartID),
				Qty:    decimal.NewFromFloat(in.Qty),
			})
		}
		step, err := entities.NewRoutingStep(
			entities.StepID(doc.StepID),
			entities.PartID(doc.PartID),
			decimal.NewFromFloat(doc.OutputQty),
			inputs,
			entities.WorkCenterID(doc.WorkCenterID),
			decimal.NewFromFloat(doc.ProcTimePerUnit),
			doc.SequenceNo,
		)
		if err != nil {
			return nil, fmt.Errorf("BOM document %s row %d: %w", path, i+1, err)
		}
		if doc.MinBatchQty > 0 {
			step.MinBatchQty = decimal.NewFromFloat(doc.MinBatchQty)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// LoadWorkCenters loads the capacity document, a mapping of work center
// id to capacity hours per bucket
func (l *Loader) LoadWorkCenters(path string) ([]*entities.WorkCenter, error) {
	var doc map[string]float64
	if err := l.readDocument(path, &doc); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(doc))
	for id := range doc {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var workCenters []*entities.WorkCenter
	for _, id := range ids {
		wc, err := entities.NewWorkCenter(
			entities.WorkCenterID(id), "", decimal.NewFromFloat(doc[id]))
		if err != nil {
			return nil, fmt.Errorf("capacity document %s: %w", path, err)
		}
		workCenters = append(workCenters, wc)
	}
	return workCenters, nil
}

// LoadRawMaterials loads the optional declared raw-materials document.
// A missing path is not an error: declaration is optional.
func (l *Loader) LoadRawMaterials(path string) ([]*entities.RawMaterialDecl, error) {
	if path == "" {
		return nil, nil
	}

	var docs []rawMaterialDoc
	if err := l.readDocument(path, &docs); err != nil {
		return nil, err
	}

	var decls []*entities.RawMaterialDecl
	for i, doc := range docs {
		if err := l.validate.Struct(doc); err != nil {
			return nil, fmt.Errorf("raw materials document %s row %d: %w", path, i+1, err)
		}
		decl := &entities.RawMaterialDecl{PartID: entities.PartID(doc.Part)}
		if doc.OnHand != nil {
			onHand := decimal.NewFromFloat(*doc.OnHand)
			if onHand.IsNegative() {
				return nil, fmt.Errorf("raw materials document %s row %d: on_hand cannot be negative", path, i+1)
			}
			decl.OnHand = &onHand
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// SynthesizeParts builds the part reference table from every id the
// documents mention; the input set carries no separate part document
func (l *Loader) SynthesizeParts(
	steps []*entities.RoutingStep,
	orders []*entities.CustomerOrder,
	decls []*entities.RawMaterialDecl,
) []*entities.Part {
	seen := make(map[entities.PartID]bool)
	var ids []entities.PartID

	add := func(id entities.PartID) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, step := range steps {
		add(step.PartID)
		for _, in := range step.Inputs {
			add(in.PartID)
		}
	}
	for _, order := range orders {
		add(order.PartID)
	}
	for _, decl := range decls {
		add(decl.PartID)
	}

	parts := make([]*entities.Part, 0, len(ids))
	for _, id := range ids {
		part, _ := entities.NewPart(id, "", "")
		parts = append(parts, part)
	}
	return parts
}

// readDocument decodes path into v, choosing the codec by extension
func (l *Loader) readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read document %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse YAML document %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("failed to parse JSON document %s: %w", path, err)
		}
	}
	return nil
}
