package repositories

import "github.com/mfgkit/shopsched/pkg/domain/entities"

// CatalogRepository provides access to the reference tables loaded for one
// scheduling run: parts, routing steps, work centers and declared raw
// materials. Implementations own the tables for the run's duration.
type CatalogRepository interface {
	GetPart(id entities.PartID) (*entities.Part, error)
	AllParts() ([]*entities.Part, error)
	LoadParts(parts []*entities.Part) error

	// AllSteps returns routing steps in declaration order.
	AllSteps() ([]*entities.RoutingStep, error)

	// StepsProducing returns the routing chain for a part, ordered by
	// sequence number then declaration order.
	StepsProducing(partID entities.PartID) ([]*entities.RoutingStep, error)
	LoadSteps(steps []*entities.RoutingStep) error

	GetWorkCenter(id entities.WorkCenterID) (*entities.WorkCenter, error)
	AllWorkCenters() ([]*entities.WorkCenter, error)
	LoadWorkCenters(workCenters []*entities.WorkCenter) error

	RawMaterialDecls() ([]*entities.RawMaterialDecl, error)
	LoadRawMaterialDecls(decls []*entities.RawMaterialDecl) error
}
