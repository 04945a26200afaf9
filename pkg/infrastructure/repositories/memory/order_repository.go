package memory

import (
	"github.com/mfgkit/shopsched/pkg/domain/entities"
	"github.com/mfgkit/shopsched/pkg/domain/repositories"
)

// OrderRepository provides in-memory customer order storage
type OrderRepository struct {
	orders []entities.CustomerOrder
}

// NewOrderRepository creates a new in-memory order repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Verify interface compliance
var _ repositories.OrderRepository = (*OrderRepository)(nil)

// LoadOrders loads customer orders in document order
func (r *OrderRepository) LoadOrders(orders []*entities.CustomerOrder) error {
	for _, order := range orders {
		r.orders = append(r.orders, *order)
	}
	return nil
}

// AllOrders returns all customer orders in document order
func (r *OrderRepository) AllOrders() ([]*entities.CustomerOrder, error) {
	orders := make([]*entities.CustomerOrder, len(r.orders))
	for i := range r.orders {
		orders[i] = &r.orders[i]
	}
	return orders, nil
}
