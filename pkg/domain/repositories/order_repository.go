package repositories

import "github.com/mfgkit/shopsched/pkg/domain/entities"

// OrderRepository provides access to customer orders for one run
type OrderRepository interface {
	// AllOrders returns orders in document order.
	AllOrders() ([]*entities.CustomerOrder, error)
	LoadOrders(orders []*entities.CustomerOrder) error
}
