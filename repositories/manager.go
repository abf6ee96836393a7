package repositories

import "github.com/uptrace/bun"

// Manager bundles one repository per entity over the same handle.
type Manager struct {
	Addresses   *AddressRepository
	Customers   *CustomerRepository
	Products    *ProductRepository
	Baskets     *BasketRepository
	BasketItems *BasketItemRepository
	Orders      *OrderRepository
	OrderItems  *OrderItemRepository

	cache ProductCache
}

// NewManager builds every repository on db; cache may be nil.
func NewManager(db bun.IDB, cache ProductCache) *Manager {
	return &Manager{
		Addresses:   NewAddressRepository(db),
		Customers:   NewCustomerRepository(db),
		Products:    NewProductRepository(db, cache),
		Baskets:     NewBasketRepository(db),
		BasketItems: NewBasketItemRepository(db),
		Orders:      NewOrderRepository(db),
		OrderItems:  NewOrderItemRepository(db),
		cache:       cache,
	}
}

// WithTx returns a manager whose repositories all run on tx.
func (m *Manager) WithTx(tx bun.IDB) *Manager {
	return NewManager(tx, m.cache)
}
