package orders

import (
	"maroon_shop/api/resource"
	"maroon_shop/handling"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	handlers *resource.Handlers[tables.Order, structs.CreateOrderRequest, structs.UpdateOrderRequest, structs.OrderResponse]
	repo     *repositories.OrderRepository
}

func NewOrderRoutesManager(logger *gecho.Logger, repo *repositories.OrderRepository) *OrderRoutesManager {
	return &OrderRoutesManager{
		handlers: resource.New("Order", "orderId", logger, resource.Store[tables.Order, structs.CreateOrderRequest, structs.UpdateOrderRequest](repo),
			(*tables.Order).Response,
			func(o *tables.Order) int64 { return o.OrderID },
		),
		repo: repo,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	orm.handlers.RegisterRoutes(r)
	handling.Register(r, handling.OrderByCustomerID,
		orm.handlers.ByID(handling.OrderByCustomerID, "customerId", orm.repo.ListByCustomerID))
	handling.Register(r, handling.OrderByBillingAddressID,
		orm.handlers.ByID(handling.OrderByBillingAddressID, "billingAddressId", orm.repo.ListByBillingAddressID))
	handling.Register(r, handling.OrderByShippingAddressID,
		orm.handlers.ByID(handling.OrderByShippingAddressID, "shippingAddressId", orm.repo.ListByShippingAddressID))
}
