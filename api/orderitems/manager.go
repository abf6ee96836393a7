package orderitems

import (
	"maroon_shop/api/resource"
	"maroon_shop/handling"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderItemRoutesManager struct {
	handlers *resource.Handlers[tables.OrderItem, structs.CreateOrderItemRequest, structs.UpdateOrderItemRequest, structs.OrderItemResponse]
	repo     *repositories.OrderItemRepository
}

func NewOrderItemRoutesManager(logger *gecho.Logger, repo *repositories.OrderItemRepository) *OrderItemRoutesManager {
	return &OrderItemRoutesManager{
		handlers: resource.New("OrderItem", "orderItemId", logger, resource.Store[tables.OrderItem, structs.CreateOrderItemRequest, structs.UpdateOrderItemRequest](repo),
			(*tables.OrderItem).Response,
			func(oi *tables.OrderItem) int64 { return oi.OrderItemID },
		),
		repo: repo,
	}
}

func (oim *OrderItemRoutesManager) RegisterRoutes(r chi.Router) {
	oim.handlers.RegisterRoutes(r)
	handling.Register(r, handling.OrderItemByOrderID,
		oim.handlers.ByID(handling.OrderItemByOrderID, "orderId", oim.repo.ListByOrderID))
	handling.Register(r, handling.OrderItemByProductID,
		oim.handlers.ByID(handling.OrderItemByProductID, "productId", oim.repo.ListByProductID))
}
