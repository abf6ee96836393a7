package basketitems

import (
	"maroon_shop/api/resource"
	"maroon_shop/handling"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type BasketItemRoutesManager struct {
	handlers *resource.Handlers[tables.BasketItem, structs.CreateBasketItemRequest, structs.UpdateBasketItemRequest, structs.BasketItemResponse]
	repo     *repositories.BasketItemRepository
}

// NewBasketItemRoutesManager serves basket items. Writes recompute the owning basket's total.
func NewBasketItemRoutesManager(logger *gecho.Logger, repo *repositories.BasketItemRepository) *BasketItemRoutesManager {
	return &BasketItemRoutesManager{
		handlers: resource.New("BasketItem", "basketItemId", logger, resource.Store[tables.BasketItem, structs.CreateBasketItemRequest, structs.UpdateBasketItemRequest](repo),
			(*tables.BasketItem).Response,
			func(bi *tables.BasketItem) int64 { return bi.BasketItemID },
		),
		repo: repo,
	}
}

func (bim *BasketItemRoutesManager) RegisterRoutes(r chi.Router) {
	bim.handlers.RegisterRoutes(r)
	handling.Register(r, handling.BasketItemByBasketID,
		bim.handlers.ByID(handling.BasketItemByBasketID, "basketId", bim.repo.ListByBasketID))
	handling.Register(r, handling.BasketItemByProductID,
		bim.handlers.ByID(handling.BasketItemByProductID, "productId", bim.repo.ListByProductID))
}
