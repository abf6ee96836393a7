package baskets

import (
	"maroon_shop/api/resource"
	"maroon_shop/handling"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type BasketRoutesManager struct {
	handlers *resource.Handlers[tables.Basket, structs.CreateBasketRequest, structs.UpdateBasketRequest, structs.BasketResponse]
	repo     *repositories.BasketRepository
}

func NewBasketRoutesManager(logger *gecho.Logger, repo *repositories.BasketRepository) *BasketRoutesManager {
	return &BasketRoutesManager{
		handlers: resource.New("Basket", "basketId", logger, resource.Store[tables.Basket, structs.CreateBasketRequest, structs.UpdateBasketRequest](repo),
			(*tables.Basket).Response,
			func(b *tables.Basket) int64 { return b.BasketID },
		),
		repo: repo,
	}
}

func (brm *BasketRoutesManager) RegisterRoutes(r chi.Router) {
	brm.handlers.RegisterRoutes(r)
	handling.Register(r, handling.BasketByCustomerID,
		brm.handlers.ByID(handling.BasketByCustomerID, "customerId", brm.repo.ListByCustomerID))
}
