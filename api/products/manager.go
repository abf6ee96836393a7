package products

import (
	"maroon_shop/api/resource"
	"maroon_shop/handling"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	handlers *resource.Handlers[tables.Product, structs.CreateProductRequest, structs.UpdateProductRequest, structs.ProductResponse]
	repo     *repositories.ProductRepository
	logger   *gecho.Logger
}

func NewProductRoutesManager(logger *gecho.Logger, repo *repositories.ProductRepository) *ProductRoutesManager {
	return &ProductRoutesManager{
		handlers: resource.New("Product", "productId", logger, resource.Store[tables.Product, structs.CreateProductRequest, structs.UpdateProductRequest](repo),
			(*tables.Product).Response,
			func(p *tables.Product) int64 { return p.ProductID },
		),
		repo:   repo,
		logger: logger,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	prm.handlers.RegisterRoutes(r)
	handling.Register(r, handling.ProductGetByUrlFriendlyName, prm.FetchByUrlFriendlyName)
}

// FetchByUrlFriendlyName handles GET /api/Product/{urlFriendlyName}; the match is exact and case-sensitive.
func (prm *ProductRoutesManager) FetchByUrlFriendlyName(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "urlFriendlyName")

	product, err := prm.repo.GetByUrlFriendlyName(r.Context(), slug)
	if err != nil {
		handling.WriteError(w, err, "Product", prm.logger)
		return
	}

	handling.WriteJSON(w, http.StatusOK, product.Response())
}
