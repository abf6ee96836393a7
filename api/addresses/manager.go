package addresses

import (
	"context"
	"maroon_shop/api/resource"
	"maroon_shop/handling"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"
	"net/http"
	"net/url"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AddressRoutesManager struct {
	handlers *resource.Handlers[tables.Address, structs.CreateAddressRequest, structs.UpdateAddressRequest, structs.AddressResponse]
	repo     *repositories.AddressRepository
	logger   *gecho.Logger
}

func NewAddressRoutesManager(logger *gecho.Logger, repo *repositories.AddressRepository) *AddressRoutesManager {
	return &AddressRoutesManager{
		handlers: resource.New("Address", "addressId", logger, resource.Store[tables.Address, structs.CreateAddressRequest, structs.UpdateAddressRequest](repo),
			(*tables.Address).Response,
			func(a *tables.Address) int64 { return a.AddressID },
		),
		repo:   repo,
		logger: logger,
	}
}

func (arm *AddressRoutesManager) RegisterRoutes(r chi.Router) {
	arm.handlers.RegisterRoutes(r)
	handling.Register(r, handling.AddressByPostCode, arm.ByPostCode)
}

// ByPostCode lists addresses whose post code starts with the postCode parameter.
func (arm *AddressRoutesManager) ByPostCode(w http.ResponseWriter, r *http.Request) {
	prefix, err := handling.QueryString(r, "postCode")
	if err != nil {
		handling.WriteError(w, err, "Address", arm.logger)
		return
	}

	arm.handlers.WritePage(w, r, handling.AddressByPostCode, url.Values{"postCode": {prefix}},
		func(ctx context.Context, pageNumber, pageSize int) ([]tables.Address, int, error) {
			return arm.repo.ListByPostCode(ctx, prefix, pageNumber, pageSize)
		})
}
