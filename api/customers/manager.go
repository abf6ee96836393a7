package customers

import (
	"maroon_shop/api/resource"
	"maroon_shop/handling"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CustomerRoutesManager struct {
	handlers *resource.Handlers[tables.Customer, structs.CreateCustomerRequest, structs.UpdateCustomerRequest, structs.CustomerResponse]
	repo     *repositories.CustomerRepository
	logger   *gecho.Logger
}

func NewCustomerRoutesManager(logger *gecho.Logger, repo *repositories.CustomerRepository) *CustomerRoutesManager {
	return &CustomerRoutesManager{
		handlers: resource.New("Customer", "customerId", logger, resource.Store[tables.Customer, structs.CreateCustomerRequest, structs.UpdateCustomerRequest](repo),
			(*tables.Customer).Response,
			func(c *tables.Customer) int64 { return c.CustomerID },
		),
		repo:   repo,
		logger: logger,
	}
}

func (crm *CustomerRoutesManager) RegisterRoutes(r chi.Router) {
	crm.handlers.RegisterRoutes(r)
	handling.Register(r, handling.CustomerByBillingAddressID,
		crm.handlers.ByID(handling.CustomerByBillingAddressID, "billingAddressId", crm.repo.ListByBillingAddressID))
	handling.Register(r, handling.CustomerByDefaultShippingAddressID,
		crm.handlers.ByID(handling.CustomerByDefaultShippingAddressID, "defaultShippingAddressId", crm.repo.ListByDefaultShippingAddressID))
	handling.Register(r, handling.CustomerOrders, crm.Orders)
}

// Orders redirects to the customer's order listing.
func (crm *CustomerRoutesManager) Orders(w http.ResponseWriter, r *http.Request) {
	id, err := handling.PathID(r, "id")
	if err != nil {
		handling.WriteError(w, err, "Customer", crm.logger)
		return
	}

	target := handling.URLFor(r, handling.OrderByCustomerID, nil, url.Values{"customerId": {strconv.FormatInt(id, 10)}})
	http.Redirect(w, r, target, http.StatusFound)
}
