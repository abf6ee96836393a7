package api

import (
	"maroon_shop/api/addresses"
	"maroon_shop/api/basketitems"
	"maroon_shop/api/baskets"
	"maroon_shop/api/customers"
	"maroon_shop/api/health"
	"maroon_shop/api/orderitems"
	"maroon_shop/api/orders"
	"maroon_shop/api/products"
	"maroon_shop/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	addressRoutes    *addresses.AddressRoutesManager
	customerRoutes   *customers.CustomerRoutesManager
	productRoutes    *products.ProductRoutesManager
	basketRoutes     *baskets.BasketRoutesManager
	basketItemRoutes *basketitems.BasketItemRoutesManager
	orderRoutes      *orders.OrderRoutesManager
	orderItemRoutes  *orderitems.OrderItemRoutesManager
	healthRoutes     *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager) *routerManager {
	repos := sm.Repositories
	return &routerManager{
		addressRoutes:    addresses.NewAddressRoutesManager(logger, repos.Addresses),
		customerRoutes:   customers.NewCustomerRoutesManager(logger, repos.Customers),
		productRoutes:    products.NewProductRoutesManager(logger, repos.Products),
		basketRoutes:     baskets.NewBasketRoutesManager(logger, repos.Baskets),
		basketItemRoutes: basketitems.NewBasketItemRoutesManager(logger, repos.BasketItems),
		orderRoutes:      orders.NewOrderRoutesManager(logger, repos.Orders),
		orderItemRoutes:  orderitems.NewOrderItemRoutesManager(logger, repos.OrderItems),
		healthRoutes:     health.NewHealthRoutesManager(logger, sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.addressRoutes.RegisterRoutes(r)
	rm.customerRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.basketRoutes.RegisterRoutes(r)
	rm.basketItemRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.orderItemRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
