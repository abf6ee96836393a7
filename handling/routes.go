package handling

import (
	"fmt"
	"maroon_shop/config"
	"maroon_shop/lib"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Route is one named API endpoint.
type Route struct {
	Name    string
	Method  string
	Pattern string
}

// Route names. Resource routes are "<Resource>.<Action>".
const (
	AddressList        = "Address.List"
	AddressGetByID     = "Address.GetById"
	AddressCreate      = "Address.Create"
	AddressUpdate      = "Address.Update"
	AddressByPostCode  = "Address.ByPostCode"
	BasketList         = "Basket.List"
	BasketGetByID      = "Basket.GetById"
	BasketCreate       = "Basket.Create"
	BasketUpdate       = "Basket.Update"
	BasketByCustomerID = "Basket.ByCustomerId"

	BasketItemList        = "BasketItem.List"
	BasketItemGetByID     = "BasketItem.GetById"
	BasketItemCreate      = "BasketItem.Create"
	BasketItemUpdate      = "BasketItem.Update"
	BasketItemByBasketID  = "BasketItem.ByBasketId"
	BasketItemByProductID = "BasketItem.ByProductId"

	CustomerList                       = "Customer.List"
	CustomerGetByID                    = "Customer.GetById"
	CustomerCreate                     = "Customer.Create"
	CustomerUpdate                     = "Customer.Update"
	CustomerByBillingAddressID         = "Customer.ByBillingAddressId"
	CustomerByDefaultShippingAddressID = "Customer.ByDefaultShippingAddressId"
	CustomerOrders                     = "Customer.Orders"

	OrderList                = "Order.List"
	OrderGetByID             = "Order.GetById"
	OrderCreate              = "Order.Create"
	OrderUpdate              = "Order.Update"
	OrderByCustomerID        = "Order.ByCustomerId"
	OrderByBillingAddressID  = "Order.ByBillingAddressId"
	OrderByShippingAddressID = "Order.ByShippingAddressId"

	OrderItemList        = "OrderItem.List"
	OrderItemGetByID     = "OrderItem.GetById"
	OrderItemCreate      = "OrderItem.Create"
	OrderItemUpdate      = "OrderItem.Update"
	OrderItemByOrderID   = "OrderItem.ByOrderId"
	OrderItemByProductID = "OrderItem.ByProductId"

	ProductList                 = "Product.List"
	ProductGetByID              = "Product.GetById"
	ProductCreate               = "Product.Create"
	ProductUpdate               = "Product.Update"
	ProductGetByUrlFriendlyName = "Product.GetByUrlFriendlyName"
)

func crud(resource string, getByID string) []Route {
	base := "/api/" + resource
	return []Route{
		{Name: resource + ".List", Method: http.MethodGet, Pattern: base},
		{Name: resource + ".GetById", Method: http.MethodGet, Pattern: base + getByID},
		{Name: resource + ".Create", Method: http.MethodPost, Pattern: base + "/Create"},
		{Name: resource + ".Update", Method: http.MethodPut, Pattern: base + "/Update"},
	}
}

func filters(resource string, names ...string) []Route {
	routes := make([]Route, 0, len(names))
	for _, name := range names {
		routes = append(routes, Route{
			Name:    resource + "." + name,
			Method:  http.MethodGet,
			Pattern: "/api/" + resource + "/" + name,
		})
	}
	return routes
}

func buildRoutes() map[string]Route {
	var all []Route
	all = append(all, crud("Address", "/{id}")...)
	all = append(all, filters("Address", "ByPostCode")...)
	all = append(all, crud("Basket", "/{id}")...)
	all = append(all, filters("Basket", "ByCustomerId")...)
	all = append(all, crud("BasketItem", "/{id}")...)
	all = append(all, filters("BasketItem", "ByBasketId", "ByProductId")...)
	all = append(all, crud("Customer", "/{id}")...)
	all = append(all, filters("Customer", "ByBillingAddressId", "ByDefaultShippingAddressId")...)
	all = append(all, Route{Name: CustomerOrders, Method: http.MethodGet, Pattern: "/api/Customer/{id}/Orders"})
	all = append(all, crud("Order", "/{id}")...)
	all = append(all, filters("Order", "ByCustomerId", "ByBillingAddressId", "ByShippingAddressId")...)
	all = append(all, crud("OrderItem", "/{id}")...)
	all = append(all, filters("OrderItem", "ByOrderId", "ByProductId")...)
	all = append(all, crud("Product", "/GetById/{id}")...)
	all = append(all, Route{Name: ProductGetByUrlFriendlyName, Method: http.MethodGet, Pattern: "/api/Product/{urlFriendlyName}"})

	table := make(map[string]Route, len(all))
	for _, route := range all {
		table[route.Name] = route
	}
	return table
}

var routes = buildRoutes()

// Lookup returns the named route; it panics on unknown names, which are programming errors.
func Lookup(name string) Route {
	route, ok := routes[name]
	if !ok {
		panic(fmt.Sprintf("handling: unknown route %q", name))
	}
	return route
}

// Register mounts h on r under the named route's method and pattern.
func Register(r chi.Router, name string, h http.HandlerFunc) {
	route := Lookup(name)
	r.Method(route.Method, route.Pattern, h)
}

// BaseURL is the scheme and host the caller reached us on. Proxies are honoured through
// X-Forwarded-Proto and X-Forwarded-Host; without a request the configured public URL is used.
func BaseURL(r *http.Request) string {
	if r == nil || r.Host == "" {
		return strings.TrimSuffix(config.GetConfig().Server.PublicURL, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	host := r.Host
	if forwarded := r.Header.Get("X-Forwarded-Host"); forwarded != "" {
		host = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}

	return scheme + "://" + host
}

// Path fills the named route's pattern with params.
func Path(name string, params map[string]string) string {
	path := Lookup(name).Pattern
	for key, value := range params {
		path = strings.ReplaceAll(path, "{"+key+"}", url.PathEscape(value))
	}
	return path
}

// URLFor builds the absolute URL of a named route.
func URLFor(r *http.Request, name string, params map[string]string, query url.Values) string {
	u := BaseURL(r) + Path(name, params)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// IDParam is the params map for routes keyed by {id}.
func IDParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}

// PageLinks links pages of the named listing, keeping its filter parameters.
func PageLinks(r *http.Request, name string, filter url.Values) lib.PageLink {
	return func(pageNumber, pageSize int) string {
		query := url.Values{}
		for key, values := range filter {
			query[key] = values
		}
		query.Set("pageNumber", strconv.Itoa(pageNumber))
		query.Set("pageSize", strconv.Itoa(pageSize))
		return URLFor(r, name, nil, query)
	}
}
