package client

import (
	"context"
	"maroon_shop/handling"
	"maroon_shop/structs"
	"net/http"
	"net/url"
	"strconv"
)

// Resource covers the calls every entity has. R is the response, C and U the
// create and update requests.
type Resource[R, C, U any] struct {
	c    *Client
	name string
}

func newResource[R, C, U any](c *Client, name string) Resource[R, C, U] {
	return Resource[R, C, U]{c: c, name: name}
}

func (res Resource[R, C, U]) route(action string) string {
	return res.name + "." + action
}

func pageQuery(pageNumber, pageSize int) url.Values {
	query := url.Values{}
	if pageNumber > 0 {
		query.Set("pageNumber", strconv.Itoa(pageNumber))
	}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}
	return query
}

// List fetches one page. Zero pageNumber or pageSize leaves the server default.
func (res Resource[R, C, U]) List(ctx context.Context, pageNumber, pageSize int) (*structs.PagedResponse[R], error) {
	return res.listing(ctx, res.route("List"), nil, pageNumber, pageSize)
}

func (res Resource[R, C, U]) listing(ctx context.Context, routeName string, filter url.Values, pageNumber, pageSize int) (*structs.PagedResponse[R], error) {
	query := pageQuery(pageNumber, pageSize)
	for key, values := range filter {
		query[key] = values
	}

	var page structs.PagedResponse[R]
	if _, err := res.c.do(ctx, http.MethodGet, handling.Path(routeName, nil), query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (res Resource[R, C, U]) byID(ctx context.Context, routeName, key string, id int64, pageNumber, pageSize int) (*structs.PagedResponse[R], error) {
	return res.listing(ctx, routeName, url.Values{key: {strconv.FormatInt(id, 10)}}, pageNumber, pageSize)
}

// Created is a newly created record and the URL it can be fetched from.
type Created[R any] struct {
	Record   R
	Location string
}

func (res Resource[R, C, U]) Create(ctx context.Context, req *C) (*Created[R], error) {
	var record R
	resp, err := res.c.do(ctx, http.MethodPost, handling.Path(res.route("Create"), nil), nil, req, &record)
	if err != nil {
		return nil, err
	}
	return &Created[R]{Record: record, Location: resp.Header.Get("Location")}, nil
}

// Update replaces the record with the given id. The id must match the one in req.
func (res Resource[R, C, U]) Update(ctx context.Context, id int64, req *U) error {
	query := url.Values{"id": {strconv.FormatInt(id, 10)}}
	_, err := res.c.do(ctx, http.MethodPut, handling.Path(res.route("Update"), nil), query, req, nil)
	return err
}

// Item addresses a single record for GetById.
func (res Resource[R, C, U]) Item(id int64) *ItemRequest[R] {
	return &ItemRequest[R]{c: res.c, path: handling.Path(res.route("GetById"), handling.IDParam(id))}
}

// ItemString addresses a record by an id that has not been parsed yet.
//
// Deprecated: use Item. Non-numeric ids are sent as-is and rejected by the server with a 400.
func (res Resource[R, C, U]) ItemString(id string) *ItemRequest[R] {
	return &ItemRequest[R]{c: res.c, path: handling.Path(res.route("GetById"), map[string]string{"id": id})}
}

type ItemRequest[R any] struct {
	c    *Client
	path string
}

func (ir *ItemRequest[R]) Get(ctx context.Context) (*R, error) {
	var record R
	if _, err := ir.c.do(ctx, http.MethodGet, ir.path, nil, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

type AddressResource struct {
	Resource[structs.AddressResponse, structs.CreateAddressRequest, structs.UpdateAddressRequest]
}

// ByPostCode lists addresses whose post code starts with prefix.
func (ar AddressResource) ByPostCode(ctx context.Context, prefix string, pageNumber, pageSize int) (*structs.PagedResponse[structs.AddressResponse], error) {
	return ar.listing(ctx, handling.AddressByPostCode, url.Values{"postCode": {prefix}}, pageNumber, pageSize)
}

type CustomerResource struct {
	Resource[structs.CustomerResponse, structs.CreateCustomerRequest, structs.UpdateCustomerRequest]
}

func (cr CustomerResource) ByBillingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.CustomerResponse], error) {
	return cr.byID(ctx, handling.CustomerByBillingAddressID, "billingAddressId", addressID, pageNumber, pageSize)
}

func (cr CustomerResource) ByDefaultShippingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.CustomerResponse], error) {
	return cr.byID(ctx, handling.CustomerByDefaultShippingAddressID, "defaultShippingAddressId", addressID, pageNumber, pageSize)
}

// Orders fetches the first page of the customer's orders through the redirect the API answers with.
func (cr CustomerResource) Orders(ctx context.Context, customerID int64) (*structs.PagedResponse[structs.OrderResponse], error) {
	var page structs.PagedResponse[structs.OrderResponse]
	path := handling.Path(handling.CustomerOrders, handling.IDParam(customerID))
	if _, err := cr.c.do(ctx, http.MethodGet, path, nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type ProductResource struct {
	Resource[structs.ProductResponse, structs.CreateProductRequest, structs.UpdateProductRequest]
}

// BySlug fetches a product by its exact URL-friendly name.
func (pr ProductResource) BySlug(ctx context.Context, slug string) (*structs.ProductResponse, error) {
	var product structs.ProductResponse
	path := handling.Path(handling.ProductGetByUrlFriendlyName, map[string]string{"urlFriendlyName": slug})
	if _, err := pr.c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

type BasketResource struct {
	Resource[structs.BasketResponse, structs.CreateBasketRequest, structs.UpdateBasketRequest]
}

func (br BasketResource) ByCustomerID(ctx context.Context, customerID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.BasketResponse], error) {
	return br.byID(ctx, handling.BasketByCustomerID, "customerId", customerID, pageNumber, pageSize)
}

type BasketItemResource struct {
	Resource[structs.BasketItemResponse, structs.CreateBasketItemRequest, structs.UpdateBasketItemRequest]
}

func (bir BasketItemResource) ByBasketID(ctx context.Context, basketID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.BasketItemResponse], error) {
	return bir.byID(ctx, handling.BasketItemByBasketID, "basketId", basketID, pageNumber, pageSize)
}

func (bir BasketItemResource) ByProductID(ctx context.Context, productID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.BasketItemResponse], error) {
	return bir.byID(ctx, handling.BasketItemByProductID, "productId", productID, pageNumber, pageSize)
}

type OrderResource struct {
	Resource[structs.OrderResponse, structs.CreateOrderRequest, structs.UpdateOrderRequest]
}

func (o OrderResource) ByCustomerID(ctx context.Context, customerID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.OrderResponse], error) {
	return o.byID(ctx, handling.OrderByCustomerID, "customerId", customerID, pageNumber, pageSize)
}

func (o OrderResource) ByBillingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.OrderResponse], error) {
	return o.byID(ctx, handling.OrderByBillingAddressID, "billingAddressId", addressID, pageNumber, pageSize)
}

func (o OrderResource) ByShippingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.OrderResponse], error) {
	return o.byID(ctx, handling.OrderByShippingAddressID, "shippingAddressId", addressID, pageNumber, pageSize)
}

type OrderItemResource struct {
	Resource[structs.OrderItemResponse, structs.CreateOrderItemRequest, structs.UpdateOrderItemRequest]
}

func (oir OrderItemResource) ByOrderID(ctx context.Context, orderID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.OrderItemResponse], error) {
	return oir.byID(ctx, handling.OrderItemByOrderID, "orderId", orderID, pageNumber, pageSize)
}

func (oir OrderItemResource) ByProductID(ctx context.Context, productID int64, pageNumber, pageSize int) (*structs.PagedResponse[structs.OrderItemResponse], error) {
	return oir.byID(ctx, handling.OrderItemByProductID, "productId", productID, pageNumber, pageSize)
}

func (c *Client) Address() AddressResource {
	return AddressResource{newResource[structs.AddressResponse, structs.CreateAddressRequest, structs.UpdateAddressRequest](c, "Address")}
}

func (c *Client) Customer() CustomerResource {
	return CustomerResource{newResource[structs.CustomerResponse, structs.CreateCustomerRequest, structs.UpdateCustomerRequest](c, "Customer")}
}

func (c *Client) Product() ProductResource {
	return ProductResource{newResource[structs.ProductResponse, structs.CreateProductRequest, structs.UpdateProductRequest](c, "Product")}
}

func (c *Client) Basket() BasketResource {
	return BasketResource{newResource[structs.BasketResponse, structs.CreateBasketRequest, structs.UpdateBasketRequest](c, "Basket")}
}

func (c *Client) BasketItem() BasketItemResource {
	return BasketItemResource{newResource[structs.BasketItemResponse, structs.CreateBasketItemRequest, structs.UpdateBasketItemRequest](c, "BasketItem")}
}

func (c *Client) Order() OrderResource {
	return OrderResource{newResource[structs.OrderResponse, structs.CreateOrderRequest, structs.UpdateOrderRequest](c, "Order")}
}

func (c *Client) OrderItem() OrderItemResource {
	return OrderItemResource{newResource[structs.OrderItemResponse, structs.CreateOrderItemRequest, structs.UpdateOrderItemRequest](c, "OrderItem")}
}
