package structs

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	OrderID           int64           `json:"orderId"`
	CustomerID        int64           `json:"customerId"`
	TotalPrice        decimal.Decimal `json:"totalPrice"`
	DateCreated       time.Time       `json:"dateCreated"`
	BillingAddressID  int64           `json:"billingAddressId"`
	ShippingAddressID int64           `json:"shippingAddressId"`
}

type CreateOrderRequest struct {
	CustomerID        int64 `json:"customerId" validate:"required" label:"Customer Id"`
	BillingAddressID  int64 `json:"billingAddressId" validate:"required" label:"Billing Address Id"`
	ShippingAddressID int64 `json:"shippingAddressId" validate:"required" label:"Shipping Address Id"`
}

// UpdateOrderRequest never carries the creation date or the total; both are fixed server side.
type UpdateOrderRequest struct {
	OrderID           int64 `json:"orderId"`
	CustomerID        int64 `json:"customerId" validate:"required" label:"Customer Id"`
	BillingAddressID  int64 `json:"billingAddressId" validate:"required" label:"Billing Address Id"`
	ShippingAddressID int64 `json:"shippingAddressId" validate:"required" label:"Shipping Address Id"`
}

type OrderItemResponse struct {
	OrderItemID int64           `json:"orderItemId"`
	OrderID     int64           `json:"orderId"`
	ProductID   int64           `json:"productId"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type CreateOrderItemRequest struct {
	OrderID   int64           `json:"orderId" validate:"required" label:"Order Id"`
	ProductID int64           `json:"productId" validate:"required" label:"Product Id"`
	Quantity  int             `json:"quantity" validate:"min=1" label:"Quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gt=0,money" label:"Unit Price"`
}

type UpdateOrderItemRequest struct {
	OrderItemID int64           `json:"orderItemId"`
	OrderID     int64           `json:"orderId" validate:"required" label:"Order Id"`
	ProductID   int64           `json:"productId" validate:"required" label:"Product Id"`
	Quantity    int             `json:"quantity" validate:"min=1" label:"Quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"gt=0,money" label:"Unit Price"`
}

// OrderPlacedEvent is published once a basket has been converted.
type OrderPlacedEvent struct {
	OrderID     int64               `json:"orderId"`
	CustomerID  int64               `json:"customerId"`
	TotalPrice  decimal.Decimal     `json:"totalPrice"`
	DateCreated time.Time           `json:"dateCreated"`
	Items       []OrderItemResponse `json:"items"`
}
