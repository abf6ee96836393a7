package structs

import "github.com/shopspring/decimal"

type BasketResponse struct {
	BasketID   int64           `json:"basketId"`
	CustomerID int64           `json:"customerId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

type CreateBasketRequest struct {
	CustomerID int64 `json:"customerId" validate:"required" label:"Customer Id"`
}

// UpdateBasketRequest reassigns a basket. The total is always derived from the items.
type UpdateBasketRequest struct {
	BasketID   int64 `json:"basketId"`
	CustomerID int64 `json:"customerId" validate:"required" label:"Customer Id"`
}

type BasketItemResponse struct {
	BasketItemID int64           `json:"basketItemId"`
	BasketID     int64           `json:"basketId"`
	ProductID    int64           `json:"productId"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

type CreateBasketItemRequest struct {
	BasketID  int64           `json:"basketId" validate:"required" label:"Basket Id"`
	ProductID int64           `json:"productId" validate:"required" label:"Product Id"`
	Quantity  int             `json:"quantity" validate:"min=1" label:"Quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"gt=0,money" label:"Unit Price"`
}

type UpdateBasketItemRequest struct {
	BasketItemID int64           `json:"basketItemId"`
	BasketID     int64           `json:"basketId" validate:"required" label:"Basket Id"`
	ProductID    int64           `json:"productId" validate:"required" label:"Product Id"`
	Quantity     int             `json:"quantity" validate:"min=1" label:"Quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice" validate:"gt=0,money" label:"Unit Price"`
}

// BasketTotals is what the basket page needs after a quantity change or removal.
type BasketTotals struct {
	ItemTotalPrice   decimal.Decimal
	BasketTotalPrice decimal.Decimal
}
