package tables

import (
	"maroon_shop/structs"
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	tableName         struct{}        `bun:"table:orders,alias:o"`
	OrderID           int64           `bun:"order_id,pk,autoincrement"`
	CustomerID        int64           `bun:"customer_id,notnull"`
	TotalPrice        decimal.Decimal `bun:"total_price,notnull,type:decimal(18,2)"`
	DateCreated       time.Time       `bun:"date_created,notnull"`
	BillingAddressID  int64           `bun:"billing_address_id,notnull"`
	ShippingAddressID int64           `bun:"shipping_address_id,notnull"`

	Items []OrderItem `bun:"rel:has-many,join:order_id=order_id"`
}

func (o *Order) Response() structs.OrderResponse {
	return structs.OrderResponse{
		OrderID:           o.OrderID,
		CustomerID:        o.CustomerID,
		TotalPrice:        o.TotalPrice,
		DateCreated:       o.DateCreated,
		BillingAddressID:  o.BillingAddressID,
		ShippingAddressID: o.ShippingAddressID,
	}
}

func NewOrder(req *structs.CreateOrderRequest, now time.Time) *Order {
	return &Order{
		CustomerID:        req.CustomerID,
		TotalPrice:        decimal.Zero,
		DateCreated:       now.UTC(),
		BillingAddressID:  req.BillingAddressID,
		ShippingAddressID: req.ShippingAddressID,
	}
}

func (o *Order) Apply(req *structs.UpdateOrderRequest) {
	o.CustomerID = req.CustomerID
	o.BillingAddressID = req.BillingAddressID
	o.ShippingAddressID = req.ShippingAddressID
}

type OrderItem struct {
	tableName   struct{}        `bun:"table:order_items,alias:oi"`
	OrderItemID int64           `bun:"order_item_id,pk,autoincrement"`
	OrderID     int64           `bun:"order_id,notnull"`
	ProductID   int64           `bun:"product_id,notnull"`
	Quantity    int             `bun:"quantity,notnull"`
	UnitPrice   decimal.Decimal `bun:"unit_price,notnull,type:decimal(18,2)"`
	TotalPrice  decimal.Decimal `bun:"total_price,notnull,type:decimal(18,2)"`

	Product *Product `bun:"rel:belongs-to,join:product_id=product_id"`
}

func (oi *OrderItem) Response() structs.OrderItemResponse {
	return structs.OrderItemResponse{
		OrderItemID: oi.OrderItemID,
		OrderID:     oi.OrderID,
		ProductID:   oi.ProductID,
		Quantity:    oi.Quantity,
		UnitPrice:   oi.UnitPrice,
		TotalPrice:  oi.TotalPrice,
	}
}

func (oi *OrderItem) Reprice() {
	oi.UnitPrice = oi.UnitPrice.Round(2)
	oi.TotalPrice = LineTotal(oi.Quantity, oi.UnitPrice)
}

func NewOrderItem(req *structs.CreateOrderItemRequest) *OrderItem {
	item := &OrderItem{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	item.Reprice()
	return item
}

func (oi *OrderItem) Apply(req *structs.UpdateOrderItemRequest) {
	oi.OrderID = req.OrderID
	oi.ProductID = req.ProductID
	oi.Quantity = req.Quantity
	oi.UnitPrice = req.UnitPrice
	oi.Reprice()
}

// FromBasketItem copies a basket line into an order, keeping the price the customer saw.
func FromBasketItem(orderID int64, bi *BasketItem) *OrderItem {
	return &OrderItem{
		OrderID:    orderID,
		ProductID:  bi.ProductID,
		Quantity:   bi.Quantity,
		UnitPrice:  bi.UnitPrice,
		TotalPrice: bi.TotalPrice,
	}
}
