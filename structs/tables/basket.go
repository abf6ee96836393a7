package tables

import (
	"maroon_shop/structs"

	"github.com/shopspring/decimal"
)

type Basket struct {
	tableName  struct{}        `bun:"table:baskets,alias:b"`
	BasketID   int64           `bun:"basket_id,pk,autoincrement"`
	CustomerID int64           `bun:"customer_id,notnull"`
	TotalPrice decimal.Decimal `bun:"total_price,notnull,type:decimal(18,2)"`

	Customer *Customer    `bun:"rel:belongs-to,join:customer_id=customer_id"`
	Items    []BasketItem `bun:"rel:has-many,join:basket_id=basket_id"`
}

func (b *Basket) Response() structs.BasketResponse {
	return structs.BasketResponse{
		BasketID:   b.BasketID,
		CustomerID: b.CustomerID,
		TotalPrice: b.TotalPrice,
	}
}

type BasketItem struct {
	tableName    struct{}        `bun:"table:basket_items,alias:bi"`
	BasketItemID int64           `bun:"basket_item_id,pk,autoincrement"`
	BasketID     int64           `bun:"basket_id,notnull"`
	ProductID    int64           `bun:"product_id,notnull"`
	Quantity     int             `bun:"quantity,notnull"`
	UnitPrice    decimal.Decimal `bun:"unit_price,notnull,type:decimal(18,2)"`
	TotalPrice   decimal.Decimal `bun:"total_price,notnull,type:decimal(18,2)"`

	Product *Product `bun:"rel:belongs-to,join:product_id=product_id"`
}

func (bi *BasketItem) Response() structs.BasketItemResponse {
	return structs.BasketItemResponse{
		BasketItemID: bi.BasketItemID,
		BasketID:     bi.BasketID,
		ProductID:    bi.ProductID,
		Quantity:     bi.Quantity,
		UnitPrice:    bi.UnitPrice,
		TotalPrice:   bi.TotalPrice,
	}
}

// Reprice sets the line total from quantity and unit price.
func (bi *BasketItem) Reprice() {
	bi.UnitPrice = bi.UnitPrice.Round(2)
	bi.TotalPrice = LineTotal(bi.Quantity, bi.UnitPrice)
}

func NewBasketItem(req *structs.CreateBasketItemRequest) *BasketItem {
	item := &BasketItem{
		BasketID:  req.BasketID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	item.Reprice()
	return item
}

func (bi *BasketItem) Apply(req *structs.UpdateBasketItemRequest) {
	bi.BasketID = req.BasketID
	bi.ProductID = req.ProductID
	bi.Quantity = req.Quantity
	bi.UnitPrice = req.UnitPrice
	bi.Reprice()
}

func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
