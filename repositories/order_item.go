package repositories

import (
	"context"
	"maroon_shop/database"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/uptrace/bun"
)

type OrderItemRepository struct {
	Repository[tables.OrderItem]
}

func NewOrderItemRepository(db bun.IDB) *OrderItemRepository {
	return &OrderItemRepository{Repository: newRepository[tables.OrderItem](db, "order_item_id")}
}

func (r *OrderItemRepository) WithTx(tx bun.IDB) *OrderItemRepository {
	return NewOrderItemRepository(tx)
}

func checkOrderItemReferences(ctx context.Context, db bun.IDB, orderID, productID int64) error {
	if err := requireRow[tables.Order](ctx, db, "order_id", orderID, "orderId"); err != nil {
		return err
	}
	return requireRow[tables.Product](ctx, db, "product_id", productID, "productId")
}

// Create adds the item and refreshes the order total in one transaction.
func (r *OrderItemRepository) Create(ctx context.Context, req *structs.CreateOrderItemRequest) (*tables.OrderItem, error) {
	var created *tables.OrderItem
	err := inTx(ctx, r.db, func(ctx context.Context, tx bun.IDB) error {
		if err := checkOrderItemReferences(ctx, tx, req.OrderID, req.ProductID); err != nil {
			return err
		}

		item, err := insert(ctx, tx, tables.NewOrderItem(req))
		if err != nil {
			return err
		}

		if _, err := RecomputeOrderTotal(ctx, tx, item.OrderID); err != nil {
			return err
		}
		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update overwrites the item and refreshes the totals of its old and new order.
func (r *OrderItemRepository) Update(ctx context.Context, id int64, req *structs.UpdateOrderItemRequest) error {
	if req.OrderItemID != id {
		return lib.ErrIDMismatch
	}

	return inTx(ctx, r.db, func(ctx context.Context, tx bun.IDB) error {
		item, err := r.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := checkOrderItemReferences(ctx, tx, req.OrderID, req.ProductID); err != nil {
			return err
		}

		oldOrderID := item.OrderID
		item.Apply(req)
		if err := update(ctx, tx, item); err != nil {
			return err
		}

		if _, err := RecomputeOrderTotal(ctx, tx, item.OrderID); err != nil {
			return err
		}
		if oldOrderID != item.OrderID {
			if _, err := RecomputeOrderTotal(ctx, tx, oldOrderID); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertMany copies prepared items into an order without touching its total.
func (r *OrderItemRepository) InsertMany(ctx context.Context, items []*tables.OrderItem) error {
	for _, item := range items {
		if _, err := insert(ctx, r.db, item); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderItemRepository) ListByOrderID(ctx context.Context, orderID int64, pageNumber, pageSize int) ([]tables.OrderItem, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "order_id", Value: orderID}, pageNumber, pageSize)
}

func (r *OrderItemRepository) ListByProductID(ctx context.Context, productID int64, pageNumber, pageSize int) ([]tables.OrderItem, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "product_id", Value: productID}, pageNumber, pageSize)
}

// AllInOrder returns every item of the order with its product loaded.
func (r *OrderItemRepository) AllInOrder(ctx context.Context, orderID int64) ([]tables.OrderItem, error) {
	return database.Query[tables.OrderItem](r.db).
		Where("order_id", orderID).
		Relation("Product").
		OrderBy("order_item_id", database.ASC).
		All(ctx)
}
