package repositories

import (
	"context"
	"maroon_shop/database"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/uptrace/bun"
)

type BasketItemRepository struct {
	Repository[tables.BasketItem]
}

func NewBasketItemRepository(db bun.IDB) *BasketItemRepository {
	return &BasketItemRepository{Repository: newRepository[tables.BasketItem](db, "basket_item_id")}
}

func (r *BasketItemRepository) WithTx(tx bun.IDB) *BasketItemRepository {
	return NewBasketItemRepository(tx)
}

func checkBasketItemReferences(ctx context.Context, db bun.IDB, basketID, productID int64) error {
	if err := requireRow[tables.Basket](ctx, db, "basket_id", basketID, "basketId"); err != nil {
		return err
	}
	return requireRow[tables.Product](ctx, db, "product_id", productID, "productId")
}

// Create adds the item and refreshes the basket total in one transaction.
func (r *BasketItemRepository) Create(ctx context.Context, req *structs.CreateBasketItemRequest) (*tables.BasketItem, error) {
	var created *tables.BasketItem
	err := inTx(ctx, r.db, func(ctx context.Context, tx bun.IDB) error {
		if err := checkBasketItemReferences(ctx, tx, req.BasketID, req.ProductID); err != nil {
			return err
		}

		item, err := insert(ctx, tx, tables.NewBasketItem(req))
		if err != nil {
			return err
		}

		if _, err := RecomputeBasketTotal(ctx, tx, item.BasketID); err != nil {
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

// Update overwrites the item and refreshes the totals of its old and new basket.
func (r *BasketItemRepository) Update(ctx context.Context, id int64, req *structs.UpdateBasketItemRequest) error {
	if req.BasketItemID != id {
		return lib.ErrIDMismatch
	}

	return inTx(ctx, r.db, func(ctx context.Context, tx bun.IDB) error {
		item, err := r.WithTx(tx).GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := checkBasketItemReferences(ctx, tx, req.BasketID, req.ProductID); err != nil {
			return err
		}

		oldBasketID := item.BasketID
		item.Apply(req)
		if err := update(ctx, tx, item); err != nil {
			return err
		}

		if _, err := RecomputeBasketTotal(ctx, tx, item.BasketID); err != nil {
			return err
		}
		if oldBasketID != item.BasketID {
			if _, err := RecomputeBasketTotal(ctx, tx, oldBasketID); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BasketItemRepository) ListByBasketID(ctx context.Context, basketID int64, pageNumber, pageSize int) ([]tables.BasketItem, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "basket_id", Value: basketID}, pageNumber, pageSize)
}

func (r *BasketItemRepository) ListByProductID(ctx context.Context, productID int64, pageNumber, pageSize int) ([]tables.BasketItem, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "product_id", Value: productID}, pageNumber, pageSize)
}

// AllInBasket returns every item of the basket with its product loaded.
func (r *BasketItemRepository) AllInBasket(ctx context.Context, basketID int64) ([]tables.BasketItem, error) {
	return database.Query[tables.BasketItem](r.db).
		Where("basket_id", basketID).
		Relation("Product").
		OrderBy("basket_item_id", database.ASC).
		All(ctx)
}

// FindInBasket returns the basket's item for productID, or nil.
func (r *BasketItemRepository) FindInBasket(ctx context.Context, basketID, productID int64) (*tables.BasketItem, error) {
	return database.Query[tables.BasketItem](r.db).
		Where("basket_id", basketID).
		Where("product_id", productID).
		OrderBy("basket_item_id", database.ASC).
		First(ctx)
}

// Save writes an item that was changed in place, recomputing its line total first.
func (r *BasketItemRepository) Save(ctx context.Context, item *tables.BasketItem) error {
	item.Reprice()
	return update(ctx, r.db, item)
}

func (r *BasketItemRepository) Insert(ctx context.Context, item *tables.BasketItem) (*tables.BasketItem, error) {
	item.Reprice()
	return insert(ctx, r.db, item)
}

func (r *BasketItemRepository) Delete(ctx context.Context, id int64) error {
	affected, err := database.Query[tables.BasketItem](r.db).Where("basket_item_id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (r *BasketItemRepository) DeleteByBasket(ctx context.Context, basketID int64) (int, error) {
	return database.Query[tables.BasketItem](r.db).Where("basket_id", basketID).Delete(ctx)
}
