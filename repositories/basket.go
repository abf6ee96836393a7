package repositories

import (
	"context"
	"maroon_shop/database"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type BasketRepository struct {
	Repository[tables.Basket]
}

func NewBasketRepository(db bun.IDB) *BasketRepository {
	return &BasketRepository{Repository: newRepository[tables.Basket](db, "basket_id")}
}

func (r *BasketRepository) WithTx(tx bun.IDB) *BasketRepository {
	return NewBasketRepository(tx)
}

// Create opens an empty basket for an existing customer.
func (r *BasketRepository) Create(ctx context.Context, req *structs.CreateBasketRequest) (*tables.Basket, error) {
	if err := requireRow[tables.Customer](ctx, r.db, "customer_id", req.CustomerID, "customerId"); err != nil {
		return nil, err
	}
	return insert(ctx, r.db, &tables.Basket{CustomerID: req.CustomerID, TotalPrice: decimal.Zero})
}

// Update reassigns the basket to another customer. The total is left alone.
func (r *BasketRepository) Update(ctx context.Context, id int64, req *structs.UpdateBasketRequest) error {
	if req.BasketID != id {
		return lib.ErrIDMismatch
	}

	basket, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := requireRow[tables.Customer](ctx, r.db, "customer_id", req.CustomerID, "customerId"); err != nil {
		return err
	}

	basket.CustomerID = req.CustomerID
	return update(ctx, r.db, basket)
}

func (r *BasketRepository) ListByCustomerID(ctx context.Context, customerID int64, pageNumber, pageSize int) ([]tables.Basket, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "customer_id", Value: customerID}, pageNumber, pageSize)
}

// GetByCustomerID returns the customer's oldest basket or lib.ErrNotFound.
func (r *BasketRepository) GetByCustomerID(ctx context.Context, customerID int64) (*tables.Basket, error) {
	basket, err := database.Query[tables.Basket](r.db).
		Where("customer_id", customerID).
		OrderBy("basket_id", database.ASC).
		First(ctx)
	if err != nil {
		return nil, err
	}
	if basket == nil {
		return nil, lib.ErrNotFound
	}
	return basket, nil
}

func (r *BasketRepository) Delete(ctx context.Context, id int64) error {
	affected, err := database.Query[tables.Basket](r.db).Where("basket_id", id).Delete(ctx)
	if err != nil {
		return err
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

func (r *BasketRepository) RecomputeTotal(ctx context.Context, id int64) (decimal.Decimal, error) {
	return RecomputeBasketTotal(ctx, r.db, id)
}
