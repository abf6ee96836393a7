package repositories

import (
	"context"
	"fmt"
	"maroon_shop/database"
	"maroon_shop/structs/tables"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// inTx runs fn on db when it is already a transaction, otherwise in a new one.
func inTx(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.IDB) error) error {
	if tx, ok := db.(bun.Tx); ok {
		return fn(ctx, tx)
	}
	return database.Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}

// RecomputeBasketTotal sets the basket total to the sum of its item totals and returns it.
func RecomputeBasketTotal(ctx context.Context, db bun.IDB, basketID int64) (decimal.Decimal, error) {
	items, err := database.Query[tables.BasketItem](db).Where("basket_id", basketID).All(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].TotalPrice)
	}
	total = total.Round(2)

	_, err = db.NewUpdate().
		Model((*tables.Basket)(nil)).
		Set("total_price = ?", total).
		Where("basket_id = ?", basketID).
		Exec(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to update basket total: %w", err)
	}
	return total, nil
}

// RecomputeOrderTotal sets the order total to the sum of its item totals and returns it.
func RecomputeOrderTotal(ctx context.Context, db bun.IDB, orderID int64) (decimal.Decimal, error) {
	items, err := database.Query[tables.OrderItem](db).Where("order_id", orderID).All(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].TotalPrice)
	}
	total = total.Round(2)

	_, err = db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("total_price = ?", total).
		Where("order_id = ?", orderID).
		Exec(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to update order total: %w", err)
	}
	return total, nil
}
