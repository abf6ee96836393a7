package services

import (
	"context"
	"errors"
	"maroon_shop/database"
	"maroon_shop/lib"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// BasketService runs the storefront basket workflow. Every operation is one transaction.
type BasketService struct {
	logger *gecho.Logger
	db     bun.IDB
	repos  *repositories.Manager
}

func NewBasketService(logger *gecho.Logger, db bun.IDB, repos *repositories.Manager) *BasketService {
	return &BasketService{
		logger: logger,
		db:     db,
		repos:  repos,
	}
}

// BasketView is a basket with its items and their products.
type BasketView struct {
	Basket *tables.Basket
	Items  []tables.BasketItem
}

func (v *BasketView) ItemCount() int {
	count := 0
	for _, item := range v.Items {
		count += item.Quantity
	}
	return count
}

func quantityError() error {
	return lib.NewValidationError("quantity", "Quantity must be at least 1.")
}

// AddToBasket puts quantity of the product in the customer's basket, opening one when needed.
// An existing line for the product is incremented; new lines take the current product price.
func (bs *BasketService) AddToBasket(ctx context.Context, customerID, productID int64, quantity int) (*tables.Basket, error) {
	if quantity < 1 {
		return nil, quantityError()
	}

	return database.TransactionWithResult(ctx, bs.db, func(ctx context.Context, tx bun.Tx) (*tables.Basket, error) {
		repos := bs.repos.WithTx(tx)

		if _, err := repos.Customers.GetByID(ctx, customerID); err != nil {
			return nil, err
		}
		product, err := repos.Products.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}

		basket, err := repos.Baskets.GetByCustomerID(ctx, customerID)
		if errors.Is(err, lib.ErrNotFound) {
			basket, err = repos.Baskets.Create(ctx, &structs.CreateBasketRequest{CustomerID: customerID})
		}
		if err != nil {
			return nil, err
		}

		item, err := repos.BasketItems.FindInBasket(ctx, basket.BasketID, productID)
		if err != nil {
			return nil, err
		}

		if item != nil {
			item.Quantity += quantity
			if err := repos.BasketItems.Save(ctx, item); err != nil {
				return nil, err
			}
		} else {
			_, err = repos.BasketItems.Insert(ctx, &tables.BasketItem{
				BasketID:  basket.BasketID,
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.Price,
			})
			if err != nil {
				return nil, err
			}
		}

		if basket.TotalPrice, err = repos.Baskets.RecomputeTotal(ctx, basket.BasketID); err != nil {
			return nil, err
		}

		bs.logger.Debug("Added product to basket",
			gecho.Field("customer_id", customerID),
			gecho.Field("basket_id", basket.BasketID),
			gecho.Field("product_id", productID),
			gecho.Field("quantity", quantity),
		)
		return basket, nil
	})
}

// ownedItem loads a basket item and its basket, hiding items of other customers as not found.
func ownedItem(ctx context.Context, repos *repositories.Manager, customerID, basketItemID int64) (*tables.BasketItem, *tables.Basket, error) {
	item, err := repos.BasketItems.GetByID(ctx, basketItemID)
	if err != nil {
		return nil, nil, err
	}
	basket, err := repos.Baskets.GetByID(ctx, item.BasketID)
	if err != nil {
		return nil, nil, err
	}
	if basket.CustomerID != customerID {
		return nil, nil, lib.ErrNotFound
	}
	return item, basket, nil
}

// UpdateItemQuantity sets a line's quantity and returns the new line and basket totals.
func (bs *BasketService) UpdateItemQuantity(ctx context.Context, customerID, basketItemID int64, quantity int) (*structs.BasketTotals, error) {
	if quantity < 1 {
		return nil, quantityError()
	}

	return database.TransactionWithResult(ctx, bs.db, func(ctx context.Context, tx bun.Tx) (*structs.BasketTotals, error) {
		repos := bs.repos.WithTx(tx)

		item, basket, err := ownedItem(ctx, repos, customerID, basketItemID)
		if err != nil {
			return nil, err
		}

		item.Quantity = quantity
		if err := repos.BasketItems.Save(ctx, item); err != nil {
			return nil, err
		}

		total, err := repos.Baskets.RecomputeTotal(ctx, basket.BasketID)
		if err != nil {
			return nil, err
		}

		return &structs.BasketTotals{
			ItemTotalPrice:   item.TotalPrice,
			BasketTotalPrice: total,
		}, nil
	})
}

// RemoveItem deletes a line and returns the new basket total.
func (bs *BasketService) RemoveItem(ctx context.Context, customerID, basketItemID int64) (decimal.Decimal, error) {
	return database.TransactionWithResult(ctx, bs.db, func(ctx context.Context, tx bun.Tx) (decimal.Decimal, error) {
		repos := bs.repos.WithTx(tx)

		item, basket, err := ownedItem(ctx, repos, customerID, basketItemID)
		if err != nil {
			return decimal.Zero, err
		}

		if err := repos.BasketItems.Delete(ctx, item.BasketItemID); err != nil {
			return decimal.Zero, err
		}

		return repos.Baskets.RecomputeTotal(ctx, basket.BasketID)
	})
}

// CustomerBasket returns the customer's basket with products loaded, or an empty view.
func (bs *BasketService) CustomerBasket(ctx context.Context, customerID int64) (*BasketView, error) {
	basket, err := bs.repos.Baskets.GetByCustomerID(ctx, customerID)
	if errors.Is(err, lib.ErrNotFound) {
		return &BasketView{}, nil
	}
	if err != nil {
		return nil, err
	}

	items, err := bs.repos.BasketItems.AllInBasket(ctx, basket.BasketID)
	if err != nil {
		return nil, err
	}
	return &BasketView{Basket: basket, Items: items}, nil
}

// ItemCount is the number of units in the customer's basket.
func (bs *BasketService) ItemCount(ctx context.Context, customerID int64) (int, error) {
	view, err := bs.CustomerBasket(ctx, customerID)
	if err != nil {
		return 0, err
	}
	return view.ItemCount(), nil
}
