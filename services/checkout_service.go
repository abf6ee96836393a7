package services

import (
	"context"
	"maroon_shop/database"
	"maroon_shop/lib"
	"maroon_shop/repositories"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// PlacedOrder is everything a notifier needs about a converted basket.
type PlacedOrder struct {
	Order    *tables.Order
	Customer *tables.Customer
	Shipping *tables.Address
	Items    []tables.OrderItem
}

// Event returns the message published for the order.
func (p *PlacedOrder) Event() structs.OrderPlacedEvent {
	items := make([]structs.OrderItemResponse, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, p.Items[i].Response())
	}
	return structs.OrderPlacedEvent{
		OrderID:     p.Order.OrderID,
		CustomerID:  p.Order.CustomerID,
		TotalPrice:  p.Order.TotalPrice,
		DateCreated: p.Order.DateCreated,
		Items:       items,
	}
}

// OrderNotifier is told about an order once its transaction has committed.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, order *PlacedOrder) error
}

type CheckoutService struct {
	logger    *gecho.Logger
	db        bun.IDB
	repos     *repositories.Manager
	notifiers []OrderNotifier
	now       func() time.Time
}

func NewCheckoutService(logger *gecho.Logger, db bun.IDB, repos *repositories.Manager, notifiers ...OrderNotifier) *CheckoutService {
	return &CheckoutService{
		logger:    logger,
		db:        db,
		repos:     repos,
		notifiers: notifiers,
		now:       time.Now,
	}
}

// ConvertToOrder turns a basket into an order billed and shipped to the customer's
// addresses, then deletes the basket. Nothing is written unless every step succeeds.
func (cs *CheckoutService) ConvertToOrder(ctx context.Context, basketID int64) (*tables.Order, error) {
	placed, err := database.TransactionWithResult(ctx, cs.db, func(ctx context.Context, tx bun.Tx) (*PlacedOrder, error) {
		repos := cs.repos.WithTx(tx)

		basket, err := repos.Baskets.GetByID(ctx, basketID)
		if err != nil {
			return nil, err
		}

		customer, err := repos.Customers.GetByID(ctx, basket.CustomerID)
		if err != nil {
			return nil, err
		}

		basketItems, err := repos.BasketItems.AllInBasket(ctx, basket.BasketID)
		if err != nil {
			return nil, err
		}
		if len(basketItems) == 0 {
			return nil, lib.NewValidationError("basketId", "Basket has no items.")
		}

		total := decimal.Zero
		for i := range basketItems {
			total = total.Add(basketItems[i].TotalPrice)
		}

		order, err := repos.Orders.Insert(ctx, &tables.Order{
			CustomerID:        customer.CustomerID,
			TotalPrice:        total.Round(2),
			DateCreated:       cs.now().UTC(),
			BillingAddressID:  customer.BillingAddressID,
			ShippingAddressID: customer.DefaultShippingAddressID,
		})
		if err != nil {
			return nil, err
		}

		orderItems := make([]*tables.OrderItem, 0, len(basketItems))
		for i := range basketItems {
			orderItems = append(orderItems, tables.FromBasketItem(order.OrderID, &basketItems[i]))
		}
		if err := repos.OrderItems.InsertMany(ctx, orderItems); err != nil {
			return nil, err
		}

		if _, err := repos.BasketItems.DeleteByBasket(ctx, basket.BasketID); err != nil {
			return nil, err
		}
		if err := repos.Baskets.Delete(ctx, basket.BasketID); err != nil {
			return nil, err
		}

		shipping, err := repos.Addresses.GetByID(ctx, order.ShippingAddressID)
		if err != nil {
			return nil, err
		}

		items := make([]tables.OrderItem, 0, len(orderItems))
		for i, item := range orderItems {
			item.Product = basketItems[i].Product
			items = append(items, *item)
		}

		return &PlacedOrder{Order: order, Customer: customer, Shipping: shipping, Items: items}, nil
	})
	if err != nil {
		return nil, err
	}

	OrdersPlaced.Inc()
	cs.logger.Info("Basket converted to order",
		gecho.Field("basket_id", basketID),
		gecho.Field("order_id", placed.Order.OrderID),
		gecho.Field("total", placed.Order.TotalPrice.StringFixed(2)),
	)

	for _, notifier := range cs.notifiers {
		if err := notifier.OrderPlaced(ctx, placed); err != nil {
			OrderNotificationFailures.Inc()
			cs.logger.Error("Order notification failed",
				gecho.Field("order_id", placed.Order.OrderID),
				gecho.Field("error", err),
			)
		}
	}

	return placed.Order, nil
}
