package repositories

import (
	"context"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"
	"time"

	"github.com/uptrace/bun"
)

type OrderRepository struct {
	Repository[tables.Order]
	now func() time.Time
}

func NewOrderRepository(db bun.IDB) *OrderRepository {
	return &OrderRepository{
		Repository: newRepository[tables.Order](db, "order_id"),
		now:        time.Now,
	}
}

func (r *OrderRepository) WithTx(tx bun.IDB) *OrderRepository {
	return &OrderRepository{Repository: newRepository[tables.Order](tx, "order_id"), now: r.now}
}

func (r *OrderRepository) checkReferences(ctx context.Context, customerID, billingID, shippingID int64) error {
	if err := requireRow[tables.Customer](ctx, r.db, "customer_id", customerID, "customerId"); err != nil {
		return err
	}
	if err := requireRow[tables.Address](ctx, r.db, "address_id", billingID, "billingAddressId"); err != nil {
		return err
	}
	return requireRow[tables.Address](ctx, r.db, "address_id", shippingID, "shippingAddressId")
}

// Create records an empty order dated now. The total follows from its items.
func (r *OrderRepository) Create(ctx context.Context, req *structs.CreateOrderRequest) (*tables.Order, error) {
	if err := r.checkReferences(ctx, req.CustomerID, req.BillingAddressID, req.ShippingAddressID); err != nil {
		return nil, err
	}
	return insert(ctx, r.db, tables.NewOrder(req, r.now()))
}

// Insert writes a fully built order as is.
func (r *OrderRepository) Insert(ctx context.Context, order *tables.Order) (*tables.Order, error) {
	return insert(ctx, r.db, order)
}

// Update changes the customer and addresses. DateCreated and the total are never overwritten.
func (r *OrderRepository) Update(ctx context.Context, id int64, req *structs.UpdateOrderRequest) error {
	if req.OrderID != id {
		return lib.ErrIDMismatch
	}

	order, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.checkReferences(ctx, req.CustomerID, req.BillingAddressID, req.ShippingAddressID); err != nil {
		return err
	}

	order.Apply(req)
	return update(ctx, r.db, order)
}

func (r *OrderRepository) ListByCustomerID(ctx context.Context, customerID int64, pageNumber, pageSize int) ([]tables.Order, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "customer_id", Value: customerID}, pageNumber, pageSize)
}

func (r *OrderRepository) ListByBillingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) ([]tables.Order, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "billing_address_id", Value: addressID}, pageNumber, pageSize)
}

func (r *OrderRepository) ListByShippingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) ([]tables.Order, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "shipping_address_id", Value: addressID}, pageNumber, pageSize)
}
