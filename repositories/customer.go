package repositories

import (
	"context"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/uptrace/bun"
)

type CustomerRepository struct {
	Repository[tables.Customer]
}

func NewCustomerRepository(db bun.IDB) *CustomerRepository {
	return &CustomerRepository{Repository: newRepository[tables.Customer](db, "customer_id")}
}

func (r *CustomerRepository) WithTx(tx bun.IDB) *CustomerRepository {
	return NewCustomerRepository(tx)
}

func (r *CustomerRepository) checkReferences(ctx context.Context, billingID, shippingID int64) error {
	if err := requireRow[tables.Address](ctx, r.db, "address_id", billingID, "billingAddressId"); err != nil {
		return err
	}
	return requireRow[tables.Address](ctx, r.db, "address_id", shippingID, "defaultShippingAddressId")
}

func (r *CustomerRepository) Create(ctx context.Context, req *structs.CreateCustomerRequest) (*tables.Customer, error) {
	if err := r.checkReferences(ctx, req.BillingAddressID, req.DefaultShippingAddressID); err != nil {
		return nil, err
	}
	return insert(ctx, r.db, tables.NewCustomer(req))
}

func (r *CustomerRepository) Update(ctx context.Context, id int64, req *structs.UpdateCustomerRequest) error {
	if req.CustomerID != id {
		return lib.ErrIDMismatch
	}

	customer, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := r.checkReferences(ctx, req.BillingAddressID, req.DefaultShippingAddressID); err != nil {
		return err
	}

	customer.Apply(req)
	return update(ctx, r.db, customer)
}

func (r *CustomerRepository) ListByBillingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) ([]tables.Customer, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "billing_address_id", Value: addressID}, pageNumber, pageSize)
}

func (r *CustomerRepository) ListByDefaultShippingAddressID(ctx context.Context, addressID int64, pageNumber, pageSize int) ([]tables.Customer, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "default_shipping_address_id", Value: addressID}, pageNumber, pageSize)
}
