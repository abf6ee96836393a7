package repositories

import (
	"context"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/uptrace/bun"
)

type AddressRepository struct {
	Repository[tables.Address]
}

func NewAddressRepository(db bun.IDB) *AddressRepository {
	return &AddressRepository{Repository: newRepository[tables.Address](db, "address_id")}
}

func (r *AddressRepository) WithTx(tx bun.IDB) *AddressRepository {
	return NewAddressRepository(tx)
}

func (r *AddressRepository) Create(ctx context.Context, req *structs.CreateAddressRequest) (*tables.Address, error) {
	return insert(ctx, r.db, tables.NewAddress(req))
}

func (r *AddressRepository) Update(ctx context.Context, id int64, req *structs.UpdateAddressRequest) error {
	if req.AddressID != id {
		return lib.ErrIDMismatch
	}

	address, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	address.Apply(req)
	return update(ctx, r.db, address)
}

// ListByPostCode pages through addresses whose post code starts with prefix, case-sensitively.
func (r *AddressRepository) ListByPostCode(ctx context.Context, prefix string, pageNumber, pageSize int) ([]tables.Address, int, error) {
	return r.ListPageFiltered(ctx, Filter{Column: "post_code", Value: prefix, Prefix: true}, pageNumber, pageSize)
}
