package repositories

import (
	"context"
	"maroon_shop/database"
	"maroon_shop/lib"
	"maroon_shop/structs"
	"maroon_shop/structs/tables"

	"github.com/uptrace/bun"
)

// ProductCache is a read-through cache for slug lookups. Implementations must be safe to
// call when the backing store is down; misses and errors are treated the same.
type ProductCache interface {
	GetProduct(ctx context.Context, slug string) (*tables.Product, bool)
	SetProduct(ctx context.Context, product *tables.Product)
	InvalidateProduct(ctx context.Context, slug string)
}

type ProductRepository struct {
	Repository[tables.Product]
	cache ProductCache
}

// NewProductRepository builds the repository; cache may be nil.
func NewProductRepository(db bun.IDB, cache ProductCache) *ProductRepository {
	return &ProductRepository{
		Repository: newRepository[tables.Product](db, "product_id"),
		cache:      cache,
	}
}

func (r *ProductRepository) WithTx(tx bun.IDB) *ProductRepository {
	return NewProductRepository(tx, r.cache)
}

// GetByUrlFriendlyName is an exact, case-sensitive slug lookup.
func (r *ProductRepository) GetByUrlFriendlyName(ctx context.Context, slug string) (*tables.Product, error) {
	if r.cache != nil {
		if product, ok := r.cache.GetProduct(ctx, slug); ok {
			return product, nil
		}
	}

	product, err := database.Query[tables.Product](r.db).Where("url_friendly_name", slug).First(ctx)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}

	if r.cache != nil {
		r.cache.SetProduct(ctx, product)
	}
	return product, nil
}

// slugTaken reports whether another product already uses slug.
func (r *ProductRepository) slugTaken(ctx context.Context, slug string, exceptID int64) (bool, error) {
	q := database.Query[tables.Product](r.db).Where("url_friendly_name", slug)
	if exceptID > 0 {
		q = q.WhereNot("product_id", exceptID)
	}
	return q.Exists(ctx)
}

func slugInUse() error {
	return lib.NewValidationError("urlFriendlyName", "Url Friendly Name is already in use.")
}

func (r *ProductRepository) Create(ctx context.Context, req *structs.CreateProductRequest) (*tables.Product, error) {
	taken, err := r.slugTaken(ctx, req.UrlFriendlyName, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, slugInUse()
	}
	return insert(ctx, r.db, tables.NewProduct(req))
}

func (r *ProductRepository) Update(ctx context.Context, id int64, req *structs.UpdateProductRequest) error {
	if req.ProductID != id {
		return lib.ErrIDMismatch
	}

	product, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	taken, err := r.slugTaken(ctx, req.UrlFriendlyName, id)
	if err != nil {
		return err
	}
	if taken {
		return slugInUse()
	}

	oldSlug := product.UrlFriendlyName
	product.Apply(req)
	if err := update(ctx, r.db, product); err != nil {
		return err
	}

	if r.cache != nil {
		r.cache.InvalidateProduct(ctx, oldSlug)
		if oldSlug != product.UrlFriendlyName {
			r.cache.InvalidateProduct(ctx, product.UrlFriendlyName)
		}
	}
	return nil
}
