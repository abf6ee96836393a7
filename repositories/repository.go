package repositories

import (
	"context"
	"fmt"
	"maroon_shop/database"
	"maroon_shop/lib"
	"time"

	"github.com/uptrace/bun"
)

// listTimeout bounds the count and page queries of one listing.
const listTimeout = 10 * time.Second

// Filter narrows a listing to rows whose column equals Value, or starts with it when Prefix is set.
type Filter struct {
	Column string
	Value  any
	Prefix bool
}

// Repository holds the reads every entity shares. T is a bun model with an integer primary key.
type Repository[T any] struct {
	db       bun.IDB
	pkColumn string
}

func newRepository[T any](db bun.IDB, pkColumn string) Repository[T] {
	return Repository[T]{db: db, pkColumn: pkColumn}
}

// GetByID returns the row or lib.ErrNotFound.
func (r *Repository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	row, err := database.FindByID[T](ctx, r.db, r.pkColumn, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, lib.ErrNotFound
	}
	return row, nil
}

// Exists reports whether a row with the given id exists.
func (r *Repository[T]) Exists(ctx context.Context, id int64) (bool, error) {
	return database.ExistsByID[T](ctx, r.db, r.pkColumn, id)
}

// ListPage returns one page of rows ordered by primary key, plus the total row count.
func (r *Repository[T]) ListPage(ctx context.Context, pageNumber, pageSize int) ([]T, int, error) {
	q := database.Query[T](r.db).OrderBy(r.pkColumn, database.ASC).Timeout(listTimeout)
	return r.paginate(ctx, q, pageNumber, pageSize)
}

// ListPageFiltered is ListPage restricted by f.
func (r *Repository[T]) ListPageFiltered(ctx context.Context, f Filter, pageNumber, pageSize int) ([]T, int, error) {
	q := database.Query[T](r.db)
	if f.Prefix {
		q = q.WherePrefix(f.Column, fmt.Sprint(f.Value))
	} else {
		q = q.Where(f.Column, f.Value)
	}
	q = q.OrderBy(r.pkColumn, database.ASC).Timeout(listTimeout)
	return r.paginate(ctx, q, pageNumber, pageSize)
}

func (r *Repository[T]) paginate(ctx context.Context, q *database.QueryBuilder[T], pageNumber, pageSize int) ([]T, int, error) {
	result, err := database.Paginate(ctx, q, pageNumber, pageSize)
	if err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

// requireRow returns a ReferenceError naming field when no row of M has the given id.
func requireRow[M any](ctx context.Context, db bun.IDB, pkColumn string, id int64, field string) error {
	ok, err := database.ExistsByID[M](ctx, db, pkColumn, id)
	if err != nil {
		return err
	}
	if !ok {
		return &lib.ReferenceError{Field: field}
	}
	return nil
}

// insert writes row and translates constraint failures.
func insert[T any](ctx context.Context, db bun.IDB, row *T) (*T, error) {
	created, err := database.Create(ctx, db, row)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func update[T any](ctx context.Context, db bun.IDB, row *T) error {
	affected, err := database.Query[T](db).Update(ctx, row)
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}
