package database

import (
	"context"
	"database/sql"
	"fmt"
	"maroon_shop/lib"
	"math"

	"github.com/uptrace/bun"
)

// Transaction executes fn within a database transaction on db.
// fn must run every statement on tx; sqlite tests hold a single connection.
func Transaction(ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return fmt.Errorf("database instance not initialized")
	}

	return db.RunInTx(ctx, &sql.TxOptions{}, fn)
}

// TransactionWithResult executes a function within a transaction and returns a result
func TransactionWithResult[T any](ctx context.Context, db bun.IDB, fn func(ctx context.Context, tx bun.Tx) (T, error)) (T, error) {
	var result T
	err := Transaction(ctx, db, func(ctx context.Context, tx bun.Tx) error {
		var err error
		result, err = fn(ctx, tx)
		return err
	})

	return result, err
}

// PaginationResult wraps one page of rows with the total row count
type PaginationResult[T any] struct {
	Data       []T
	PageNumber int
	PageSize   int
	Total      int
}

// Paginate counts the matching rows, then loads the requested window.
// Page numbers and sizes below one are rejected, as are windows starting past MaxInt32.
func Paginate[T any](ctx context.Context, q *QueryBuilder[T], pageNumber, pageSize int) (*PaginationResult[T], error) {
	if pageSize < 1 {
		return nil, lib.ErrInvalidPageSize
	}
	if pageNumber < 1 || pageNumber-1 > math.MaxInt32/pageSize {
		return nil, lib.ErrInvalidPageNumber
	}

	total, err := q.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	offset := (pageNumber - 1) * pageSize

	data, err := q.Limit(pageSize).Offset(offset).All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get paginated data: %w", err)
	}

	return &PaginationResult[T]{
		Data:       data,
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Total:      total,
	}, nil
}

// FindByID is a helper to find a record by its primary key column
func FindByID[T any](ctx context.Context, db bun.IDB, pkColumn string, id int64) (*T, error) {
	return Query[T](db).Where(pkColumn, id).First(ctx)
}

// ExistsByID reports whether a row with the given primary key exists
func ExistsByID[T any](ctx context.Context, db bun.IDB, pkColumn string, id int64) (bool, error) {
	return Query[T](db).Where(pkColumn, id).Exists(ctx)
}

// Create is a helper to insert a single record
func Create[T any](ctx context.Context, db bun.IDB, data *T) (*T, error) {
	return Query[T](db).Insert(ctx, data)
}
