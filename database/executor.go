package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// All executes the query and returns all matching records with automatic retry
func (q *QueryBuilder[T]) All(ctx context.Context) ([]T, error) {
	start := time.Now()
	ctx, cancel := q.context(ctx)
	defer cancel()

	var data []T
	err := q.run(ctx, func() error {
		data = nil // Reset on retry
		return q.selectQuery(&data, false).Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute select query: %w (took %v)", err, time.Since(start))
	}

	if data == nil {
		data = []T{}
	}
	return data, nil
}

// First executes the query and returns the first matching record, or nil when there is none
func (q *QueryBuilder[T]) First(ctx context.Context) (*T, error) {
	start := time.Now()
	ctx, cancel := q.context(ctx)
	defer cancel()

	data := new(T)
	err := q.run(ctx, func() error {
		return q.selectQuery(data, false).Limit(1).Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute first query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Count executes the query and returns the count of matching records with automatic retry
func (q *QueryBuilder[T]) Count(ctx context.Context) (int, error) {
	start := time.Now()
	ctx, cancel := q.context(ctx)
	defer cancel()

	var count int
	err := q.run(ctx, func() error {
		var err error
		count, err = q.selectQuery((*T)(nil), true).Count(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute count query: %w (took %v)", err, time.Since(start))
	}

	return count, nil
}

// Exists checks if any records match the query
func (q *QueryBuilder[T]) Exists(ctx context.Context) (bool, error) {
	start := time.Now()
	ctx, cancel := q.context(ctx)
	defer cancel()

	var exists bool
	err := q.run(ctx, func() error {
		var err error
		exists, err = q.selectQuery((*T)(nil), true).Exists(ctx)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to execute exists query: %w (took %v)", err, time.Since(start))
	}

	return exists, nil
}

// Insert inserts a new record; the datastore fills in the identity column
func (q *QueryBuilder[T]) Insert(ctx context.Context, data *T) (*T, error) {
	start := time.Now()
	ctx, cancel := q.context(ctx)
	defer cancel()

	err := q.run(ctx, func() error {
		_, err := q.db.NewInsert().Model(data).Exec(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute insert query: %w (took %v)", err, time.Since(start))
	}

	return data, nil
}

// Update overwrites the record identified by its primary key and returns the rows affected
func (q *QueryBuilder[T]) Update(ctx context.Context, data *T) (int, error) {
	start := time.Now()
	ctx, cancel := q.context(ctx)
	defer cancel()

	var rowsAffected int64
	err := q.run(ctx, func() error {
		res, err := q.db.NewUpdate().Model(data).WherePK().Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute update query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}

// Delete deletes records matching the query. Conditions are written without the table
// alias because sqlite deletes are unaliased. An unfiltered delete is refused.
func (q *QueryBuilder[T]) Delete(ctx context.Context) (int, error) {
	if len(q.wheres) == 0 {
		return 0, errors.New("refusing to delete without a where clause")
	}

	start := time.Now()
	ctx, cancel := q.context(ctx)
	defer cancel()

	var rowsAffected int64
	err := q.run(ctx, func() error {
		query := q.db.NewDelete().Model((*T)(nil))
		for _, where := range q.wheres {
			if where.IsRaw {
				query = query.Where(where.RawSQL, where.RawArgs...)
				continue
			}
			condition := "? " + where.Operator + " ?"
			if where.Negate {
				condition = "NOT (" + condition + ")"
			}
			query = query.Where(condition, bun.Ident(where.Column), where.Value)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return err
		}
		rowsAffected, _ = res.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to execute delete query: %w (took %v)", err, time.Since(start))
	}

	return int(rowsAffected), nil
}
