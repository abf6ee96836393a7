package database

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/uptrace/bun"
)

// OrderDirection represents sort direction
type OrderDirection string

const (
	ASC  OrderDirection = "ASC"
	DESC OrderDirection = "DESC"
)

// QueryBuilder provides a fluent, type-safe API for building queries over one bun model
type QueryBuilder[T any] struct {
	db bun.IDB

	wheres    []*WhereClause
	orders    []*OrderClause
	relations []string
	limitVal  *int
	offsetVal *int

	timeout time.Duration
	retry   bool
}

// WhereClause represents a WHERE condition
type WhereClause struct {
	Column   string
	Operator string
	Value    any
	IsRaw    bool
	RawSQL   string
	RawArgs  []any
	Negate   bool
}

// OrderClause represents an ORDER BY clause
type OrderClause struct {
	Column    string
	Direction OrderDirection
}

// Query creates a new QueryBuilder over db. Queries inside a transaction are never retried.
func Query[T any](db bun.IDB) *QueryBuilder[T] {
	_, inTx := db.(bun.Tx)
	return &QueryBuilder[T]{
		db:    db,
		retry: !inTx,
	}
}

// Where adds a simple WHERE condition (column = value)
func (q *QueryBuilder[T]) Where(column string, value any) *QueryBuilder[T] {
	return q.WhereOp(column, "=", value)
}

// WhereOp adds a WHERE condition with a custom operator
func (q *QueryBuilder[T]) WhereOp(column, operator string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return q
}

// WhereNot adds a WHERE NOT condition
func (q *QueryBuilder[T]) WhereNot(column string, value any) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		Column:   column,
		Operator: "=",
		Value:    value,
		Negate:   true,
	})
	return q
}

// WherePrefix matches rows whose column starts with prefix. substr keeps the
// comparison case-sensitive on both postgres and sqlite, unlike LIKE. Its length
// argument counts characters, not bytes.
func (q *QueryBuilder[T]) WherePrefix(column, prefix string) *QueryBuilder[T] {
	q.wheres = append(q.wheres, &WhereClause{
		IsRaw:   true,
		RawSQL:  "substr(?TableAlias.?, 1, ?) = ?",
		RawArgs: []any{bun.Ident(column), utf8.RuneCountInString(prefix), prefix},
	})
	return q
}

// OrderBy adds an ORDER BY clause
func (q *QueryBuilder[T]) OrderBy(column string, direction OrderDirection) *QueryBuilder[T] {
	q.orders = append(q.orders, &OrderClause{
		Column:    column,
		Direction: direction,
	})
	return q
}

// Limit sets the LIMIT clause
func (q *QueryBuilder[T]) Limit(limit int) *QueryBuilder[T] {
	q.limitVal = &limit
	return q
}

// Offset sets the OFFSET clause
func (q *QueryBuilder[T]) Offset(offset int) *QueryBuilder[T] {
	q.offsetVal = &offset
	return q
}

// Relation preloads a bun relation by its struct field name.
func (q *QueryBuilder[T]) Relation(name string) *QueryBuilder[T] {
	q.relations = append(q.relations, name)
	return q
}

// Timeout sets a timeout for the query
func (q *QueryBuilder[T]) Timeout(duration time.Duration) *QueryBuilder[T] {
	q.timeout = duration
	return q
}

func (q *QueryBuilder[T]) context(ctx context.Context) (context.Context, context.CancelFunc) {
	if q.timeout > 0 {
		return context.WithTimeout(ctx, q.timeout)
	}
	return ctx, func() {}
}

func (q *QueryBuilder[T]) run(ctx context.Context, fn func() error) error {
	if !q.retry {
		return fn()
	}
	return WithRetry(ctx, fn)
}

// selectQuery builds the bun select for model, applying every clause except limit/offset
// when counting.
func (q *QueryBuilder[T]) selectQuery(model any, counting bool) *bun.SelectQuery {
	query := q.db.NewSelect().Model(model)

	for _, where := range q.wheres {
		query = applyWhere(query, where)
	}

	if counting {
		return query
	}

	for _, rel := range q.relations {
		query = query.Relation(rel)
	}
	for _, order := range q.orders {
		query = query.OrderExpr("?TableAlias.? "+string(order.Direction), bun.Ident(order.Column))
	}
	if q.limitVal != nil {
		query = query.Limit(*q.limitVal)
	}
	if q.offsetVal != nil {
		query = query.Offset(*q.offsetVal)
	}

	return query
}

func applyWhere(query *bun.SelectQuery, where *WhereClause) *bun.SelectQuery {
	if where.IsRaw {
		return query.Where(where.RawSQL, where.RawArgs...)
	}
	if where.Negate {
		return query.Where("NOT (?TableAlias.? "+where.Operator+" ?)", bun.Ident(where.Column), where.Value)
	}
	return query.Where("?TableAlias.? "+where.Operator+" ?", bun.Ident(where.Column), where.Value)
}
