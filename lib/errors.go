package lib

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Database errors
var (
	ErrConflict             = errors.New("conflict")
	ErrNotFound             = errors.New("not found")
	ErrIDMismatch           = errors.New("id in the request does not match the id in the body")
	ErrReferentialIntegrity = errors.New("referenced record does not exist")
)

// Request errors
var (
	ErrInvalidBody       = errors.New("invalid request body")
	ErrInvalidPageSize   = errors.New("page size must be at least 1")
	ErrInvalidPageNumber = errors.New("page number is out of range")
	ErrInvalidID         = errors.New("id must be a positive integer")
	ErrRateLimited       = errors.New("rate limit exceeded")
)

// Session errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
	ErrRevokedToken = errors.New("revoked token")
)

// ReferenceError names the foreign key that points at a missing row.
type ReferenceError struct {
	Field string
}

func (e *ReferenceError) Error() string {
	return e.Field + " does not reference an existing record"
}

func (e *ReferenceError) Is(target error) bool {
	return target == ErrReferentialIntegrity
}

// MapPgError translates constraint failures from postgres (either driver) and sqlite
// into the package's sentinel errors.
func MapPgError(err error) error {
	if err == nil {
		return nil
	}

	var driverErr pgdriver.Error
	if errors.As(err, &driverErr) {
		return mapSQLState(driverErr.Field('C'), driverErr.Field('n'), err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapSQLState(pgErr.Code, pgErr.ConstraintName, err)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrConflict
		case sqlite3.ErrConstraintForeignKey:
			return &ReferenceError{Field: "reference"}
		}
	}

	return err
}

func mapSQLState(code, constraint string, err error) error {
	switch code { // SQLSTATE
	case "23505": // unique_violation
		return ErrConflict
	case "23503": // foreign_key_violation
		return &ReferenceError{Field: constraint}
	case "P0002": // no_data_found
		return ErrNotFound
	}
	return err
}
