package database

import (
	"context"
	"errors"
	"maroon_shop/lib"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/driver/pgdriver"
)

// RetryPolicy is an exponential backoff schedule.
type RetryPolicy struct {
	Attempts   int
	FirstDelay time.Duration
	MaxDelay   time.Duration
	Factor     float64
}

var defaultRetryPolicy = RetryPolicy{
	Attempts:   3,
	FirstDelay: 100 * time.Millisecond,
	MaxDelay:   2 * time.Second,
	Factor:     2,
}

// transientSQLStateClasses are the SQLSTATE classes worth another try:
// connection exceptions, insufficient resources and operator intervention.
var transientSQLStateClasses = map[string]bool{
	"08": true,
	"53": true,
	"57": true,
}

var transientMessages = []string{
	"connection refused",
	"connection reset",
	"broken pipe",
	"i/o timeout",
	"bad connection",
	"too many clients",
}

// IsTransient reports whether err may succeed on retry. Domain outcomes (not found,
// validation, constraint violations) and context errors never are.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var validation *lib.ValidationError
	var reference *lib.ReferenceError
	if errors.Is(err, lib.ErrNotFound) || errors.Is(err, lib.ErrConflict) || errors.As(err, &validation) || errors.As(err, &reference) {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}

	if code := sqlState(err); code != "" {
		switch code {
		case "40001", "40P01": // serialization failure, deadlock
			return true
		}
		return len(code) == 5 && transientSQLStateClasses[code[:2]]
	}

	msg := strings.ToLower(err.Error())
	for _, m := range transientMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// sqlState returns the SQLSTATE code carried by a pgx or pgdriver error, or "".
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var driverErr pgdriver.Error
	if errors.As(err, &driverErr) {
		return driverErr.Field('C')
	}
	return ""
}

// Retry runs op until it succeeds, fails permanently, or the policy runs out.
func (p RetryPolicy) Retry(ctx context.Context, op func() error) error {
	delay := p.FirstDelay

	var err error
	for attempt := 1; ; attempt++ {
		if err = op(); err == nil || !IsTransient(err) || attempt >= p.Attempts {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay = time.Duration(float64(delay) * p.Factor)
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}

// WithRetry runs a read or write outside a transaction under the default policy.
func WithRetry(ctx context.Context, fn func() error) error {
	return defaultRetryPolicy.Retry(ctx, fn)
}
