package database

import (
	"context"
	"database/sql"
	"fmt"
	"maroon_shop/config"
	"maroon_shop/structs"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DB wraps the bun database handle with additional functionality
type DB struct {
	*bun.DB
	driver string
}

var instance *DB

// Connect opens the datastore selected by cfg.Driver and verifies it with a ping.
func Connect(cfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	var (
		sqldb *sql.DB
		db    *bun.DB
		err   error
	)

	switch strings.ToLower(cfg.Driver) {
	case "pg", "postgres", "":
		sqldb = sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
			pgdriver.WithUser(cfg.User),
			pgdriver.WithPassword(cfg.Password),
			pgdriver.WithDatabase(cfg.Name),
			pgdriver.WithInsecure(true),
			pgdriver.WithReadTimeout(cfg.ReadTimeout),
			pgdriver.WithWriteTimeout(cfg.WriteTimeout),
		))
		db = bun.NewDB(sqldb, pgdialect.New())
	case "pgx":
		connConfig, perr := pgx.ParseConfig(fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=disable",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
		))
		if perr != nil {
			return nil, fmt.Errorf("failed to parse pgx config: %w", perr)
		}
		sqldb = stdlib.OpenDB(*connConfig)
		db = bun.NewDB(sqldb, pgdialect.New())
	case "sqlite", "sqlite3":
		sqldb, err = sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// sqlite serialises writers; one connection keeps transactions from tripping over each other
		cfg.MaxConns = 1
		cfg.MinConns = 1
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	sqldb.SetMaxOpenConns(cfg.MaxConns)
	sqldb.SetMaxIdleConns(cfg.MinConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(cfg.MaxIdleTime)

	db.AddQueryHook(&connectionHealthHook{logger: logger})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully", gecho.Field("driver", cfg.Driver))

	return &DB{DB: db, driver: strings.ToLower(cfg.Driver)}, nil
}

// OpenSQLite returns a ready sqlite-backed DB. Used by tests and the sandbox.
func OpenSQLite(dsn string) (*DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqldb.SetMaxOpenConns(1)

	return &DB{DB: bun.NewDB(sqldb, sqlitedialect.New()), driver: "sqlite"}, nil
}

// Initialize sets up the global database instance using centralized configuration
func Initialize() error {
	db, err := Connect(config.GetConfig().Database, config.GetLogger())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	instance = db
	return nil
}

// GetInstance returns the global database instance, or nil before Initialize.
func GetInstance() *DB {
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// GetStats returns connection pool statistics for monitoring
func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}

func (db *DB) Driver() string {
	return db.driver
}

// connectionHealthHook implements bun.QueryHook to monitor connection health
type connectionHealthHook struct {
	logger *gecho.Logger
}

func (h *connectionHealthHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *connectionHealthHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	if h.logger == nil {
		return
	}

	if duration := time.Since(event.StartTime); duration > time.Second {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err != nil {
		if event.Err.Error() == "EOF" || event.Err.Error() == "unexpected EOF" {
			h.logger.Error("Database connection EOF error - connection may have been closed by server",
				gecho.Field("error", event.Err),
				gecho.Field("query", event.Query),
			)
		}
	}
}
