package database

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	"github.com/kennywood/park-api/internal/config"
	_ "github.com/lib/pq" // registers the "postgres" driver
)

// DB is the subset of *sqlx.DB the repositories use
type DB interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
	Ping() error
	Close() error
}

// PostgresDB satisfies DB through the embedded *sqlx.DB
type PostgresDB struct {
	*sqlx.DB
}

var _ DB = (*PostgresDB)(nil)

const defaultDriver = "postgres"

// NewConnection opens a pool with cfg.Driver ("postgres" or "pgx") and pings it
func NewConnection(cfg config.DatabaseConfig) (DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	driver := cfg.Driver
	if driver == "" {
		driver = defaultDriver
	}

	dsn, err := driverDSN(driver, cfg.URL)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	configurePool(conn, cfg)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresDB{DB: conn}, nil
}

// driverDSN adds prefer_simple_protocol for lib/pq so it works behind
// PgBouncer in transaction mode. pgx URLs and keyword DSNs pass through.
func driverDSN(driver, rawURL string) (string, error) {
	if driver != defaultDriver {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid database URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		// keyword/value DSN
		return rawURL, nil
	}

	q := u.Query()
	if q.Get("prefer_simple_protocol") == "" {
		q.Set("prefer_simple_protocol", "true")
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func configurePool(conn *sqlx.DB, cfg config.DatabaseConfig) {
	conn.SetMaxOpenConns(cfg.MaxConnections)
	conn.SetMaxIdleConns(cfg.MaxIdleConnections)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(cfg.ConnMaxLifetime / 2)
}
