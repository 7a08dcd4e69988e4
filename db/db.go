package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-faster/errors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// driverName is the database/sql name registered by pgx/v5/stdlib
const driverName = "pgx"

// Pool limits
const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// DSNFromEnv builds a connection string from DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD, DB_NAME and DB_SSLMODE. Used when DATABASE_URL is not set.
func DSNFromEnv() (string, error) {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	sslmode := os.Getenv("DB_SSLMODE")

	if host == "" || user == "" || dbname == "" {
		return "", errors.New("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode), nil
}

// Open connects to Postgres and verifies the connection
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		var err error
		if dsn, err = DSNFromEnv(); err != nil {
			return nil, err
		}
	}

	conn, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	return conn, nil
}

// schema creates the tables owned by this service. Catalog tables are
// normally managed by the store that feeds catalogs; they are created here
// only when missing.
const schema = `
CREATE TABLE IF NOT EXISTS catalogs (
	id              TEXT PRIMARY KEY,
	template_id     TEXT NOT NULL,
	business_name   TEXT NOT NULL DEFAULT '',
	tagline         TEXT NOT NULL DEFAULT '',
	phone           TEXT NOT NULL DEFAULT '',
	email           TEXT NOT NULL DEFAULT '',
	website         TEXT NOT NULL DEFAULT '',
	address         TEXT NOT NULL DEFAULT '',
	logo_url        TEXT NOT NULL DEFAULT '',
	currency_symbol TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS catalog_products (
	catalog_id        TEXT NOT NULL REFERENCES catalogs (id) ON DELETE CASCADE,
	position          INT NOT NULL,
	product_id        TEXT NOT NULL,
	name              TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL DEFAULT '',
	price             NUMERIC(14, 2) NOT NULL,
	wholesale_price   NUMERIC(14, 2),
	wholesale_min_qty INT NOT NULL DEFAULT 0,
	image_url         TEXT NOT NULL DEFAULT '',
	sku               TEXT NOT NULL DEFAULT '',
	specifications    TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (catalog_id, position)
);

CREATE TABLE IF NOT EXISTS template_overrides (
	id         TEXT PRIMARY KEY,
	definition JSONB NOT NULL,
	score      INT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates missing tables
func Migrate(ctx context.Context, conn *sqlx.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "migrate")
	}
	return nil
}
