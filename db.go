package main

import (
	"context"
	_ "embed"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const (
	driverSQLite   = "sqlite3"
	driverPostgres = "postgres"
)

var (
	//go:embed schema.sql
	sqliteSchema string
	//go:embed schema_postgres.sql
	postgresSchema string
)

// openDB connects to the configured database and checks it is reachable.
func openDB(driver, dsn string) (*sqlx.DB, error) {
	if driver == driverSQLite {
		dsn = withForeignKeys(dsn)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s database", driver)
	}
	if driver == driverSQLite {
		// sqlite serializes writers; one connection keeps "database is locked" away.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

// withForeignKeys turns on foreign key enforcement, which sqlite leaves off per connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

// resetSchema drops and recreates the account and message tables.
func resetSchema(ctx context.Context, db *sqlx.DB) error {
	schema := sqliteSchema
	if db.DriverName() == driverPostgres {
		schema = postgresSchema
	}
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "reset schema")
		}
	}
	return nil
}
