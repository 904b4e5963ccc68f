package database

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	// DriverName is registered by github.com/nakagami/firebirdsql.
	DriverName = "firebirdsql"
	// CreateDriverName creates the database file while connecting.
	CreateDriverName = "firebirdsql_createdb"
)

// Creator provisions a fresh database file and opens connections to it.
type Creator interface {
	// Create makes a new empty database at path. The file must not exist.
	Create(ctx context.Context, path string) error
	// Open connects to the existing database at path.
	Open(ctx context.Context, path string) (*sql.DB, error)
}

// Firebird creates and opens databases through the firebirdsql driver.
type Firebird struct {
	Settings Settings
}

func NewFirebird(s Settings) *Firebird {
	return &Firebird{Settings: s}
}

func (f *Firebird) Create(ctx context.Context, path string) error {
	db, err := sql.Open(CreateDriverName, f.Settings.DSN(path))
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to create database %s: %w", path, err)
	}
	return nil
}

func (f *Firebird) Open(ctx context.Context, path string) (*sql.DB, error) {
	return Open(ctx, DriverName, f.Settings.DSN(path))
}

// Open opens a pool for dsn and verifies it with a ping.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	return db, nil
}
