package coeffstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	// Blind import support for sqlite3 used by the sqlite backend.
	_ "github.com/mattn/go-sqlite3"
)

// Config selects and configures a backend.
type Config struct {
	// Backend is one of "", "memory", "sqlite" or "mysql". Empty means no
	// caching.
	Backend string

	SQLiteFile string

	MySQLServer   string
	MySQLUser     string
	MySQLPassword string
	MySQLDBName   string
}

// Open returns the configured store and a function releasing its resources.
// A nil store means caching is disabled.
func Open(ctx context.Context, cfg Config) (Store, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Backend) {
	case "", "none":
		return nil, noop, nil
	case "memory":
		return NewMemory(), noop, nil
	case "sqlite":
		db, err := sql.Open("sqlite3", cfg.SQLiteFile)
		if err != nil {
			return nil, noop, fmt.Errorf("coeffstore: unable to open sqlite DB %q: %w", cfg.SQLiteFile, err)
		}
		s, err := NewSQL(ctx, db, SQLite)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return s, db.Close, nil
	case "mysql":
		db, err := sql.Open("mysql", mysqlDSN(cfg))
		if err != nil {
			return nil, noop, fmt.Errorf("coeffstore: unable to open MySQL DB %q: %w", cfg.MySQLServer, err)
		}
		db.SetConnMaxLifetime(3 * time.Minute)
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		s, err := NewSQL(ctx, db, MySQL)
		if err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		return s, db.Close, nil
	default:
		return nil, noop, fmt.Errorf("coeffstore: %q is not a supported backend, pick one of: memory, sqlite, mysql", cfg.Backend)
	}
}

func mysqlDSN(cfg Config) string {
	mc := mysql.Config{
		User:                 cfg.MySQLUser,
		Passwd:               cfg.MySQLPassword,
		Net:                  "tcp",
		Addr:                 cfg.MySQLServer,
		DBName:               cfg.MySQLDBName,
		AllowNativePasswords: true,
	}
	return mc.FormatDSN()
}
