package coeffstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cwbudde/algo-iir/dsp/filter/butter"
)

// Dialect selects the SQL flavour of the backing database.
type Dialect int

const (
	SQLite Dialect = iota
	MySQL
)

const (
	sqliteCreateTableTmpl = `CREATE TABLE IF NOT EXISTS iir_coefficients (
		"DesignKey"   TEXT NOT NULL PRIMARY KEY,
		"SampleRate"  REAL NOT NULL,
		"Band"        INTEGER NOT NULL,
		"FilterOrder" INTEGER NOT NULL,
		"LowCut"      REAL,
		"HighCut"     REAL,
		"B"           TEXT NOT NULL,
		"A"           TEXT NOT NULL
	);`
	sqliteUpsertTmpl = `INSERT OR REPLACE INTO iir_coefficients (
		DesignKey,
		SampleRate,
		Band,
		FilterOrder,
		LowCut,
		HighCut,
		B,
		A
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	mysqlCreateTableTmpl = `CREATE TABLE IF NOT EXISTS iir_coefficients (
		DesignKey   VARCHAR(191) NOT NULL PRIMARY KEY,
		SampleRate  DOUBLE NOT NULL,
		Band        INTEGER NOT NULL,
		FilterOrder INTEGER NOT NULL,
		LowCut      DOUBLE,
		HighCut     DOUBLE,
		B           TEXT NOT NULL,
		A           TEXT NOT NULL
	);`
	mysqlUpsertTmpl = `REPLACE INTO iir_coefficients (
		DesignKey,
		SampleRate,
		Band,
		FilterOrder,
		LowCut,
		HighCut,
		B,
		A
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	selectTmpl = `SELECT SampleRate, Band, FilterOrder, LowCut, HighCut, B, A
		FROM iir_coefficients WHERE DesignKey = ?;`
)

// SQL is a Store backed by database/sql. The sqlite3 and mysql drivers are
// supported through Dialect.
type SQL struct {
	DB      *sql.DB
	Dialect Dialect
}

// NewSQL wraps db and creates the coefficient table if it does not exist.
func NewSQL(ctx context.Context, db *sql.DB, dialect Dialect) (*SQL, error) {
	s := &SQL{DB: db, Dialect: dialect}

	tmpl := sqliteCreateTableTmpl
	if dialect == MySQL {
		tmpl = mysqlCreateTableTmpl
	}
	if _, err := db.ExecContext(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("coeffstore: unable to create table: %w", err)
	}
	return s, nil
}

func (s *SQL) Get(ctx context.Context, key Key) (butter.Coefficients, error) {
	var (
		c            butter.Coefficients
		band         int
		low, high    sql.NullFloat64
		bJSON, aJSON string
	)
	row := s.DB.QueryRowContext(ctx, selectTmpl, key.String())
	if err := row.Scan(&c.SampleRate, &band, &c.Order, &low, &high, &bJSON, &aJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return butter.Coefficients{}, ErrNotFound
		}
		return butter.Coefficients{}, fmt.Errorf("coeffstore: reading %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(bJSON), &c.B); err != nil {
		return butter.Coefficients{}, fmt.Errorf("coeffstore: decoding b for %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(aJSON), &c.A); err != nil {
		return butter.Coefficients{}, fmt.Errorf("coeffstore: decoding a for %s: %w", key, err)
	}

	c.Band = butter.Band(band)
	c.LowCut = low.Float64
	c.HighCut = high.Float64
	return c, nil
}

func (s *SQL) Put(ctx context.Context, key Key, c butter.Coefficients) error {
	bJSON, err := json.Marshal(c.B)
	if err != nil {
		return fmt.Errorf("coeffstore: encoding b: %w", err)
	}
	aJSON, err := json.Marshal(c.A)
	if err != nil {
		return fmt.Errorf("coeffstore: encoding a: %w", err)
	}

	tmpl := sqliteUpsertTmpl
	if s.Dialect == MySQL {
		tmpl = mysqlUpsertTmpl
	}

	if _, err := s.DB.ExecContext(ctx, tmpl,
		key.String(), c.SampleRate, int(c.Band), c.Order,
		nullable(c.LowCut), nullable(c.HighCut),
		string(bJSON), string(aJSON),
	); err != nil {
		return fmt.Errorf("coeffstore: storing %s: %w", key, err)
	}
	return nil
}

// nullable stores unused cutoffs, which are zero, as NULL.
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}
