// Package salesdb stores sales records in a SQLite database.
package salesdb

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zeebo/errs"

	"storj.io/sales-table/pkg/sales"
	"storj.io/sales-table/pkg/salescsv"
)

const (
	dbVersion = 1
)

// Error is the error class for this package.
var Error = errs.Class("salesdb")

const schema = `
CREATE TABLE metadata (
	pk INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL,
	version INTEGER NOT NULL,
	source TEXT NOT NULL,
	PRIMARY KEY ( pk )
);
CREATE TABLE records (
	pk INTEGER NOT NULL,
	line INTEGER NOT NULL,
	seller_id TEXT NOT NULL,
	product_id TEXT NOT NULL,
	quantity REAL,
	unit_price REAL,
	PRIMARY KEY ( pk )
);
`

// Metadata describes a database.
type Metadata struct {
	CreatedAt time.Time
	Version   int
	// Source is the file the records were imported from, if any.
	Source string
}

type DB struct {
	db       *sql.DB
	metadata Metadata
}

// Create creates a new database at path. It fails if the path already
// exists.
func Create(ctx context.Context, path, source string) (*DB, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return nil, Error.New("database already exists at %q", path)
	case !os.IsNotExist(err):
		return nil, Error.Wrap(err)
	}
	if err := initDB(ctx, path, source); err != nil {
		return nil, err
	}

	return Open(ctx, path, false)
}

// OpenInMemory opens a fresh database that lives until it is closed.
func OpenInMemory(ctx context.Context) (_ *DB, err error) {
	db, err := openDB(":memory:")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			err = errs.Combine(err, Error.Wrap(db.Close()))
		}
	}()

	if err := createSchema(ctx, db, ""); err != nil {
		return nil, err
	}
	return newDB(ctx, db)
}

// Open opens an existing database.
func Open(ctx context.Context, path string, readOnly bool) (_ *DB, err error) {
	path, err = filepath.Abs(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, Error.Wrap(err)
	}

	dbURI := "file:" + path + "?_journal_mode=WAL&_locking_mode=EXCLUSIVE"
	if readOnly {
		dbURI += "&mode=ro"
	}
	db, err := openDB(dbURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			err = errs.Combine(err, Error.Wrap(db.Close()))
		}
	}()

	return newDB(ctx, db)
}

func newDB(ctx context.Context, db *sql.DB) (*DB, error) {
	var metadata Metadata
	err := db.QueryRowContext(ctx,
		`SELECT created_at, version, source FROM metadata ORDER BY pk LIMIT 1`,
	).Scan(&metadata.CreatedAt, &metadata.Version, &metadata.Source)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, Error.New("database metadata is missing")
	case err != nil:
		return nil, Error.Wrap(err)
	case metadata.Version > dbVersion:
		// Database version is from a future tool. It is not safe to continue.
		return nil, Error.New("database version is in the future (%d); upgrade your tool (%d)", metadata.Version, dbVersion)
	case metadata.Version < 1:
		return nil, Error.New("database version %d is invalid", metadata.Version)
	}

	return &DB{
		db:       db,
		metadata: metadata,
	}, nil
}

func (db *DB) Close() error {
	return Error.Wrap(db.db.Close())
}

func (db *DB) Metadata() Metadata {
	return db.metadata
}

// WithTx runs fn in a transaction. The transaction is committed when fn
// succeeds and rolled back otherwise.
func (db *DB) WithTx(ctx context.Context, fn func(*sql.Tx) error) (err error) {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() {
		if err == nil {
			err = Error.Wrap(tx.Commit())
		} else {
			err = errs.Combine(err, Error.Wrap(tx.Rollback()))
		}
	}()
	return fn(tx)
}

// InsertRows appends rows. Amounts that are not finite numbers are stored as
// NULL.
func (db *DB) InsertRows(ctx context.Context, rows []salescsv.Row) error {
	return db.WithTx(ctx, func(tx *sql.Tx) (err error) {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO records (line, seller_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return Error.Wrap(err)
		}
		defer func() { err = errs.Combine(err, Error.Wrap(stmt.Close())) }()

		for _, row := range rows {
			if _, err := stmt.ExecContext(ctx,
				row.Line,
				row.SellerID,
				row.ProductID,
				nullFloat(row.Quantity),
				nullFloat(row.UnitPrice),
			); err != nil {
				return Error.New("record on line %d: %v", row.Line, err)
			}
		}
		return nil
	})
}

// Rows returns every row in insertion order. NULL amounts read back as NaN,
// which keeps them invalid.
func (db *DB) Rows(ctx context.Context) (_ []salescsv.Row, err error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT line, seller_id, product_id, quantity, unit_price FROM records ORDER BY pk`)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(rows.Close())) }()

	var out []salescsv.Row
	for rows.Next() {
		var row salescsv.Row
		var quantity, unitPrice sql.NullFloat64
		if err := rows.Scan(&row.Line, &row.SellerID, &row.ProductID, &quantity, &unitPrice); err != nil {
			return nil, Error.Wrap(err)
		}
		row.Quantity = floatOrNaN(quantity)
		row.UnitPrice = floatOrNaN(unitPrice)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, Error.Wrap(err)
	}
	return out, nil
}

// Records returns every record in insertion order.
func (db *DB) Records(ctx context.Context) ([]sales.Record, error) {
	rows, err := db.Rows(ctx)
	if err != nil {
		return nil, err
	}
	return salescsv.Records(rows), nil
}

func (db *DB) Count(ctx context.Context) (count int64, err error) {
	err = db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	return count, Error.Wrap(err)
}

// initDB initializes the database under a temporary name and moves it into
// place once it is complete, so a crash never leaves a half-created
// database behind.
func initDB(ctx context.Context, path, source string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Error.Wrap(err)
	}
	tmpPath, err := filepath.Abs(path + ".tmp")
	if err != nil {
		return Error.Wrap(err)
	}
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return Error.Wrap(err)
	}

	db, err := openDB("file:" + tmpPath)
	if err != nil {
		return err
	}
	if err := createSchema(ctx, db, source); err != nil {
		return errs.Combine(err, Error.Wrap(db.Close()))
	}
	if err := db.Close(); err != nil {
		return Error.Wrap(err)
	}
	return Error.Wrap(os.Rename(tmpPath, path))
}

func createSchema(ctx context.Context, db *sql.DB, source string) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return Error.Wrap(err)
	}
	// Timestamps are for audit only; millisecond precision is enough.
	now := time.Now().UTC().Truncate(time.Millisecond)
	_, err := db.ExecContext(ctx,
		`INSERT INTO metadata (created_at, version, source) VALUES (?, ?, ?)`,
		now, dbVersion, source)
	return Error.Wrap(err)
}

func openDB(dbURI string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbURI)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	// The exclusive locking mode and in-memory databases both need every
	// statement on the same connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

func nullFloat(f float64) sql.NullFloat64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}

func floatOrNaN(f sql.NullFloat64) float64 {
	if !f.Valid {
		return math.NaN()
	}
	return f.Float64
}
