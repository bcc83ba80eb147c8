package salesdb

import (
	"context"

	"github.com/zeebo/errs"

	"storj.io/sales-table/pkg/salescsv"
)

// Import loads the CSV file at csvPath into a new database at dbPath and
// returns the number of rows imported. Rows are stored as read, invalid
// ones included, so the database reproduces the CSV source exactly.
func Import(ctx context.Context, csvPath, dbPath string) (_ int, err error) {
	rows, err := salescsv.Load(csvPath)
	if err != nil {
		return 0, err
	}

	db, err := Create(ctx, dbPath, csvPath)
	if err != nil {
		return 0, err
	}
	defer func() { err = errs.Combine(err, db.Close()) }()

	if err := db.InsertRows(ctx, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
