package main

import (
	"context"
	"fmt"

	"github.com/zeebo/clingy"

	"storj.io/sales-table/pkg/fancy"
	"storj.io/sales-table/pkg/salesdb"
)

type cmdImport struct {
	csvPath string
	dbPath  string
}

func (cmd *cmdImport) Setup(params clingy.Parameters) {
	cmd.csvPath = stringArg(params, "CSVPATH", "Sales CSV to import")
	cmd.dbPath = stringArg(params, "DBPATH", "Path of the sales database to create")
}

func (cmd *cmdImport) Execute(ctx context.Context) error {
	stdout := clingy.Stdout(ctx)

	n, err := salesdb.Import(ctx, cmd.csvPath, cmd.dbPath)
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	emojiPrintf(stdout, ":white_check_mark: %s: %d records imported into %s\n", cmd.csvPath, n, cmd.dbPath)
	fancy.Finfoln(stdout, "Done.")
	return nil
}
