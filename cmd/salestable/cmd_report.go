package main

import (
	"context"
	"fmt"

	"github.com/zeebo/clingy"

	"storj.io/sales-table/pkg/fancy"
	"storj.io/sales-table/pkg/table"
	"storj.io/sales-table/pkg/textreport"
)

type cmdReport struct {
	tableFlags
	page int
}

func (cmd *cmdReport) Setup(params clingy.Parameters) {
	cmd.tableFlags.Setup(params)
	cmd.page = intFlag(params, "page", "The page to print", 1)
	cmd.setupSource(params)
}

func (cmd *cmdReport) Execute(ctx context.Context) error {
	stdout := clingy.Stdout(ctx)

	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}

	log, err := openLog(string(cfg.Log.Dir))
	if err != nil {
		return fmt.Errorf("unable to open log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	s, err := cmd.open(ctx, log, cfg, stdout)
	if err != nil {
		return err
	}
	s.manager.SetPage(cmd.page)

	fancy.Finfoln(stdout)
	printStats(stdout, s.result.Stats, len(s.result.Sellers), s.products)
	fancy.Finfoln(stdout)

	presenter := table.New(log, s.manager, textreport.New(stdout), table.Options{
		QuickPageSizes: cfg.Table.QuickPageSizes,
	})
	if err := presenter.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
