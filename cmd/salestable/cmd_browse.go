package main

import (
	"context"
	"fmt"

	"github.com/rivo/tview"
	"github.com/zeebo/clingy"
	"go.uber.org/zap"

	"storj.io/sales-table/pkg/table"
	"storj.io/sales-table/pkg/tui"
)

type cmdBrowse struct {
	tableFlags
}

func (cmd *cmdBrowse) Setup(params clingy.Parameters) {
	cmd.tableFlags.Setup(params)
	cmd.setupSource(params)
}

func (cmd *cmdBrowse) Execute(ctx context.Context) error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the table; log to the file only.
	log, err := openFileLog(string(cfg.Log.Dir))
	if err != nil {
		return fmt.Errorf("unable to open log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	s, err := cmd.open(ctx, log, cfg, nil)
	if err != nil {
		return err
	}

	tui.SetupRosePineTheme()
	app := tview.NewApplication().EnableMouse(true)
	builder := tui.New(app)
	builder.SetupKeyBindings()

	presenter := table.New(log, s.manager, builder, table.Options{
		QuickPageSizes: cfg.Table.QuickPageSizes,
	})
	if err := presenter.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	stop := context.AfterFunc(ctx, app.Stop)
	defer stop()

	log.Info("Browsing sales", zap.String("source", cmd.source))
	if err := app.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
