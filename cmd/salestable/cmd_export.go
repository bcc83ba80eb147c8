package main

import (
	"context"
	"fmt"

	"github.com/zeebo/clingy"
	"go.uber.org/zap"

	"storj.io/sales-table/pkg/fancy"
	"storj.io/sales-table/pkg/xlsxexport"
)

type cmdExport struct {
	tableFlags
	force    bool
	xlsxPath string
}

func (cmd *cmdExport) Setup(params clingy.Parameters) {
	cmd.tableFlags.Setup(params)
	cmd.force = toggleFlag(params, "force", "Overwrite the workbook without asking", false)
	cmd.setupSource(params)
	cmd.xlsxPath = stringArg(params, "XLSXPATH", "Path on disk to write the workbook to")
}

func (cmd *cmdExport) Execute(ctx context.Context) error {
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

	if err := confirmOverwrite(cmd.xlsxPath, cmd.force); err != nil {
		return err
	}

	v := s.manager.MaterializeAll()
	if err := xlsxexport.Save(cmd.xlsxPath, v); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	log.Info("Exported sales", zap.String("path", cmd.xlsxPath), zap.Int("rows", v.RowCount))

	fancy.Fprintf(stdout, fancy.Good, "Wrote %d sellers to %s\n", v.RowCount, cmd.xlsxPath)
	return nil
}
