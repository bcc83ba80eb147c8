package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kyokomi/emoji/v2"
	"github.com/manifoldco/promptui"
	"github.com/zeebo/clingy"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"storj.io/sales-table/pkg/catalogue"
	"storj.io/sales-table/pkg/config"
	"storj.io/sales-table/pkg/fancy"
	"storj.io/sales-table/pkg/rollup"
	"storj.io/sales-table/pkg/sales"
	"storj.io/sales-table/pkg/salescsv"
	"storj.io/sales-table/pkg/salesdb"
	"storj.io/sales-table/pkg/table"
	"storj.io/sales-table/pkg/view"
)

func promptConfirm(label string) error {
	_, err := (&promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}).Run()
	if err != nil {
		return errors.New("aborted")
	}
	return nil
}

// confirmOverwrite asks before a command replaces an existing file.
func confirmOverwrite(path string, force bool) error {
	_, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return nil
	case err != nil:
		return errs.Wrap(err)
	case force:
		return nil
	}
	return promptConfirm(fmt.Sprintf("%s already exists. Overwrite", path))
}

// loadRecords reads the records from a sales database (.db) or a sales CSV.
func loadRecords(ctx context.Context, source string) (_ []sales.Record, err error) {
	if filepath.Ext(source) == ".db" {
		db, err := salesdb.Open(ctx, source, true)
		if err != nil {
			return nil, fmt.Errorf("failed to open sales database: %w", err)
		}
		defer func() { err = errs.Combine(err, db.Close()) }()
		return db.Records(ctx)
	}

	rows, err := salescsv.Load(source)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales CSV: %w", err)
	}
	return salescsv.Records(rows), nil
}

// tableFlags are the flags shared by the commands that show the table.
type tableFlags struct {
	config    string
	catalogue string
	sort      string
	desc      bool
	pageSize  int
	hide      string
	source    string
}

func (f *tableFlags) Setup(params clingy.Parameters) {
	f.config = stringFlag(params, "config", "The configuration file (defaults are used when empty)", "")
	f.catalogue = stringFlag(params, "catalogue", "A TOML or YAML product catalogue overriding the configured one", "")
	f.sort = stringFlag(params, "sort", "Header of the column to sort by", "")
	f.desc = toggleFlag(params, "desc", "Sort in descending order", false)
	f.pageSize = intFlag(params, "page-size", "Rows per page (defaults to the configured page size)", 0)
	f.hide = stringFlag(params, "hide", "Comma separated headers of columns to hide", "")
}

func (f *tableFlags) setupSource(params clingy.Parameters) {
	f.source = stringArg(params, "SOURCE", "Sales CSV or sales database (.db) to read")
}

func (f *tableFlags) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		cfg, err = config.Load(f.config)
		if err != nil {
			if unknown := config.DumpUnknownFields(err); unknown != "" {
				return config.Config{}, fmt.Errorf("unable to load config: %w\n%s", err, unknown)
			}
			return config.Config{}, fmt.Errorf("unable to load config: %w", err)
		}
	}
	if f.catalogue != "" {
		cfg.Catalogue = config.Catalogue{Path: config.ToPath(f.catalogue)}
	}
	if f.pageSize > 0 {
		cfg.Table.PageSize = f.pageSize
	}
	return cfg, nil
}

// session is a loaded, aggregated and configured table.
type session struct {
	cfg      config.Config
	products catalogue.Catalogue
	result   rollup.Result
	manager  *view.Manager
}

func (f *tableFlags) open(ctx context.Context, log *zap.Logger, cfg config.Config, stdout io.Writer) (*session, error) {
	products, err := cfg.LoadCatalogue()
	if err != nil {
		return nil, fmt.Errorf("unable to load catalogue: %w", err)
	}

	records, err := loadRecords(ctx, f.source)
	if err != nil {
		return nil, err
	}

	result := rollup.Aggregate(records, products)
	log.Info("Aggregated sales",
		zap.String("source", f.source),
		zap.Int("records", result.Stats.Records),
		zap.Int("valid", result.Stats.Valid),
		zap.Int("sellers", len(result.Sellers)),
	)
	if stdout != nil {
		printLoaded(stdout, f.source, result.Stats, len(result.Sellers))
	}

	columns := table.Columns(products)
	manager := view.NewManager(columns, result.Sellers, cfg.Table.PageSize)

	var hidden []string
	hidden = append(hidden, cfg.Table.Hidden...)
	hidden = append(hidden, splitList(f.hide)...)
	for _, header := range hidden {
		column, err := columnIndex(columns, header)
		if err != nil {
			return nil, err
		}
		if manager.IsVisible(column) {
			manager.ToggleColumn(column)
		}
	}

	if f.sort != "" {
		column, err := columnIndex(columns, f.sort)
		if err != nil {
			return nil, err
		}
		manager.SortBy(column)
		if f.desc {
			manager.SortBy(column)
		}
	}

	return &session{
		cfg:      cfg,
		products: products,
		result:   result,
		manager:  manager,
	}, nil
}

func columnIndex(columns []view.Column, header string) (int, error) {
	headers := make([]string, 0, len(columns))
	for i, column := range columns {
		if strings.EqualFold(column.Header, strings.TrimSpace(header)) {
			return i, nil
		}
		headers = append(headers, column.Header)
	}
	return 0, fmt.Errorf("unknown column %q; expected one of %q", header, headers)
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func printLoaded(w io.Writer, source string, stats rollup.Stats, sellers int) {
	emojiPrintf(w, ":white_check_mark: %s: %d records loaded\n", source, stats.Records)
	emojiPrintf(w, ":information_source: %s  ... %d records aggregated into %d sellers\n", strings.Repeat(" ", len(source)), stats.Valid, sellers)
	for reason, count := range stats.Dropped {
		if count > 0 {
			emojiPrintf(w, ":warning: %s  ... %d %s records dropped\n", strings.Repeat(" ", len(source)), count, sales.SkipReason(reason))
		}
	}
}

func printStats(w io.Writer, stats rollup.Stats, sellers int, products catalogue.Catalogue) {
	fancy.Stat(w, fancy.Info, "Records", stats.Records)
	fancy.Stat(w, fancy.Good, "Aggregated", stats.Valid)
	fancy.Stat(w, warnIfNonZero(stats.TotalDropped()), "Dropped", stats.TotalDropped())
	fancy.Stat(w, fancy.Info, "Sellers", sellers)
	fancy.Stat(w, fancy.Info, "Products", products.Len())
}

func emojiPrintf(w io.Writer, format string, args ...any) {
	_, _ = emoji.Fprintf(w, format, args...)
}

func warnIfNonZero[T constraints.Integer](v T) fancy.Level {
	if v != 0 {
		return fancy.Warn
	}
	return fancy.Info
}
