// Package xlsxexport writes a materialized sales view to an Excel workbook.
package xlsxexport

import (
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/zeebo/errs"

	"storj.io/sales-table/pkg/view"
)

// SheetName is the name of the sheet holding the table.
const SheetName = "Sales"

// Error is the error class for this package.
var Error = errs.Class("xlsx export")

// builtin number format "0.00"
const moneyNumFmt = 2

// Save writes the view to a workbook at path.
func Save(path string, v view.View) (err error) {
	f, err := build(v)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, Error.Wrap(f.Close())) }()

	return Error.Wrap(f.SaveAs(path))
}

// Write writes the view as a workbook to w.
func Write(w io.Writer, v view.View) (err error) {
	f, err := build(v)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, Error.Wrap(f.Close())) }()

	return Error.Wrap(f.Write(w))
}

func build(v view.View) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, Error.Wrap(err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, Error.Wrap(err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, Error.Wrap(err)
	}
	boldMoney, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt, Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, Error.Wrap(err)
	}

	header := make([]any, 0, len(v.Header))
	for _, cell := range v.Header {
		header = append(header, cell.Label)
	}
	if err := setRow(f, 1, header, bold); err != nil {
		return nil, err
	}

	row := 2
	for _, r := range v.Body {
		if err := setRow(f, row, values(r.Cells), 0); err != nil {
			return nil, err
		}
		if err := styleMoney(f, row, r.Cells, money); err != nil {
			return nil, err
		}
		row++
	}

	if err := setRow(f, row, values(v.Footer), bold); err != nil {
		return nil, err
	}
	if err := styleMoney(f, row, v.Footer, boldMoney); err != nil {
		return nil, err
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, Error.Wrap(err)
	}
	return f, nil
}

// values converts cells to workbook values: numbers stay numbers, missing
// values are written as the sentinel.
func values(cells []view.Cell) []any {
	out := make([]any, 0, len(cells))
	for _, cell := range cells {
		if cell.Format == view.FormatText {
			out = append(out, cell.String())
			continue
		}
		if f, ok := cell.Value.Float(); ok {
			out = append(out, f)
			continue
		}
		out = append(out, cell.String())
	}
	return out
}

func setRow(f *excelize.File, row int, values []any, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return Error.Wrap(err)
	}
	if err := f.SetSheetRow(SheetName, first, &values); err != nil {
		return Error.Wrap(err)
	}
	if style != 0 && len(values) > 0 {
		last, err := excelize.CoordinatesToCellName(len(values), row)
		if err != nil {
			return Error.Wrap(err)
		}
		if err := f.SetCellStyle(SheetName, first, last, style); err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}

func styleMoney(f *excelize.File, row int, cells []view.Cell, style int) error {
	for col, cell := range cells {
		if cell.Format != view.FormatMoney {
			continue
		}
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return Error.Wrap(err)
		}
		if err := f.SetCellStyle(SheetName, name, name, style); err != nil {
			return Error.Wrap(err)
		}
	}
	return nil
}
