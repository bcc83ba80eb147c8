package xlsxexport_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storj.io/sales-table/pkg/catalogue"
	"storj.io/sales-table/pkg/rollup"
	"storj.io/sales-table/pkg/sales"
	"storj.io/sales-table/pkg/table"
	"storj.io/sales-table/pkg/view"
	"storj.io/sales-table/pkg/xlsxexport"
)

func testManager() *view.Manager {
	products := catalogue.Must(
		catalogue.Product{ID: "A", Name: "Latte"},
		catalogue.Product{ID: "B", Name: "Mocha"},
	)
	result := rollup.Aggregate([]sales.Record{
		{SellerID: "1", ProductID: "A", Quantity: 4, UnitPrice: 3.0},
		{SellerID: "1", ProductID: "A", Quantity: 2, UnitPrice: 3.0},
		{SellerID: "2", ProductID: "B", Quantity: 5, UnitPrice: 1.5},
	}, products)
	// a page size of one still exports every row
	return view.NewManager(table.Columns(products), result.Sellers, 1)
}

func readRows(t *testing.T, f *excelize.File) [][]string {
	t.Helper()
	rows, err := f.GetRows(xlsxexport.SheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	return rows
}

func TestWrite(t *testing.T) {
	manager := testManager()
	manager.SortBy(5)
	manager.SortBy(5)

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.Write(&buf, manager.MaterializeAll()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	assert.Equal(t, [][]string{
		{"ID", "Latte", "Latte price", "Mocha", "Mocha price", "Total"},
		{"1", "6", "18", "-", "-", "18"},
		{"2", "-", "-", "5", "7.5", "7.5"},
		{"TOTAL", "6", "18", "5", "7.5", "25.5"},
	}, readRows(t, f))

	formatted, err := f.GetCellValue(xlsxexport.SheetName, "C2")
	require.NoError(t, err)
	assert.Equal(t, "18.00", formatted)

	cellType, err := f.GetCellType(xlsxexport.SheetName, "F4")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, cellType)
}

func TestSaveHiddenColumns(t *testing.T) {
	manager := testManager()
	manager.ToggleColumn(0)
	manager.ToggleColumn(3)

	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, xlsxexport.Save(path, manager.MaterializeAll()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, f.Close()) }()

	assert.Equal(t, [][]string{
		{"Latte", "Latte price", "Mocha price", "Total"},
		{"6", "18", "-", "18"},
		{"-", "-", "7.5", "7.5"},
		{"TOTAL", "18", "7.5", "25.5"},
	}, readRows(t, f))
}
