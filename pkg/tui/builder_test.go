package tui_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storj.io/sales-table/pkg/catalogue"
	"storj.io/sales-table/pkg/element"
	"storj.io/sales-table/pkg/rollup"
	"storj.io/sales-table/pkg/sales"
	"storj.io/sales-table/pkg/table"
	"storj.io/sales-table/pkg/tui"
	"storj.io/sales-table/pkg/view"
)

func newPresenter(t *testing.T, pageSize int) (*table.Presenter, *tui.Builder) {
	products := catalogue.Must(
		catalogue.Product{ID: "A", Name: "Latte"},
		catalogue.Product{ID: "B", Name: "Mocha"},
	)
	result := rollup.Aggregate([]sales.Record{
		{SellerID: "1", ProductID: "A", Quantity: 4, UnitPrice: 3.0},
		{SellerID: "1", ProductID: "A", Quantity: 2, UnitPrice: 3.0},
		{SellerID: "2", ProductID: "B", Quantity: 5, UnitPrice: 1.5},
		{SellerID: "3", ProductID: "B", Quantity: 1, UnitPrice: 1.5},
	}, products)

	builder := tui.New(nil)
	manager := view.NewManager(table.Columns(products), result.Sellers, pageSize)
	p := table.New(zap.NewNop(), manager, builder, table.Options{})
	require.NoError(t, p.Render())
	return p, builder
}

func rowTexts(tbl *tview.Table, row int) []string {
	var texts []string
	for col := 0; col < tbl.GetColumnCount(); col++ {
		cell := tbl.GetCell(row, col)
		texts = append(texts, cell.Text)
	}
	return texts
}

func pressEnter(tbl *tview.Table, row, col int) {
	tbl.Select(row, col)
	tbl.InputHandler()(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), func(tview.Primitive) {})
}

func TestRealizeTable(t *testing.T) {
	_, builder := newPresenter(t, 10)

	tbl := builder.Table()
	require.NotNil(t, tbl)
	require.NotNil(t, builder.Root())

	assert.Equal(t, 5, tbl.GetRowCount())
	assert.Equal(t, []string{"ID", "Latte", "Latte price", "Mocha", "Mocha price", "Total"}, rowTexts(tbl, 0))
	assert.Equal(t, []string{"1", "6", "18.00", "-", "-", "18.00"}, rowTexts(tbl, 1))
	assert.Equal(t, []string{"TOTAL", "6", "18.00", "6", "9.00", "27.00"}, rowTexts(tbl, 4))
}

func TestSortByHeader(t *testing.T) {
	_, builder := newPresenter(t, 10)

	pressEnter(builder.Table(), 0, 5)
	tbl := builder.Table()
	assert.Equal(t, "Total ▲", tbl.GetCell(0, 5).Text)
	assert.Equal(t, "3", tbl.GetCell(1, 0).Text)

	pressEnter(tbl, 0, 5)
	tbl = builder.Table()
	assert.Equal(t, "Total ▼", tbl.GetCell(0, 5).Text)
	assert.Equal(t, "1", tbl.GetCell(1, 0).Text)

	// body rows do not sort
	pressEnter(tbl, 1, 1)
	assert.Equal(t, "Total ▼", builder.Table().GetCell(0, 5).Text)
}

func TestPageKeys(t *testing.T) {
	p, builder := newPresenter(t, 2)

	builder.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	assert.Equal(t, 2, p.Manager().State().CurrentPage)
	assert.Equal(t, "3", builder.Table().GetCell(1, 0).Text)

	builder.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone))
	assert.Equal(t, 1, p.Manager().State().CurrentPage)

	event := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
	assert.Equal(t, event, builder.HandleKey(event))
	assert.Nil(t, builder.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)))
}

func TestRealizeWithoutTable(t *testing.T) {
	err := tui.New(nil).Realize(&element.Element{Tag: "div"})
	require.EqualError(t, err, "no table to render")
}
