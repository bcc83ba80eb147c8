package view_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/sales-table/pkg/rollup"
	"storj.io/sales-table/pkg/view"
)

var testColumns = []view.Column{
	{Header: "ID", Field: view.FieldSellerID},
	{Header: "Latte", Field: view.FieldQuantity, ProductID: "A"},
	{Header: "Latte price", Field: view.FieldRevenue, ProductID: "A"},
	{Header: "Mocha", Field: view.FieldQuantity, ProductID: "B"},
	{Header: "Mocha price", Field: view.FieldRevenue, ProductID: "B"},
	{Header: "Total", Field: view.FieldTotal},
}

func testSellers() []rollup.SellerSummary {
	return []rollup.SellerSummary{
		{
			SellerID:     "1",
			Products:     []rollup.ProductSummary{{ProductID: "A", ProductName: "Latte", SubtotalRevenue: 18, TotalQuantity: 6}},
			TotalRevenue: 18,
		},
		{
			SellerID:     "2",
			Products:     []rollup.ProductSummary{{ProductID: "B", ProductName: "Mocha", SubtotalRevenue: 7.5, TotalQuantity: 5}},
			TotalRevenue: 7.5,
		},
		{
			SellerID: "10",
			Products: []rollup.ProductSummary{
				{ProductID: "A", ProductName: "Latte", SubtotalRevenue: 3, TotalQuantity: 1},
				{ProductID: "B", ProductName: "Mocha", SubtotalRevenue: 3, TotalQuantity: 2},
			},
			TotalRevenue: 6,
		},
		{
			SellerID:     "3",
			Products:     []rollup.ProductSummary{{ProductID: "C", SubtotalRevenue: 8, TotalQuantity: 4}},
			TotalRevenue: 8,
		},
	}
}

func sellerIDs(v view.View) []string {
	var ids []string
	for _, row := range v.Body {
		ids = append(ids, row.SellerID)
	}
	return ids
}

func headerLabels(v view.View) []string {
	var labels []string
	for _, cell := range v.Header {
		labels = append(labels, cell.Label)
	}
	return labels
}

func cellStrings(cells []view.Cell) []string {
	var out []string
	for _, cell := range cells {
		out = append(out, cell.String())
	}
	return out
}

func TestNewManager(t *testing.T) {
	m := view.NewManager(testColumns, testSellers(), 0)
	state := m.State()
	assert.Equal(t, view.NoSort, state.SortColumn)
	assert.True(t, state.SortAscending)
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, view.DefaultPageSize, state.PageSize)
	assert.Equal(t, []bool{true, true, true, true, true, true}, state.Visible)

	v := m.Materialize()
	assert.Equal(t, []string{"1", "2", "10", "3"}, sellerIDs(v), "unsorted rows keep aggregation order")
	assert.Equal(t, []string{"1", "6", "18.00", "-", "-", "18.00"}, cellStrings(v.Body[0].Cells))
}

func TestSortBy(t *testing.T) {
	m := view.NewManager(testColumns, testSellers(), 10)

	t.Run("numeric ids", func(t *testing.T) {
		m.SortBy(0)
		assert.Equal(t, []string{"1", "2", "3", "10"}, sellerIDs(m.Materialize()))

		m.SortBy(0)
		state := m.State()
		assert.Equal(t, 0, state.SortColumn)
		assert.False(t, state.SortAscending)
		assert.Equal(t, []string{"10", "3", "2", "1"}, sellerIDs(m.Materialize()))
	})

	t.Run("missing values stay last", func(t *testing.T) {
		m.SortBy(1)
		require.True(t, m.State().SortAscending, "a new column sorts ascending")
		assert.Equal(t, []string{"10", "1", "2", "3"}, sellerIDs(m.Materialize()))

		m.SortBy(1)
		assert.Equal(t, []string{"1", "10", "2", "3"}, sellerIDs(m.Materialize()))
	})

	t.Run("header shows sort", func(t *testing.T) {
		v := m.Materialize()
		assert.True(t, v.Header[1].Sorted)
		assert.False(t, v.Header[1].Ascending)
		assert.False(t, v.Header[0].Sorted)
	})

	t.Run("out of range is ignored", func(t *testing.T) {
		before := m.State()
		m.SortBy(-1)
		m.SortBy(len(testColumns))
		assert.Equal(t, before, m.State())
	})
}

func TestSortReversal(t *testing.T) {
	for column := range testColumns {
		m := view.NewManager(testColumns, testSellers(), 100)
		m.SortBy(column)
		ascending := m.Materialize()
		m.SortBy(column)
		descending := m.Materialize()

		var presentAsc, presentDesc, missingAsc, missingDesc []string
		for i, row := range ascending.Body {
			if row.Cells[column].Value.IsMissing() {
				missingAsc = append(missingAsc, row.SellerID)
			} else {
				require.Empty(t, missingAsc, "column %d: missing value before present value", column)
				presentAsc = append(presentAsc, row.SellerID)
			}
			desc := descending.Body[i]
			if desc.Cells[column].Value.IsMissing() {
				missingDesc = append(missingDesc, desc.SellerID)
			} else {
				require.Empty(t, missingDesc, "column %d: missing value before present value", column)
				presentDesc = append(presentDesc, desc.SellerID)
			}
		}

		for i, j := 0, len(presentAsc)-1; i < j; i, j = i+1, j-1 {
			presentAsc[i], presentAsc[j] = presentAsc[j], presentAsc[i]
		}
		require.Equal(t, presentAsc, presentDesc, "column %d", column)
		require.Equal(t, missingAsc, missingDesc, "column %d", column)
	}

	t.Run("ties keep source order in both directions", func(t *testing.T) {
		m := view.NewManager(testColumns, []rollup.SellerSummary{
			{SellerID: "a", TotalRevenue: 2},
			{SellerID: "b", TotalRevenue: 2},
			{SellerID: "c", TotalRevenue: 1},
		}, 10)
		m.SortBy(5)
		assert.Equal(t, []string{"c", "a", "b"}, sellerIDs(m.Materialize()))
		m.SortBy(5)
		assert.Equal(t, []string{"a", "b", "c"}, sellerIDs(m.Materialize()))
	})
}

func TestSortNonFiniteTotal(t *testing.T) {
	m := view.NewManager(testColumns, []rollup.SellerSummary{
		{SellerID: "a", TotalRevenue: math.Inf(1)},
		{SellerID: "b", TotalRevenue: 3},
		{SellerID: "c", TotalRevenue: 1},
	}, 10)

	m.SortBy(5)
	v := m.Materialize()
	assert.Equal(t, []string{"c", "b", "a"}, sellerIDs(v))
	assert.True(t, v.Body[2].Cells[5].Value.IsMissing())
	assert.Equal(t, "-", v.Body[2].Cells[5].String())
	assert.Equal(t, "4.00", v.Footer[5].String())

	m.SortBy(5)
	assert.Equal(t, []string{"b", "c", "a"}, sellerIDs(m.Materialize()))
}

func TestSortDoesNotMutateSource(t *testing.T) {
	sellers := testSellers()
	m := view.NewManager(testColumns, sellers, 2)
	m.SortBy(5)
	m.Materialize()
	m.MaterializeAll()
	require.Equal(t, testSellers(), sellers)
}

func TestPaging(t *testing.T) {
	m := view.NewManager(testColumns, testSellers(), 3)
	assert.Equal(t, 2, m.TotalPages())

	m.SetPage(2)
	v := m.Materialize()
	assert.Equal(t, 2, v.CurrentPage)
	assert.Equal(t, []string{"3"}, sellerIDs(v))
	assert.Equal(t, "Page 2 of 2", v.PageLabel())

	m.SetPage(99)
	assert.Equal(t, 2, m.State().CurrentPage)

	m.SetPage(-4)
	assert.Equal(t, 1, m.State().CurrentPage)

	m.NextPage()
	m.NextPage()
	assert.Equal(t, 2, m.State().CurrentPage)
	m.PrevPage()
	m.PrevPage()
	assert.Equal(t, 1, m.State().CurrentPage)
}

func TestPagingEmpty(t *testing.T) {
	m := view.NewManager(testColumns, nil, 10)
	assert.Equal(t, 0, m.TotalPages())

	m.SetPage(3)
	v := m.Materialize()
	assert.Equal(t, 1, v.CurrentPage)
	assert.Equal(t, 0, v.TotalPages)
	assert.Equal(t, 0, v.RowCount)
	assert.Empty(t, v.Body)
	assert.Equal(t, "Page 1 of 0", v.PageLabel())
	assert.Equal(t, []string{"TOTAL", "-", "-", "-", "-", "-"}, cellStrings(v.Footer))
}

func TestPaginationCoverage(t *testing.T) {
	var sellers []rollup.SellerSummary
	for i := 0; i < 23; i++ {
		sellers = append(sellers, rollup.SellerSummary{
			SellerID:     string(rune('a' + i)),
			TotalRevenue: float64(i % 4),
		})
	}

	m := view.NewManager(testColumns, sellers, 5)
	m.SortBy(5)
	all := sellerIDs(m.MaterializeAll())

	var concatenated []string
	for page := 1; page <= m.TotalPages(); page++ {
		m.SetPage(page)
		v := m.Materialize()
		if page < v.TotalPages {
			require.Len(t, v.Body, 5)
		}
		concatenated = append(concatenated, sellerIDs(v)...)
	}
	require.Equal(t, 5, m.TotalPages())
	require.Equal(t, all, concatenated)
	require.Len(t, concatenated, 23)
}

func TestSetPageSize(t *testing.T) {
	m := view.NewManager(testColumns, testSellers(), 2)
	m.SetPage(2)

	m.SetPageSize(0)
	assert.Equal(t, 2, m.State().PageSize)
	assert.Equal(t, 2, m.State().CurrentPage)

	m.SetPageSize(-3)
	assert.Equal(t, 2, m.State().PageSize)

	m.ParsePageSize("lots")
	assert.Equal(t, 2, m.State().PageSize)
	assert.Equal(t, 2, m.State().CurrentPage)

	m.ParsePageSize(" 3 ")
	assert.Equal(t, 3, m.State().PageSize)
	assert.Equal(t, 1, m.State().CurrentPage)

	m.SetPage(2)
	m.SetPageSize(1)
	assert.Equal(t, 1, m.State().CurrentPage)
	assert.Equal(t, 4, m.TotalPages())
}

func TestToggleColumn(t *testing.T) {
	m := view.NewManager(testColumns, testSellers(), 2)
	m.SortBy(2)
	m.SetPage(2)
	before := sellerIDs(m.Materialize())

	m.ToggleColumn(2)
	v := m.Materialize()
	assert.Equal(t, []string{"ID", "Latte", "Mocha", "Mocha price", "Total"}, headerLabels(v))
	assert.False(t, m.IsVisible(2))
	assert.False(t, v.Toggles[2].Visible)
	assert.Equal(t, before, sellerIDs(v), "hiding the sort column keeps the order")
	assert.Equal(t, 2, v.CurrentPage)
	assert.Equal(t, 2, m.State().SortColumn)
	for _, cell := range v.Header {
		assert.False(t, cell.Sorted)
	}

	m.ToggleColumn(2)
	v = m.Materialize()
	assert.Equal(t, []string{"ID", "Latte", "Latte price", "Mocha", "Mocha price", "Total"}, headerLabels(v))
	assert.Equal(t, 2, v.Header[2].Index)

	m.ToggleColumn(42)
	assert.Len(t, m.Materialize().Header, len(testColumns))
}

func TestFooter(t *testing.T) {
	m := view.NewManager(testColumns, testSellers(), 1)
	expected := []string{"TOTAL", "7", "21.00", "7", "10.50", "39.50"}

	for page := 1; page <= m.TotalPages(); page++ {
		m.SetPage(page)
		require.Equal(t, expected, cellStrings(m.Materialize().Footer), "page %d", page)
	}

	t.Run("first visible column holds the label", func(t *testing.T) {
		m.ToggleColumn(0)
		m.ToggleColumn(1)
		assert.Equal(t, []string{"TOTAL", "7", "10.50", "39.50"}, cellStrings(m.Materialize().Footer))
	})

	t.Run("column without numbers", func(t *testing.T) {
		m := view.NewManager(testColumns, testSellers()[:1], 10)
		assert.Equal(t, []string{"TOTAL", "6", "18.00", "-", "-", "18.00"}, cellStrings(m.Materialize().Footer))
	})
}

func TestSetData(t *testing.T) {
	m := view.NewManager(testColumns, testSellers(), 1)
	m.SortBy(5)
	m.ToggleColumn(3)
	m.SetPage(4)

	m.SetData(testSellers()[:2])
	state := m.State()
	assert.Equal(t, 2, state.CurrentPage)
	assert.Equal(t, 5, state.SortColumn)
	assert.False(t, state.Visible[3])
	assert.Equal(t, []string{"1"}, sellerIDs(m.Materialize()))
}
