// Package view holds the presentation state of the sales table and derives
// the rows to render from it.
package view

import (
	"slices"
	"strconv"
	"strings"

	"storj.io/sales-table/pkg/rollup"
)

const (
	// NoSort is the sort column when the table is unsorted.
	NoSort = -1

	// DefaultPageSize is used when no valid page size is given.
	DefaultPageSize = 23

	// TotalLabel heads the footer row.
	TotalLabel = "TOTAL"
)

// State is the presentation state of the table.
type State struct {
	SortColumn    int
	SortAscending bool
	CurrentPage   int
	PageSize      int
	Visible       []bool
}

// Manager owns the view state of one table. Every operation leaves the
// state valid; none of them fail. It is not safe for concurrent use.
type Manager struct {
	columns  []Column
	sellers  []rollup.SellerSummary
	state    State
	comparer *comparer
}

func NewManager(columns []Column, sellers []rollup.SellerSummary, pageSize int) *Manager {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	visible := make([]bool, len(columns))
	for i := range visible {
		visible[i] = true
	}
	return &Manager{
		columns: append([]Column(nil), columns...),
		sellers: sellers,
		state: State{
			SortColumn:    NoSort,
			SortAscending: true,
			CurrentPage:   1,
			PageSize:      pageSize,
			Visible:       visible,
		},
		comparer: newComparer(),
	}
}

// State returns a copy of the current state.
func (m *Manager) State() State {
	state := m.state
	state.Visible = append([]bool(nil), m.state.Visible...)
	return state
}

func (m *Manager) Columns() []Column {
	return append([]Column(nil), m.columns...)
}

// SetData replaces the aggregated sellers. Sort and column visibility are
// kept; the current page is clamped to the new page count.
func (m *Manager) SetData(sellers []rollup.SellerSummary) {
	m.sellers = sellers
	m.SetPage(m.state.CurrentPage)
}

// SortBy sorts by the column. Sorting by the current sort column flips the
// direction; any other column sorts ascending.
func (m *Manager) SortBy(column int) {
	if !m.validColumn(column) {
		return
	}
	if m.state.SortColumn == column {
		m.state.SortAscending = !m.state.SortAscending
		return
	}
	m.state.SortColumn = column
	m.state.SortAscending = true
}

// TotalPages returns the number of pages. An empty table has no pages.
func (m *Manager) TotalPages() int {
	return (len(m.sellers) + m.state.PageSize - 1) / m.state.PageSize
}

// SetPage moves to the page, clamped to the available pages.
func (m *Manager) SetPage(page int) {
	m.state.CurrentPage = clamp(page, 1, max(m.TotalPages(), 1))
}

func (m *Manager) NextPage() {
	m.SetPage(m.state.CurrentPage + 1)
}

func (m *Manager) PrevPage() {
	m.SetPage(m.state.CurrentPage - 1)
}

// SetPageSize changes the page size and returns to the first page. Sizes
// below one are ignored.
func (m *Manager) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	m.state.PageSize = size
	m.state.CurrentPage = 1
}

// ParsePageSize is SetPageSize for user input. Input that is not a number is
// ignored.
func (m *Manager) ParsePageSize(input string) {
	size, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return
	}
	m.SetPageSize(size)
}

// ToggleColumn shows or hides the column. Hiding the sort column keeps the
// rows in their sorted order.
func (m *Manager) ToggleColumn(column int) {
	if !m.validColumn(column) {
		return
	}
	m.state.Visible[column] = !m.state.Visible[column]
}

func (m *Manager) IsVisible(column int) bool {
	return m.validColumn(column) && m.state.Visible[column]
}

// HeaderCell is a visible column header.
type HeaderCell struct {
	// Index is the position of the column among all columns.
	Index     int
	Label     string
	Sorted    bool
	Ascending bool
}

// Cell is a rendered cell.
type Cell struct {
	Value  Value
	Format Format
}

func (c Cell) String() string {
	return c.Value.Display(c.Format)
}

// Row is a rendered body row.
type Row struct {
	SellerID string
	Cells    []Cell
}

// ColumnToggle describes a column for the visibility controls.
type ColumnToggle struct {
	Index   int
	Label   string
	Visible bool
}

// View is everything needed to draw the table.
type View struct {
	Header      []HeaderCell
	Body        []Row
	Footer      []Cell
	Toggles     []ColumnToggle
	RowCount    int
	PageSize    int
	CurrentPage int
	TotalPages  int
}

// PageLabel returns the page counter text.
func (v View) PageLabel() string {
	return "Page " + strconv.Itoa(v.CurrentPage) + " of " + strconv.Itoa(v.TotalPages)
}

// Materialize derives the page to render: the rows are sorted over the full
// dataset, then paginated, then reduced to the visible columns. The footer
// totals cover every row, not just the current page.
func (m *Manager) Materialize() View {
	m.SetPage(m.state.CurrentPage)
	sorted := m.sorted()

	start := min(m.state.PageSize*(m.state.CurrentPage-1), len(sorted))
	end := min(start+m.state.PageSize, len(sorted))

	return m.build(sorted, sorted[start:end])
}

// MaterializeAll is Materialize without pagination.
func (m *Manager) MaterializeAll() View {
	m.SetPage(m.state.CurrentPage)
	sorted := m.sorted()
	return m.build(sorted, sorted)
}

func (m *Manager) build(all, page []rollup.SellerSummary) View {
	visible := m.visibleColumns()

	header := make([]HeaderCell, 0, len(visible))
	for _, i := range visible {
		header = append(header, HeaderCell{
			Index:     i,
			Label:     m.columns[i].Header,
			Sorted:    i == m.state.SortColumn,
			Ascending: m.state.SortAscending,
		})
	}

	body := make([]Row, 0, len(page))
	for _, seller := range page {
		cells := make([]Cell, 0, len(visible))
		for _, i := range visible {
			cells = append(cells, m.cell(i, seller))
		}
		body = append(body, Row{SellerID: seller.SellerID, Cells: cells})
	}

	toggles := make([]ColumnToggle, 0, len(m.columns))
	for i, column := range m.columns {
		toggles = append(toggles, ColumnToggle{
			Index:   i,
			Label:   column.Header,
			Visible: m.state.Visible[i],
		})
	}

	return View{
		Header:      header,
		Body:        body,
		Footer:      m.footer(visible, all),
		Toggles:     toggles,
		RowCount:    len(all),
		PageSize:    m.state.PageSize,
		CurrentPage: m.state.CurrentPage,
		TotalPages:  m.TotalPages(),
	}
}

func (m *Manager) footer(visible []int, rows []rollup.SellerSummary) []Cell {
	footer := make([]Cell, 0, len(visible))
	for n, i := range visible {
		if n == 0 {
			footer = append(footer, Cell{Value: Text(TotalLabel), Format: FormatText})
			continue
		}

		var total float64
		var numeric bool
		for _, seller := range rows {
			if f, ok := ValueOf(m.columns[i], seller).Float(); ok {
				total += f
				numeric = true
			}
		}

		format := m.columns[i].Format()
		if format == FormatText {
			format = FormatMoney
		}
		value := Missing
		if numeric {
			value = Number(total)
		}
		footer = append(footer, Cell{Value: value, Format: format})
	}
	return footer
}

func (m *Manager) cell(column int, seller rollup.SellerSummary) Cell {
	return Cell{
		Value:  ValueOf(m.columns[column], seller),
		Format: m.columns[column].Format(),
	}
}

// sorted returns a sorted copy of the sellers. The source slice is never
// reordered.
func (m *Manager) sorted() []rollup.SellerSummary {
	sorted := slices.Clone(m.sellers)
	if m.state.SortColumn == NoSort {
		return sorted
	}
	column := m.columns[m.state.SortColumn]
	ascending := m.state.SortAscending
	slices.SortStableFunc(sorted, func(a, b rollup.SellerSummary) int {
		return m.comparer.compare(ValueOf(column, a), ValueOf(column, b), ascending)
	})
	return sorted
}

func (m *Manager) visibleColumns() []int {
	var visible []int
	for i, ok := range m.state.Visible {
		if ok {
			visible = append(visible, i)
		}
	}
	return visible
}

func (m *Manager) validColumn(column int) bool {
	return column >= 0 && column < len(m.columns)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
