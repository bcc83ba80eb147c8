// Package table presents the sales view as element descriptors and wires
// user events back into the view state.
package table

import (
	"strconv"

	"go.uber.org/zap"

	"storj.io/sales-table/pkg/element"
	"storj.io/sales-table/pkg/view"
)

// DefaultQuickPageSizes are offered when no quick page sizes are configured.
var DefaultQuickPageSizes = []int{10, 20, 50, 100}

type Options struct {
	// QuickPageSizes are offered as one-click page sizes.
	QuickPageSizes []int
}

// Presenter renders a Manager through a Builder. Every event handler it
// hands to the builder updates the manager and renders again. It is not
// safe for concurrent use.
type Presenter struct {
	log            *zap.Logger
	manager        *view.Manager
	builder        element.Builder
	quickPageSizes []int
}

func New(log *zap.Logger, manager *view.Manager, builder element.Builder, opts Options) *Presenter {
	quickPageSizes := opts.QuickPageSizes
	if len(quickPageSizes) == 0 {
		quickPageSizes = DefaultQuickPageSizes
	}
	return &Presenter{
		log:            log,
		manager:        manager,
		builder:        builder,
		quickPageSizes: quickPageSizes,
	}
}

func (p *Presenter) Manager() *view.Manager {
	return p.manager
}

// Render materializes the current view and hands it to the builder.
func (p *Presenter) Render() error {
	return p.builder.Realize(p.Tree())
}

// Tree materializes the current view as an element tree.
func (p *Presenter) Tree() *element.Element {
	v := p.manager.Materialize()
	p.log.Debug("Materialized view",
		zap.Int("rows", v.RowCount),
		zap.Int("page", v.CurrentPage),
		zap.Int("pages", v.TotalPages),
		zap.Int("columns", len(v.Header)),
	)

	return &element.Element{
		Tag:        "div",
		ClassNames: []string{"sales-table"},
		Children: []*element.Element{
			p.columnControls(v),
			p.table(v),
			p.pagination(v),
		},
	}
}

func (p *Presenter) columnControls(v view.View) *element.Element {
	children := []*element.Element{
		{Tag: "span", Text: "Toggle columns: ", ClassNames: []string{"controls-label"}},
	}
	for _, toggle := range v.Toggles {
		class := "column-visible"
		if !toggle.Visible {
			class = "column-hidden"
		}
		children = append(children, &element.Element{
			Tag:        "button",
			Text:       toggle.Label,
			ClassNames: []string{"column-toggle", class},
			OnClick: p.handle("toggle column", func() {
				p.manager.ToggleColumn(toggle.Index)
			}, zap.Int("column", toggle.Index)),
		})
	}
	return &element.Element{
		Tag:        "div",
		ClassNames: []string{"column-controls"},
		Children:   children,
	}
}

func (p *Presenter) table(v view.View) *element.Element {
	headerCells := make([]*element.Element, 0, len(v.Header))
	for _, cell := range v.Header {
		classNames := []string{"sortable"}
		switch {
		case cell.Sorted && cell.Ascending:
			classNames = append(classNames, "sorted-asc")
		case cell.Sorted:
			classNames = append(classNames, "sorted-desc")
		}
		headerCells = append(headerCells, &element.Element{
			Tag:        "th",
			Text:       cell.Label,
			ClassNames: classNames,
			OnClick: p.handle("sort", func() {
				p.manager.SortBy(cell.Index)
			}, zap.Int("column", cell.Index)),
		})
	}

	bodyRows := make([]*element.Element, 0, len(v.Body))
	for _, row := range v.Body {
		cells := make([]*element.Element, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, &element.Element{Tag: "td", Text: cell.String()})
		}
		bodyRows = append(bodyRows, &element.Element{Tag: "tr", Children: cells})
	}

	footerCells := make([]*element.Element, 0, len(v.Footer))
	for i, cell := range v.Footer {
		class := "total-value"
		if i == 0 {
			class = "total-label"
		}
		footerCells = append(footerCells, &element.Element{
			Tag:        "td",
			Text:       cell.String(),
			ClassNames: []string{class},
		})
	}

	return &element.Element{
		Tag:        "table",
		ClassNames: []string{"table__wrapper"},
		Children: []*element.Element{
			{Tag: "thead", Children: []*element.Element{{Tag: "tr", Children: headerCells}}},
			{Tag: "tbody", Children: bodyRows},
			{
				Tag:        "tfoot",
				ClassNames: []string{"table-footer"},
				Children: []*element.Element{
					{Tag: "tr", ClassNames: []string{"total-row"}, Children: footerCells},
				},
			},
		},
	}
}

func (p *Presenter) pagination(v view.View) *element.Element {
	quickSelect := make([]*element.Element, 0, len(p.quickPageSizes))
	for _, size := range p.quickPageSizes {
		quickSelect = append(quickSelect, &element.Element{
			Tag:        "button",
			Text:       strconv.Itoa(size),
			ClassNames: []string{"quick-select-button"},
			OnClick: p.handle("set page size", func() {
				p.manager.SetPageSize(size)
			}, zap.Int("size", size)),
		})
	}

	pageSize := &element.Element{
		Tag:        "div",
		ClassNames: []string{"page-size-container"},
		Children: []*element.Element{
			{Tag: "span", Text: "Rows per page:", ClassNames: []string{"page-size-label"}},
			{
				Tag:        "input",
				ClassNames: []string{"page-size-input"},
				Value:      strconv.Itoa(v.PageSize),
				OnChange: func(value string) {
					p.handle("set page size", func() {
						p.manager.ParsePageSize(value)
					}, zap.String("input", value))()
				},
			},
			{Tag: "div", ClassNames: []string{"quick-select-container"}, Children: quickSelect},
		},
	}

	navigation := &element.Element{
		Tag:        "div",
		ClassNames: []string{"navigation-container"},
		Children: []*element.Element{
			{
				Tag:        "button",
				Text:       "Previous Page",
				ClassNames: []string{"pagination-button", "previous-page"},
				OnClick:    p.handle("previous page", p.manager.PrevPage),
			},
			{Tag: "span", Text: v.PageLabel(), ClassNames: []string{"page-counter"}},
			{
				Tag:        "button",
				Text:       "Next Page",
				ClassNames: []string{"pagination-button", "next-page"},
				OnClick:    p.handle("next page", p.manager.NextPage),
			},
		},
	}

	return &element.Element{
		Tag:        "div",
		ClassNames: []string{"pagination"},
		Children:   []*element.Element{pageSize, navigation},
	}
}

// handle wraps a state change into an event handler that renders again.
// Render failures are logged; handlers never fail.
func (p *Presenter) handle(event string, change func(), fields ...zap.Field) func() {
	return func() {
		change()
		p.log.Debug("Handled "+event, fields...)
		if err := p.Render(); err != nil {
			p.log.Error("Failed to render after "+event, append(fields, zap.Error(err))...)
		}
	}
}
