// Package tui realizes a sales table element tree as terminal widgets.
package tui

import (
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/zeebo/errs"

	"storj.io/sales-table/pkg/element"
)

const (
	sortedAscMarker  = " ▲"
	sortedDescMarker = " ▼"
)

// Builder rebuilds the widget tree on every Realize and installs it as the
// root of the application. Without an application the widgets are built but
// not shown. Realize must be called from the application's event goroutine
// once the application runs; event handlers already are.
type Builder struct {
	app *tview.Application

	tree       *element.Element
	root       tview.Primitive
	table      *tview.Table
	focusables []tview.Primitive
	focus      int
}

func New(app *tview.Application) *Builder {
	return &Builder{app: app}
}

// Root returns the widget tree built by the last Realize.
func (b *Builder) Root() tview.Primitive {
	return b.root
}

// Table returns the table widget built by the last Realize.
func (b *Builder) Table() *tview.Table {
	return b.table
}

func (b *Builder) Realize(root *element.Element) error {
	if root.First(element.ByTag("table")) == nil {
		return errs.New("no table to render")
	}

	first := b.tree == nil
	b.tree = root
	b.table = nil
	b.focusables = nil

	flex := tview.NewFlex().SetDirection(tview.FlexRow)
	for _, child := range root.Children {
		primitive, size, proportion := b.build(child)
		flex.AddItem(primitive, size, proportion, false)
	}
	flex.AddItem(tview.NewTextView().
		SetText("tab: next control  n/p: page  q: quit").
		SetTextColor(tview.Styles.TertiaryTextColor), 1, 0, false)
	b.root = flex

	if first {
		b.focus = slices.Index(b.focusables, tview.Primitive(b.table))
	}
	b.focus = min(b.focus, len(b.focusables)-1)
	if b.app != nil {
		b.app.SetRoot(b.root, true)
		if b.focus >= 0 {
			b.app.SetFocus(b.focusables[b.focus])
		}
	}
	return nil
}

// build returns the widget for the element with its fixed size and
// proportion inside the parent flex.
func (b *Builder) build(e *element.Element) (tview.Primitive, int, int) {
	switch e.Tag {
	case "table":
		return b.buildTable(e), 0, 1
	case "button":
		button := tview.NewButton(e.Text)
		if e.OnClick != nil {
			button.SetSelectedFunc(e.OnClick)
		}
		if e.HasClass("column-hidden") {
			button.SetStyle(tcell.StyleDefault.
				Background(tview.Styles.MoreContrastBackgroundColor).
				Foreground(tview.Styles.TertiaryTextColor))
		}
		b.focusables = append(b.focusables, button)
		return button, len([]rune(e.Text)) + 4, 0
	case "input":
		input := tview.NewInputField().
			SetText(e.Value).
			SetFieldWidth(6).
			SetAcceptanceFunc(tview.InputFieldInteger)
		if e.OnChange != nil {
			input.SetDoneFunc(func(key tcell.Key) {
				if key == tcell.KeyEnter {
					e.OnChange(input.GetText())
				}
			})
		}
		b.focusables = append(b.focusables, input)
		return input, 7, 0
	case "span":
		text := tview.NewTextView().SetText(e.Text)
		if e.HasClass("page-counter") {
			text.SetTextColor(colorGold).SetTextAlign(tview.AlignCenter)
			return text, len([]rune(e.Text)) + 4, 0
		}
		return text, len([]rune(e.Text)) + 1, 0
	default:
		if e.HasClass("pagination") {
			flex := tview.NewFlex().SetDirection(tview.FlexRow)
			for _, child := range e.Children {
				primitive, size, proportion := b.build(child)
				flex.AddItem(primitive, size, proportion, false)
			}
			return flex, len(e.Children), 0
		}
		flex := tview.NewFlex().SetDirection(tview.FlexColumn)
		for _, child := range e.Children {
			primitive, size, proportion := b.build(child)
			flex.AddItem(primitive, size, proportion, false)
			flex.AddItem(nil, 1, 0, false)
		}
		flex.AddItem(nil, 0, 1, false)
		return flex, 1, 0
	}
}

func (b *Builder) buildTable(e *element.Element) *tview.Table {
	table := tview.NewTable().
		SetBorders(false).
		SetFixed(1, 0).
		SetSelectable(true, true)
	table.SetBorder(true).SetTitle(" Sales ")

	var headers []*element.Element
	for _, th := range e.Find(element.ByTag("th")) {
		text := th.Text
		switch {
		case th.HasClass("sorted-asc"):
			text += sortedAscMarker
		case th.HasClass("sorted-desc"):
			text += sortedDescMarker
		}
		table.SetCell(0, len(headers), tview.NewTableCell(text).
			SetTextColor(colorGold).
			SetAttributes(tcell.AttrBold).
			SetAlign(tview.AlignCenter).
			SetExpansion(1))
		headers = append(headers, th)
	}

	row := 1
	if tbody := e.First(element.ByTag("tbody")); tbody != nil {
		for _, tr := range tbody.Children {
			for col, td := range tr.Children {
				align := tview.AlignRight
				if col == 0 {
					align = tview.AlignLeft
				}
				table.SetCell(row, col, tview.NewTableCell(td.Text).
					SetTextColor(tview.Styles.PrimaryTextColor).
					SetAlign(align))
			}
			row++
		}
	}

	if tfoot := e.First(element.ByTag("tfoot")); tfoot != nil {
		for col, td := range tfoot.Find(element.ByTag("td")) {
			align, color := tview.AlignRight, colorFoam
			if td.HasClass("total-label") {
				align, color = tview.AlignLeft, colorLove
			}
			table.SetCell(row, col, tview.NewTableCell(td.Text).
				SetTextColor(color).
				SetAttributes(tcell.AttrBold).
				SetAlign(align).
				SetSelectable(false))
		}
	}

	table.SetSelectedFunc(func(row, column int) {
		if row == 0 && column < len(headers) && headers[column].OnClick != nil {
			headers[column].OnClick()
		}
	})

	b.table = table
	b.focusables = append(b.focusables, table)
	return table
}

// HandleKey handles the application wide keys and returns the event when it
// is left for the focused widget.
func (b *Builder) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if len(b.focusables) == 0 {
			return nil
		}
		step := 1
		if event.Key() == tcell.KeyBacktab {
			step = len(b.focusables) - 1
		}
		b.focus = (b.focus + step) % len(b.focusables)
		if b.app != nil {
			b.app.SetFocus(b.focusables[b.focus])
		}
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	if b.focus >= 0 && b.focus < len(b.focusables) {
		if _, typing := b.focusables[b.focus].(*tview.InputField); typing {
			return event
		}
	}

	switch event.Rune() {
	case 'q':
		if b.app != nil {
			b.app.Stop()
		}
		return nil
	case 'n':
		b.click("next-page")
		return nil
	case 'p':
		b.click("previous-page")
		return nil
	}
	return event
}

// SetupKeyBindings installs HandleKey as the input capture of the
// application.
func (b *Builder) SetupKeyBindings() {
	if b.app != nil {
		b.app.SetInputCapture(b.HandleKey)
	}
}

func (b *Builder) click(class string) {
	if b.tree == nil {
		return
	}
	if button := b.tree.First(element.ByClass(class)); button != nil && button.OnClick != nil {
		button.OnClick()
	}
}
