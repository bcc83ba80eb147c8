// Package textreport realizes a sales table element tree as plain text.
package textreport

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/zeebo/errs"

	"storj.io/sales-table/pkg/element"
)

// Builder writes each realized tree to the writer as a text table followed
// by the page counter and the hidden columns. Handlers are ignored.
type Builder struct {
	w io.Writer
}

func New(w io.Writer) *Builder {
	return &Builder{w: w}
}

func (b *Builder) Realize(root *element.Element) error {
	tbl := root.First(element.ByTag("table"))
	if tbl == nil {
		return errs.New("no table to render")
	}

	out := tablewriter.NewWriter(b.w)
	out.SetAutoFormatHeaders(false)
	out.SetAutoWrapText(false)
	out.SetAlignment(tablewriter.ALIGN_RIGHT)

	if thead := tbl.First(element.ByTag("thead")); thead != nil {
		out.SetHeader(headerTexts(thead))
	}
	if tbody := tbl.First(element.ByTag("tbody")); tbody != nil {
		for _, tr := range tbody.Children {
			out.Append(element.Texts(tr.Children))
		}
	}
	if tfoot := tbl.First(element.ByTag("tfoot")); tfoot != nil {
		out.SetFooter(element.Texts(tfoot.Find(element.ByTag("td"))))
	}
	out.Render()

	if counter := root.First(element.ByClass("page-counter")); counter != nil {
		if _, err := fmt.Fprintln(b.w, counter.Text); err != nil {
			return errs.Wrap(err)
		}
	}

	if hidden := element.Texts(root.Find(element.ByClass("column-hidden"))); len(hidden) > 0 {
		if _, err := fmt.Fprintf(b.w, "Hidden columns: %s\n", strings.Join(hidden, ", ")); err != nil {
			return errs.Wrap(err)
		}
	}
	return nil
}

func headerTexts(thead *element.Element) []string {
	var texts []string
	for _, th := range thead.Find(element.ByTag("th")) {
		text := th.Text
		switch {
		case th.HasClass("sorted-asc"):
			text += " ^"
		case th.HasClass("sorted-desc"):
			text += " v"
		}
		texts = append(texts, text)
	}
	return texts
}
