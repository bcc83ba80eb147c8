package table

import (
	"storj.io/sales-table/pkg/catalogue"
	"storj.io/sales-table/pkg/view"
)

const (
	IDHeader    = "ID"
	TotalHeader = "Total"
)

// Columns returns the table columns for the catalogue: the seller id, a
// quantity and a revenue column per product, and the seller total.
func Columns(c catalogue.Catalogue) []view.Column {
	products := c.Products()
	columns := make([]view.Column, 0, 2+2*len(products))
	columns = append(columns, view.Column{Header: IDHeader, Field: view.FieldSellerID})
	for _, product := range products {
		name := product.Name
		if name == "" {
			name = product.ID
		}
		columns = append(columns,
			view.Column{Header: name, Field: view.FieldQuantity, ProductID: product.ID},
			view.Column{Header: name + " price", Field: view.FieldRevenue, ProductID: product.ID},
		)
	}
	return append(columns, view.Column{Header: TotalHeader, Field: view.FieldTotal})
}
