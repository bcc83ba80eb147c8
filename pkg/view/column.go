package view

import "storj.io/sales-table/pkg/rollup"

// Field selects what a column shows for a seller.
type Field int

const (
	FieldSellerID Field = iota
	FieldQuantity
	FieldRevenue
	FieldTotal
)

// Column describes a table column. Product columns carry the product id
// they project; the value itself is resolved by ValueOf.
type Column struct {
	Header    string
	Field     Field
	ProductID string
}

// Format returns how values of the column are displayed.
func (c Column) Format() Format {
	switch c.Field {
	case FieldQuantity:
		return FormatCount
	case FieldRevenue, FieldTotal:
		return FormatMoney
	default:
		return FormatText
	}
}

// ValueOf projects the seller onto the column.
func ValueOf(c Column, seller rollup.SellerSummary) Value {
	switch c.Field {
	case FieldSellerID:
		return Text(seller.SellerID)
	case FieldTotal:
		return Number(seller.TotalRevenue)
	}

	product, ok := seller.Product(c.ProductID)
	if !ok {
		return Missing
	}
	switch c.Field {
	case FieldQuantity:
		return Number(product.TotalQuantity)
	case FieldRevenue:
		return Number(product.SubtotalRevenue)
	default:
		return Missing
	}
}
