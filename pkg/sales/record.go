// Package sales holds the raw sale record and the rules for trusting one.
package sales

import "math"

// Record is a single sale as reported by a point of sale.
type Record struct {
	// SellerID identifies the barista who made the sale.
	SellerID string

	// ProductID identifies the product sold. It is resolved to a display
	// name through the catalogue.
	ProductID string

	// Quantity is the number of items sold.
	Quantity float64

	// UnitPrice is the price of a single item.
	UnitPrice float64
}

// Revenue returns the revenue brought in by the record.
func (r Record) Revenue() float64 {
	return r.Quantity * r.UnitPrice
}

type SkipReason int

const (
	RowValid SkipReason = iota
	RowMissingSeller
	RowMissingProduct
	RowBadAmount
	// RowSkipReasonMax must remain at the end.
	RowSkipReasonMax
)

func (r SkipReason) String() string {
	switch r {
	case RowValid:
		return "valid"
	case RowMissingSeller:
		return "missing seller"
	case RowMissingProduct:
		return "missing product"
	case RowBadAmount:
		return "bad amount"
	default:
		return "unknown"
	}
}

// Validate returns the reason the record cannot be trusted, or RowValid.
// Ids are checked for presence only, so "0" is a legitimate id.
func Validate(r Record) SkipReason {
	switch {
	case r.SellerID == "":
		return RowMissingSeller
	case r.ProductID == "":
		return RowMissingProduct
	case !isFinite(r.Quantity), !isFinite(r.UnitPrice), !isFinite(r.Revenue()):
		return RowBadAmount
	}
	return RowValid
}

// IsValid reports whether the record can be aggregated.
func IsValid(r Record) bool {
	return Validate(r) == RowValid
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
