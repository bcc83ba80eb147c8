// Package rollup aggregates sales records into per seller, per product
// summaries.
package rollup

import (
	"storj.io/sales-table/pkg/catalogue"
	"storj.io/sales-table/pkg/sales"
)

type ProductSummary struct {
	ProductID string

	// ProductName is the catalogue name of the product. It is empty when
	// the catalogue does not know the product.
	ProductName string

	SubtotalRevenue float64
	TotalQuantity   float64
}

type SellerSummary struct {
	SellerID string

	// Products are ordered by first sale.
	Products []ProductSummary

	TotalRevenue float64
}

// Product returns the summary for the given product, if the seller sold it.
func (s SellerSummary) Product(productID string) (ProductSummary, bool) {
	for _, product := range s.Products {
		if product.ProductID == productID {
			return product, true
		}
	}
	return ProductSummary{}, false
}

type Stats struct {
	// Records is the number of records passed in.
	Records int

	// Valid is the number of records that were aggregated.
	Valid int

	// Dropped counts the records that were skipped, by reason.
	Dropped [sales.RowSkipReasonMax]int
}

// TotalDropped returns the number of records that were skipped.
func (s Stats) TotalDropped() int {
	return s.Records - s.Valid
}

type Result struct {
	// Sellers are ordered by first sale.
	Sellers []SellerSummary

	Stats Stats
}

// Aggregate rolls the records up by seller and then by product. Invalid
// records are dropped and counted in the stats; aggregation never fails.
func Aggregate(records []sales.Record, products catalogue.Catalogue) Result {
	stats := Stats{Records: len(records)}

	valid := make([]sales.Record, 0, len(records))
	for _, record := range records {
		reason := sales.Validate(record)
		if reason != sales.RowValid {
			stats.Dropped[reason]++
			continue
		}
		valid = append(valid, record)
	}
	stats.Valid = len(valid)

	bySeller := GroupBy(valid, func(r sales.Record) string { return r.SellerID })

	sellers := make([]SellerSummary, 0, len(bySeller))
	for _, seller := range bySeller {
		byProduct := GroupBy(seller.Items, func(r sales.Record) string { return r.ProductID })

		summaries := make([]ProductSummary, 0, len(byProduct))
		for _, product := range byProduct {
			name, _ := products.Name(product.Key)
			summaries = append(summaries, ProductSummary{
				ProductID:       product.Key,
				ProductName:     name,
				SubtotalRevenue: Sum(product.Items, sales.Record.Revenue),
				TotalQuantity:   Sum(product.Items, func(r sales.Record) float64 { return r.Quantity }),
			})
		}

		sellers = append(sellers, SellerSummary{
			SellerID:     seller.Key,
			Products:     summaries,
			TotalRevenue: Sum(summaries, func(p ProductSummary) float64 { return p.SubtotalRevenue }),
		})
	}

	return Result{
		Sellers: sellers,
		Stats:   stats,
	}
}
