// Package salesgen generates synthetic sales records for demos and load
// testing the table.
package salesgen

import (
	"math"
	"math/rand/v2"
	"strconv"

	"github.com/shopspring/decimal"

	"storj.io/sales-table/pkg/catalogue"
	"storj.io/sales-table/pkg/sales"
)

type Options struct {
	// Count is the number of records to generate.
	Count int

	// Sellers is the number of distinct sellers. Seller ids are 1..Sellers.
	Sellers int

	// Invalid is the share of records, between 0 and 1, that are made
	// invalid on purpose.
	Invalid float64
}

// Generate returns opts.Count records selling products from the catalogue.
// Each product has one unit price across all records.
func Generate(rng *rand.Rand, c catalogue.Catalogue, opts Options) []sales.Record {
	products := c.Products()
	if len(products) == 0 || opts.Count <= 0 {
		return nil
	}
	sellers := max(opts.Sellers, 1)

	prices := make([]float64, len(products))
	for i := range prices {
		// 2.00 through 5.75 in quarter steps
		prices[i] = decimal.NewFromInt(int64(8 + rng.IntN(16))).Div(decimal.NewFromInt(4)).InexactFloat64()
	}

	records := make([]sales.Record, 0, opts.Count)
	for range opts.Count {
		n := rng.IntN(len(products))
		record := sales.Record{
			SellerID:  strconv.Itoa(1 + rng.IntN(sellers)),
			ProductID: products[n].ID,
			Quantity:  float64(1 + rng.IntN(5)),
			UnitPrice: prices[n],
		}
		if rng.Float64() < opts.Invalid {
			spoil(rng, &record)
		}
		records = append(records, record)
	}
	return records
}

// spoil makes the record invalid in one of the ways real exports are.
func spoil(rng *rand.Rand, record *sales.Record) {
	switch rng.IntN(4) {
	case 0:
		record.SellerID = ""
	case 1:
		record.ProductID = ""
	case 2:
		record.Quantity = math.NaN()
	default:
		record.UnitPrice = math.NaN()
	}
}
