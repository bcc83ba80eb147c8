package sales_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"storj.io/sales-table/pkg/sales"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		record sales.Record
		reason sales.SkipReason
	}{
		{
			name:   "valid",
			record: sales.Record{SellerID: "1", ProductID: "A", Quantity: 4, UnitPrice: 3},
			reason: sales.RowValid,
		},
		{
			name:   "zero ids are present",
			record: sales.Record{SellerID: "0", ProductID: "0", Quantity: 0, UnitPrice: 0},
			reason: sales.RowValid,
		},
		{
			name:   "missing seller",
			record: sales.Record{ProductID: "A", Quantity: 1, UnitPrice: 1},
			reason: sales.RowMissingSeller,
		},
		{
			name:   "missing product",
			record: sales.Record{SellerID: "1", Quantity: 1, UnitPrice: 1},
			reason: sales.RowMissingProduct,
		},
		{
			name:   "nan quantity",
			record: sales.Record{SellerID: "1", ProductID: "A", Quantity: math.NaN(), UnitPrice: 1},
			reason: sales.RowBadAmount,
		},
		{
			name:   "revenue overflows",
			record: sales.Record{SellerID: "1", ProductID: "A", Quantity: 1e200, UnitPrice: 1e200},
			reason: sales.RowBadAmount,
		},
		{
			name:   "infinite price",
			record: sales.Record{SellerID: "1", ProductID: "A", Quantity: 1, UnitPrice: math.Inf(1)},
			reason: sales.RowBadAmount,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.reason, sales.Validate(testCase.record))
			require.Equal(t, testCase.reason == sales.RowValid, sales.IsValid(testCase.record))
		})
	}
}

func TestSkipReasonString(t *testing.T) {
	require.Equal(t, "missing seller", sales.RowMissingSeller.String())
	require.Equal(t, "bad amount", sales.RowBadAmount.String())
	require.Equal(t, "unknown", sales.RowSkipReasonMax.String())
}
