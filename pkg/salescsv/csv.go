// Package salescsv provides functions for loading and writing sales CSV files
package salescsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zeebo/errs"

	"storj.io/sales-table/pkg/sales"
)

const expectFields = 4

var (
	// Header is the header written by Write.
	Header = []string{"sellerId", "productId", "quantity", "unitPrice"}

	// legacyHeader is the header used by older point of sale exports.
	legacyHeader = []string{"baristaId", "coffeeId", "cups", "price"}
)

type Row struct {
	// Line number in the CSV file
	Line int

	sales.Record
}

func Load(path string) ([]Row, error) {
	csvBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	return Parse(csvBytes)
}

// Parse parses sales CSV data. Rows with empty ids or empty amounts are kept;
// they are filtered out when the sales are aggregated so that they can be
// reported on.
func Parse(csvBytes []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(csvBytes))
	r.FieldsPerRecord = -1
	r.Comment = '#'
	r.TrimLeadingSpace = true

	inHeader := true
	var rows []Row
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errs.Wrap(err)
		}
		line, _ := r.FieldPos(0)

		// skip blank lines and indented comments
		if record[0] == "" && len(record) == 1 || strings.HasPrefix(record[0], "#") {
			continue
		}

		// first non-empty, non-comment line must be the header
		if inHeader {
			inHeader = false
			if !headerMatches(record) {
				return nil, errs.New("record on line %d: invalid header %q; expected %q", line, strings.Join(record, ","), strings.Join(Header, ","))
			}
			continue
		}

		if len(record) != expectFields {
			return nil, errs.New("record on line %d: expected %d fields but got %d", line, expectFields, len(record))
		}

		quantity, err := parseAmount(record[2])
		if err != nil {
			return nil, errs.New("record on line %d: invalid quantity %q: %v", line, record[2], err)
		}

		unitPrice, err := parseAmount(record[3])
		if err != nil {
			return nil, errs.New("record on line %d: invalid unit price %q: %v", line, record[3], err)
		}

		rows = append(rows, Row{
			Line: line,
			Record: sales.Record{
				SellerID:  strings.TrimSpace(record[0]),
				ProductID: strings.TrimSpace(record[1]),
				Quantity:  quantity,
				UnitPrice: unitPrice,
			},
		})
	}

	return rows, nil
}

// Records strips the line information from the rows.
func Records(rows []Row) []sales.Record {
	records := make([]sales.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record)
	}
	return records
}

// Write writes the records as CSV, header first. Non-finite amounts are
// written as empty fields.
func Write(w io.Writer, records []sales.Record) error {
	out := csv.NewWriter(w)
	if err := out.Write(Header); err != nil {
		return errs.Wrap(err)
	}
	for _, record := range records {
		if err := out.Write([]string{
			record.SellerID,
			record.ProductID,
			formatAmount(record.Quantity),
			formatAmount(record.UnitPrice),
		}); err != nil {
			return errs.Wrap(err)
		}
	}
	out.Flush()
	return errs.Wrap(out.Error())
}

// parseAmount parses an amount. A missing amount is returned as NaN.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func formatAmount(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return decimal.NewFromFloat(f).String()
}

func headerMatches(record []string) bool {
	return fieldsEqual(record, Header) || fieldsEqual(record, legacyHeader)
}

func fieldsEqual(record, expected []string) bool {
	if len(record) != len(expected) {
		return false
	}
	for i := range record {
		if strings.TrimSpace(record[i]) != expected[i] {
			return false
		}
	}
	return true
}
