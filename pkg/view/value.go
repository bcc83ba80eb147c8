package view

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel is how a missing value is displayed.
const Sentinel = "-"

// Value is a cell value: a number, a text, or missing.
type Value struct {
	number  float64
	text    string
	numeric bool
	missing bool
}

// Missing is the "no data for this cell" marker. It is distinct from zero.
var Missing = Value{missing: true}

func Number(f float64) Value {
	return Value{number: f, numeric: true}
}

func Text(s string) Value {
	return Value{text: s}
}

// IsMissing reports whether v has no data. Numbers that are not finite
// count as missing.
func (v Value) IsMissing() bool {
	return v.missing || v.numeric && !isFinite(v.number)
}

// Float returns the numeric value of v. Text values are parsed; only finite
// results count as numeric.
func (v Value) Float() (float64, bool) {
	switch {
	case v.IsMissing():
		return 0, false
	case v.numeric:
		return v.number, isFinite(v.number)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// Format is how a value is displayed.
type Format int

const (
	FormatText Format = iota
	FormatCount
	FormatMoney
)

// Display renders v. Rounding only happens here; the value itself is left
// untouched.
func (v Value) Display(format Format) string {
	switch {
	case v.missing:
		return Sentinel
	case !v.numeric:
		return v.text
	case !isFinite(v.number):
		return Sentinel
	}
	d := decimal.NewFromFloat(v.number)
	switch format {
	case FormatMoney:
		return d.StringFixed(2)
	case FormatCount:
		return d.Round(0).String()
	default:
		return d.String()
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
