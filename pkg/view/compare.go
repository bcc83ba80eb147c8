package view

import (
	"cmp"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// comparer orders values for a column sort. It is not safe for concurrent
// use because the collator keeps internal buffers.
type comparer struct {
	collator *collate.Collator
}

func newComparer() *comparer {
	return &comparer{collator: collate.New(language.Und)}
}

// compare orders a and b. Missing values sort after present ones whatever
// the direction; only the numeric and text comparisons are reversed.
func (c *comparer) compare(a, b Value, ascending bool) int {
	switch {
	case a.IsMissing() && b.IsMissing():
		return 0
	case a.IsMissing():
		return 1
	case b.IsMissing():
		return -1
	}

	var result int
	numA, okA := a.Float()
	numB, okB := b.Float()
	if okA && okB {
		result = cmp.Compare(numA, numB)
	} else {
		result = c.collator.CompareString(a.Display(FormatText), b.Display(FormatText))
	}

	if !ascending {
		result = -result
	}
	return result
}
