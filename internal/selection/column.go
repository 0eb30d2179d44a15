package selection

import (
	"fmt"
	"strings"

	"github.com/wonny/ledger/internal/contracts"
)

// Column is a numeric column of the company overlay
type Column string

const (
	ColumnNone Column = ""
	ColumnBear Column = "bear"
	ColumnBase Column = "base"
	ColumnBull Column = "bull"
	ColumnAvg  Column = "avg"
)

// Columns lists the sortable/filterable columns in display order
var Columns = []Column{ColumnBear, ColumnBase, ColumnBull, ColumnAvg}

// ParseColumn parses a column name (case-insensitive). Empty input yields ColumnNone.
func ParseColumn(s string) (Column, error) {
	switch Column(strings.ToLower(strings.TrimSpace(s))) {
	case ColumnNone:
		return ColumnNone, nil
	case ColumnBear:
		return ColumnBear, nil
	case ColumnBase:
		return ColumnBase, nil
	case ColumnBull:
		return ColumnBull, nil
	case ColumnAvg, "average", "score":
		return ColumnAvg, nil
	}
	return ColumnNone, fmt.Errorf("unknown column %q (valid: bear, base, bull, avg)", s)
}

// Valid reports whether c is one of the four data columns
func (c Column) Valid() bool {
	switch c {
	case ColumnBear, ColumnBase, ColumnBull, ColumnAvg:
		return true
	}
	return false
}

// AverageScore is the mean scoreboard value, 0 for an empty scoreboard.
// Derived on demand, never stored on the record.
func AverageScore(c *contracts.Company) float64 {
	if len(c.Scoreboard) == 0 {
		return 0
	}

	sum := 0.0
	for _, item := range c.Scoreboard {
		sum += item.Value
	}
	return sum / float64(len(c.Scoreboard))
}

// Extract returns the value of column for c. Missing scenario fields read as 0.
func Extract(c *contracts.Company, column Column) float64 {
	switch column {
	case ColumnBear:
		return c.BearValue()
	case ColumnBase:
		return c.BaseValue()
	case ColumnBull:
		return c.BullValue()
	case ColumnAvg:
		return AverageScore(c)
	}
	return 0
}
