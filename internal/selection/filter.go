package selection

import (
	"math"
	"strconv"
	"strings"

	"github.com/wonny/ledger/internal/contracts"
)

// FilterCriteria holds the four optional lower bounds of the overlay.
// A nil bound means "no constraint".
type FilterCriteria struct {
	BearMin *float64 `json:"bearMin,omitempty"`
	BaseMin *float64 `json:"baseMin,omitempty"`
	BullMin *float64 `json:"bullMin,omitempty"`
	AvgMin  *float64 `json:"avgMin,omitempty"`
}

// ParseBound normalizes user-entered threshold text.
// Empty, non-numeric and NaN input all mean "no constraint".
func ParseBound(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Bound returns the bound configured for column
func (f FilterCriteria) Bound(column Column) *float64 {
	switch column {
	case ColumnBear:
		return f.BearMin
	case ColumnBase:
		return f.BaseMin
	case ColumnBull:
		return f.BullMin
	case ColumnAvg:
		return f.AvgMin
	}
	return nil
}

// WithBound returns a copy of f with column's bound replaced
func (f FilterCriteria) WithBound(column Column, bound *float64) FilterCriteria {
	switch column {
	case ColumnBear:
		f.BearMin = bound
	case ColumnBase:
		f.BaseMin = bound
	case ColumnBull:
		f.BullMin = bound
	case ColumnAvg:
		f.AvgMin = bound
	}
	return f
}

// Active returns the columns that currently constrain the view
func (f FilterCriteria) Active() []Column {
	active := make([]Column, 0, len(Columns))
	for _, col := range Columns {
		if f.Bound(col) != nil {
			active = append(active, col)
		}
	}
	return active
}

// Matches reports whether c passes every active bound (conjunctive, >=)
func (f FilterCriteria) Matches(c *contracts.Company) bool {
	for _, col := range Columns {
		bound := f.Bound(col)
		if bound == nil {
			continue
		}
		if Extract(c, col) < *bound {
			return false
		}
	}
	return true
}
