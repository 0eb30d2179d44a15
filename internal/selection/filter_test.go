package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ledger/internal/contracts"
)

func TestParseBound(t *testing.T) {
	tests := []struct {
		input string
		want  *float64
	}{
		{"", nil},
		{"   ", nil},
		{"abc", nil},
		{"NaN", nil},
		{"5", contracts.Float(5)},
		{" -2.5 ", contracts.Float(-2.5)},
		{"0", contracts.Float(0)},
		{"1e1", contracts.Float(10)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseBound(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestFilterCriteria_WithBoundAndActive(t *testing.T) {
	var f FilterCriteria
	assert.Empty(t, f.Active())

	f = f.WithBound(ColumnBull, contracts.Float(10)).WithBound(ColumnAvg, contracts.Float(3))
	assert.Equal(t, []Column{ColumnBull, ColumnAvg}, f.Active())
	assert.Equal(t, 10.0, *f.Bound(ColumnBull))

	f = f.WithBound(ColumnBull, nil)
	assert.Equal(t, []Column{ColumnAvg}, f.Active())
	assert.Nil(t, f.Bound(ColumnNone))
}

func TestFilterCriteria_Matches(t *testing.T) {
	c := company("A", 5, 10, 20, 8, 4)

	assert.True(t, FilterCriteria{}.Matches(&c))
	assert.True(t, FilterCriteria{BearMin: contracts.Float(5)}.Matches(&c))
	assert.False(t, FilterCriteria{BearMin: contracts.Float(5.01)}.Matches(&c))
	assert.True(t, FilterCriteria{AvgMin: contracts.Float(6)}.Matches(&c))
	assert.False(t, FilterCriteria{BaseMin: contracts.Float(1), AvgMin: contracts.Float(7)}.Matches(&c))
}
