package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ledger/internal/contracts"
)

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name    string
		company contracts.Company
		want    float64
	}{
		{"empty scoreboard", contracts.Company{}, 0},
		{"single metric", company("X", 0, 0, 0, 7), 7},
		{"mean of values", company("X", 0, 0, 0, 8, 4), 6},
		{"fractional mean", company("X", 0, 0, 0, 1, 2), 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AverageScore(&tt.company))
		})
	}
}

func TestExtract(t *testing.T) {
	c := company("A", 5, 10, 20, 8, 4)

	assert.Equal(t, 5.0, Extract(&c, ColumnBear))
	assert.Equal(t, 10.0, Extract(&c, ColumnBase))
	assert.Equal(t, 20.0, Extract(&c, ColumnBull))
	assert.Equal(t, 6.0, Extract(&c, ColumnAvg))
	assert.Equal(t, 0.0, Extract(&c, ColumnNone))
}

func TestParseColumn(t *testing.T) {
	tests := []struct {
		input   string
		want    Column
		wantErr bool
	}{
		{"bear", ColumnBear, false},
		{"BASE", ColumnBase, false},
		{" bull ", ColumnBull, false},
		{"avg", ColumnAvg, false},
		{"average", ColumnAvg, false},
		{"", ColumnNone, false},
		{"volume", ColumnNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColumn(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
