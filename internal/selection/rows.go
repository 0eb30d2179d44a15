package selection

import (
	"fmt"

	"github.com/wonny/ledger/internal/contracts"
)

// Row is one line of the company overlay table
type Row struct {
	Ticker   string  `json:"ticker"`
	Name     string  `json:"name"`
	Bear     float64 `json:"bear"`
	Base     float64 `json:"base"`
	Bull     float64 `json:"bull"`
	Avg      float64 `json:"avg"`
	AvgLabel string  `json:"avgLabel"` // 소수점 2자리 ("0.00" for empty scoreboard)
}

// ToRows projects a computed view into overlay rows
func ToRows(view []contracts.Company) []Row {
	rows := make([]Row, 0, len(view))
	for i := range view {
		c := &view[i]
		avg := AverageScore(c)
		rows = append(rows, Row{
			Ticker:   c.Ticker,
			Name:     c.Name,
			Bear:     c.BearValue(),
			Base:     c.BaseValue(),
			Bull:     c.BullValue(),
			Avg:      avg,
			AvgLabel: fmt.Sprintf("%.2f", avg),
		})
	}
	return rows
}
