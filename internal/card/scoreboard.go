package card

import (
	"fmt"
	"sort"

	"github.com/wonny/ledger/internal/contracts"
)

// defaultDisplayValue replaces a zero metric on the score table
const defaultDisplayValue = 5

// Row id prefixes; both tables can share one FlipSet
const (
	scoreIDPrefix = "score:"
	qaIDPrefix    = "qa:"
)

// ScoreRow is one flippable row of the score table
type ScoreRow struct {
	ID       string  `json:"id"` // "score:Moat", stable across re-sorting
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Desc     string  `json:"desc"`
	BarWidth string  `json:"barWidth"` // "80%"
	BarColor string  `json:"barColor"` // "hsl(96,80%,50%)"
	Flipped  bool    `json:"flipped"`
}

// QARow is one flippable question
type QARow struct {
	ID       string `json:"id"`    // "qa:1"
	Label    string `json:"label"` // "Q1:"
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Flipped  bool   `json:"flipped"`
}

// NewScoreRows sorts the scoreboard by value (descending, stable) and
// computes bar geometry on a 0-10 scale (width val/10, hue 0-120).
// The document order is left untouched.
func NewScoreRows(items []contracts.ScoreItem, flips *FlipSet) []ScoreRow {
	ids := scoreIDs(items)

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return items[order[a]].Value > items[order[b]].Value
	})

	rows := make([]ScoreRow, 0, len(items))
	for _, i := range order {
		item := items[i]
		val := item.Value
		if val == 0 {
			val = defaultDisplayValue
		}
		rows = append(rows, ScoreRow{
			ID:       ids[i],
			Name:     item.Name,
			Value:    val,
			Desc:     item.Desc,
			BarWidth: fmt.Sprintf("%g%%", val*10),
			BarColor: fmt.Sprintf("hsl(%g,80%%,50%%)", val*12),
			Flipped:  flips.Has(ids[i]),
		})
	}
	return rows
}

// NewQARows numbers the Q&A list
func NewQARows(items []contracts.QA, flips *FlipSet) []QARow {
	rows := make([]QARow, 0, len(items))
	for i, item := range items {
		id := fmt.Sprintf("%s%d", qaIDPrefix, i+1)
		rows = append(rows, QARow{
			ID:       id,
			Label:    fmt.Sprintf("Q%d:", i+1),
			Question: item.Q,
			Answer:   item.A,
			Flipped:  flips.Has(id),
		})
	}
	return rows
}

// scoreIDs derives row ids from metric names; repeated names get a "#n" suffix
func scoreIDs(items []contracts.ScoreItem) []string {
	seen := make(map[string]int, len(items))
	ids := make([]string, len(items))
	for i, item := range items {
		seen[item.Name]++
		if n := seen[item.Name]; n > 1 {
			ids[i] = fmt.Sprintf("%s%s#%d", scoreIDPrefix, item.Name, n)
		} else {
			ids[i] = scoreIDPrefix + item.Name
		}
	}
	return ids
}
