package card

import (
	"fmt"
	"strconv"

	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/internal/selection"
)

// Pick is the highlighted scenario of the annual card
type Pick string

const (
	PickBear Pick = "bear"
	PickBase Pick = "base"
	PickBull Pick = "bull"
)

// ParsePick normalizes a pick; anything unknown falls back to base
func ParsePick(s string) Pick {
	switch Pick(s) {
	case PickBear, PickBull:
		return Pick(s)
	}
	return PickBase
}

// ScenarioIcon is one of the three clickable scenario circles
type ScenarioIcon struct {
	Pick        Pick    `json:"pick"`
	Emoji       string  `json:"emoji"`
	Value       float64 `json:"value"`
	Label       string  `json:"label"` // "+20%" / "-5%" / "0%"
	Highlighted bool    `json:"highlighted"`
}

// ScenarioCard is the bear/base/bull block with the bullets of the chosen scenario
type ScenarioCard struct {
	Icons   []ScenarioIcon `json:"icons"`
	Chosen  Pick           `json:"chosen"`
	Bullets []string       `json:"bullets"`
}

var scenarioEmoji = map[Pick]string{
	PickBear: "🐻",
	PickBase: "O",
	PickBull: "🚀",
}

// NewScenarioCard builds the annual card. An empty pick shows base bullets
// with no icon highlighted.
func NewScenarioCard(c *contracts.Company, pick string) ScenarioCard {
	chosen := ParsePick(pick)

	icons := make([]ScenarioIcon, 0, 3)
	for _, p := range []Pick{PickBear, PickBase, PickBull} {
		v := selection.Extract(c, selection.Column(p))
		icons = append(icons, ScenarioIcon{
			Pick:        p,
			Emoji:       scenarioEmoji[p],
			Value:       v,
			Label:       FormatScenario(v),
			Highlighted: pick != "" && p == chosen,
		})
	}

	return ScenarioCard{
		Icons:   icons,
		Chosen:  chosen,
		Bullets: bullets(c.Scenario, chosen),
	}
}

// FormatScenario renders a projection as "+N%" for positives, "N%" otherwise
func FormatScenario(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64) + "%"
	if v > 0 {
		return "+" + s
	}
	return s
}

func bullets(sc *contracts.Scenario, pick Pick) []string {
	var lines []string
	if sc != nil {
		switch pick {
		case PickBear:
			lines = sc.BearBullets
		case PickBull:
			lines = sc.BullBullets
		default:
			lines = sc.BaseBullets
		}
	}
	if len(lines) > 0 {
		return append([]string(nil), lines...)
	}
	return defaultBullets(pick)
}

func defaultBullets(pick Pick) []string {
	prefix := map[Pick]string{PickBear: "Bear", PickBase: "Base", PickBull: "Bull"}[pick]
	out := make([]string, 4)
	for i := range out {
		out[i] = fmt.Sprintf("%s #%d", prefix, i+1)
	}
	return out
}
