package card

import "github.com/wonny/ledger/internal/contracts"

// Mode selects the right column of the card
type Mode string

const (
	ModeScores Mode = "scores"
	ModeQA     Mode = "qa"
)

// ParseMode normalizes a mode; anything but "qa" is the score table
func ParseMode(s string) Mode {
	if Mode(s) == ModeQA {
		return ModeQA
	}
	return ModeScores
}

// Options are the per-viewer UI choices applied to a card
type Options struct {
	Pick       string
	Mode       Mode
	ScoreFlips *FlipSet
	QAFlips    *FlipSet
	PodcastURL string
}

// Card is the full scorecard of one company
// ⭐ SSOT: 스코어카드 뷰모델은 여기서만 조립
type Card struct {
	Profile    Profile      `json:"profile"`
	Scenario   ScenarioCard `json:"scenario"`
	Mode       Mode         `json:"mode"`
	Scores     []ScoreRow   `json:"scores,omitempty"`
	QA         []QARow      `json:"qa,omitempty"`
	Ticker     string       `json:"tickerText"`
	Podcast    Podcast      `json:"podcast"`
	ExportName string       `json:"exportName"`
	ShareText  string       `json:"shareText"`
}

// Build assembles the card for c. Only the active mode's table is filled.
func Build(c *contracts.Company, opts Options) Card {
	mode := opts.Mode
	if mode != ModeQA {
		mode = ModeScores
	}

	card := Card{
		Profile:    NewProfile(c),
		Scenario:   NewScenarioCard(c, opts.Pick),
		Mode:       mode,
		Ticker:     TickerText(c.Facts),
		Podcast:    NewPodcast(opts.PodcastURL),
		ExportName: ExportFileName(c.Ticker),
		ShareText:  ShareText(c.Ticker),
	}

	if mode == ModeQA {
		card.QA = NewQARows(c.QA, opts.QAFlips)
	} else {
		card.Scores = NewScoreRows(c.Scoreboard, opts.ScoreFlips)
	}

	return card
}
