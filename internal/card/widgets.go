package card

import "strings"

const (
	factSeparator = " *** "

	// DefaultExportName is used when no company is selected
	DefaultExportName = "Ledger_Scorecard.pdf"
)

// PlaybackSpeeds are the podcast speed buttons
var PlaybackSpeeds = []float64{1, 1.5, 2}

// Podcast describes the audio widget
type Podcast struct {
	URL    string    `json:"url"`
	Speeds []float64 `json:"speeds"`
}

// NewPodcast returns the widget for url
func NewPodcast(url string) Podcast {
	return Podcast{URL: url, Speeds: append([]float64(nil), PlaybackSpeeds...)}
}

// ValidSpeed reports whether speed is one of the offered playback rates
func ValidSpeed(speed float64) bool {
	for _, s := range PlaybackSpeeds {
		if s == speed {
			return true
		}
	}
	return false
}

// TickerText builds the scrolling fact banner: the facts joined and repeated
// twice so the marquee loops without a gap.
func TickerText(facts []string) string {
	joined := strings.Join(facts, factSeparator)
	return joined + factSeparator + joined
}

// ExportFileName is the PDF name offered by the download button
func ExportFileName(ticker string) string {
	if ticker == "" {
		return DefaultExportName
	}
	return ticker + "_Scorecard.pdf"
}

// ShareText is the text of the share action
func ShareText(ticker string) string {
	return "Link => " + ticker
}
