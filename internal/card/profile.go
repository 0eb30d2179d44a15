package card

import (
	"fmt"

	"github.com/wonny/ledger/internal/contracts"
)

// PlaceholderLogo is shown for tickers without a known logo
const PlaceholderLogo = "https://upload.wikimedia.org/wikipedia/commons/a/ac/No_image_available.svg"

// logos maps tickers to logo URLs
var logos = map[string]string{
	"AAPL":   "https://upload.wikimedia.org/wikipedia/commons/f/fa/Apple_logo_black.svg",
	"MSFT":   "https://upload.wikimedia.org/wikipedia/commons/9/96/Microsoft_logo_%282012%29.svg",
	"META":   "https://upload.wikimedia.org/wikipedia/commons/6/6e/Meta_Platforms_Inc._logo.svg",
	"TCKR04": "https://upload.wikimedia.org/wikipedia/commons/4/4e/Visa_2021.svg",
	"TCKR05": "https://upload.wikimedia.org/wikipedia/commons/5/5c/Procter_and_gamble_logo.svg",
	"TCKR06": "https://upload.wikimedia.org/wikipedia/commons/b/bd/Tesla_Motors.svg",
	"TCKR07": "https://upload.wikimedia.org/wikipedia/commons/3/3f/Johnson_%26_Johnson_logo.svg",
	"TCKR08": "https://upload.wikimedia.org/wikipedia/commons/9/9c/Nvidia_logo.svg",
	"TCKR09": "https://upload.wikimedia.org/wikipedia/commons/0/08/Netflix_2015_N_logo.svg",
	"TCKR10": "https://upload.wikimedia.org/wikipedia/commons/3/33/Coca-Cola_logo.svg",
}

// LogoURL returns the logo for ticker or the placeholder
func LogoURL(ticker string) string {
	if url, ok := logos[ticker]; ok {
		return url
	}
	return PlaceholderLogo
}

// Tone is the color hint of a signed number
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// Profile is the header card of the selected company
type Profile struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	CEO      string `json:"ceo"`
	HQ       string `json:"hq"`
	Industry string `json:"industry"`
	Logo     string `json:"logo"`
	YoYLabel string `json:"yoyLabel"` // "2024: +12.3%"
	YoYTone  Tone   `json:"yoyTone"`
}

// NewProfile builds the profile card for c
func NewProfile(c *contracts.Company) Profile {
	return Profile{
		Ticker:   c.Ticker,
		Name:     c.Name,
		CEO:      c.CEO,
		HQ:       c.HQ,
		Industry: c.Industry,
		Logo:     LogoURL(c.Ticker),
		YoYLabel: "2024: " + FormatYoY(c.YoY2024),
		YoYTone:  yoyTone(c.YoY2024),
	}
}

// FormatYoY renders a yearly return with one decimal; positives carry "+"
func FormatYoY(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// 0은 하락색으로 표시
func yoyTone(v float64) Tone {
	if v > 0 {
		return TonePositive
	}
	return ToneNegative
}
