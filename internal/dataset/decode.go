package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/ledger/internal/contracts"
)

// Format is the encoding of a company document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	ErrEmptyTicker     = errors.New("company without ticker")
	ErrDuplicateTicker = errors.New("duplicate ticker")
	ErrNotFound        = errors.New("company not found")
	ErrInvalidValue    = errors.New("non-finite number")
)

// FormatFor picks the format from a file name or URL path.
// Anything that is not .yaml/.yml is treated as JSON (data.json).
func FormatFor(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Decode parses a company document (a top-level list of companies)
func Decode(data []byte, format Format) ([]contracts.Company, error) {
	var companies []contracts.Company

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true) // 오타 필드는 즉시 실패
		if err := dec.Decode(&companies); err != nil {
			return nil, fmt.Errorf("decode yaml document: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields() // YAML과 동일하게 오타 필드 거부
		if err := dec.Decode(&companies); err != nil {
			return nil, fmt.Errorf("decode json document: %w", err)
		}
		if dec.More() {
			return nil, fmt.Errorf("decode json document: trailing data after company list")
		}
	}

	if err := Validate(companies); err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []contracts.Company{}
	}
	return companies, nil
}

// Validate checks the schema rules the dashboard depends on: tickers are
// present and unique, and every number is finite (YAML accepts .nan/.inf).
func Validate(companies []contracts.Company) error {
	seen := make(map[string]int, len(companies))
	for i, c := range companies {
		if strings.TrimSpace(c.Ticker) == "" {
			return fmt.Errorf("record %d: %w", i, ErrEmptyTicker)
		}
		if first, ok := seen[c.Ticker]; ok {
			return fmt.Errorf("%w %s (records %d and %d)", ErrDuplicateTicker, c.Ticker, first, i)
		}
		seen[c.Ticker] = i

		if field, ok := nonFinite(&c); ok {
			return fmt.Errorf("%s: %s: %w", c.Ticker, field, ErrInvalidValue)
		}
	}
	return nil
}

// nonFinite returns the first NaN or ±Inf field of c
func nonFinite(c *contracts.Company) (string, bool) {
	bad := func(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

	if bad(c.YoY2024) {
		return "yoy2024", true
	}
	if sc := c.Scenario; sc != nil {
		for _, f := range []struct {
			name string
			v    *float64
		}{{"scenario.bear", sc.Bear}, {"scenario.base", sc.Base}, {"scenario.bull", sc.Bull}} {
			if f.v != nil && bad(*f.v) {
				return f.name, true
			}
		}
	}
	for j, item := range c.Scoreboard {
		if bad(item.Value) {
			return fmt.Sprintf("scoreboard[%d].value", j), true
		}
	}
	return "", false
}
