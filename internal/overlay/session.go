package overlay

import (
	"fmt"

	"github.com/wonny/ledger/internal/card"
	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/internal/selection"
)

// Message types sent by the client
const (
	MsgOpen    = "open"
	MsgClose   = "close"
	MsgFilter  = "filter"
	MsgSort    = "sort"
	MsgSelect  = "select"
	MsgMode    = "mode"
	MsgFlip    = "flip"
	MsgRefresh = "refresh"
)

// Message types sent by the server
const (
	MsgView  = "view"
	MsgError = "error"
)

// Inbound is one client message. Value is raw text; the session normalizes it.
// For "flip" Value is a card row id ("score:Moat", "qa:2").
type Inbound struct {
	Type   string `json:"type"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Ticker string `json:"ticker,omitempty"`
}

// Outbound is the server reply
type Outbound struct {
	Type     string                   `json:"type"`
	Session  string                   `json:"session,omitempty"`
	Open     bool                     `json:"open"`
	Mode     card.Mode                `json:"mode,omitempty"`
	Selected string                   `json:"selected,omitempty"`
	Flipped  []string                 `json:"flipped"`
	Criteria selection.FilterCriteria `json:"criteria"`
	Sort     selection.SortState      `json:"sort"`
	Rows     []Row                    `json:"rows"`
	Message  string                   `json:"message,omitempty"`
}

// Row is an overlay row with its logo
type Row struct {
	selection.Row
	Logo string `json:"logo"`
}

// Session is the overlay state of one viewer
// ⭐ SSOT: 오버레이 UI 상태 전이는 여기서만
//
// Every input change is followed by a full recompute of the view; nothing
// derived is kept between messages.
type Session struct {
	ID       string
	Criteria selection.FilterCriteria
	Sort     selection.SortState
	Selected string
	Open     bool
	Mode     card.Mode
	Flips    *card.FlipSet // 선택된 카드의 뒤집힌 행
}

// NewSession creates a closed session with no filters, no sort, score mode
func NewSession(id, selected string) *Session {
	return &Session{ID: id, Selected: selected, Mode: card.ModeScores, Flips: card.NewFlipSet()}
}

// SetBound updates one filter from user text
func (s *Session) SetBound(column selection.Column, text string) error {
	if !column.Valid() {
		return fmt.Errorf("unknown filter column %q", column)
	}
	s.Criteria = s.Criteria.WithBound(column, selection.ParseBound(text))
	return nil
}

// ToggleSort applies a header click
func (s *Session) ToggleSort(column selection.Column) error {
	if !column.Valid() {
		return fmt.Errorf("unknown sort column %q", column)
	}
	s.Sort = selection.ToggleSort(s.Sort, column)
	return nil
}

// Select picks a company: the overlay closes and the card returns to
// score mode with every row face up
func (s *Session) Select(ticker string, exists func(string) bool) error {
	if !exists(ticker) {
		return fmt.Errorf("unknown ticker %q", ticker)
	}
	s.reset(ticker)
	s.Open = false
	return nil
}

// Resync drops a selection that no longer exists, falling back to first
// (empty when the store is empty). Reports whether the selection changed.
func (s *Session) Resync(exists func(string) bool, first string) bool {
	if s.Selected != "" && exists(s.Selected) {
		return false
	}
	if s.Selected == first {
		return false
	}
	s.reset(first)
	return true
}

// ToggleFlip turns one card row over
func (s *Session) ToggleFlip(id string) error {
	if id == "" {
		return fmt.Errorf("missing row id")
	}
	if s.Flips == nil {
		s.Flips = card.NewFlipSet()
	}
	s.Flips.Toggle(id)
	return nil
}

func (s *Session) reset(ticker string) {
	s.Selected = ticker
	s.Mode = card.ModeScores
	if s.Flips == nil {
		s.Flips = card.NewFlipSet()
	}
	s.Flips.Clear()
}

// ToggleMode switches between the score table and Q&A
func (s *Session) ToggleMode() {
	if s.Mode == card.ModeQA {
		s.Mode = card.ModeScores
		return
	}
	s.Mode = card.ModeQA
}

// Apply handles one inbound message
func (s *Session) Apply(msg Inbound, exists func(string) bool) error {
	switch msg.Type {
	case MsgOpen:
		s.Open = true
	case MsgClose:
		s.Open = false
	case MsgFilter:
		col, err := selection.ParseColumn(msg.Column)
		if err != nil {
			return err
		}
		return s.SetBound(col, msg.Value)
	case MsgSort:
		col, err := selection.ParseColumn(msg.Column)
		if err != nil {
			return err
		}
		return s.ToggleSort(col)
	case MsgSelect:
		return s.Select(msg.Ticker, exists)
	case MsgMode:
		s.ToggleMode()
	case MsgFlip:
		return s.ToggleFlip(msg.Value)
	case MsgRefresh:
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

// View recomputes the overlay rows for companies
func (s *Session) View(companies []contracts.Company) Outbound {
	view := selection.ComputeView(companies, s.Criteria, s.Sort.Spec())

	return Outbound{
		Type:     MsgView,
		Session:  s.ID,
		Open:     s.Open,
		Mode:     s.Mode,
		Selected: s.Selected,
		Flipped:  s.Flips.IDs(),
		Criteria: s.Criteria,
		Sort:     s.Sort,
		Rows:     NewRows(view),
	}
}

// NewRows projects a computed view into overlay rows with logos
func NewRows(view []contracts.Company) []Row {
	rows := make([]Row, 0, len(view))
	for _, r := range selection.ToRows(view) {
		rows = append(rows, Row{Row: r, Logo: card.LogoURL(r.Ticker)})
	}
	return rows
}
