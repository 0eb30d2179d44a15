package handlers

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/wonny/ledger/internal/card"
	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/internal/metrics"
	"github.com/wonny/ledger/internal/overlay"
	"github.com/wonny/ledger/internal/selection"
	"github.com/wonny/ledger/pkg/logger"
)

//go:embed templates/dashboard.html
var dashboardHTML string

var dashboardTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
}).Parse(dashboardHTML))

// DashboardHandler renders the server-side scorecard page
type DashboardHandler struct {
	store      *dataset.Store
	podcastURL string
	logger     *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(store *dataset.Store, podcastURL string, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:      store,
		podcastURL: podcastURL,
		logger:     log,
	}
}

// DashboardQuery is the page state carried in the query string
type DashboardQuery struct {
	Ticker  string `schema:"ticker"`
	Pick    string `schema:"pick"`
	Mode    string `schema:"mode"`
	BearMin string `schema:"bearMin"`
	BaseMin string `schema:"baseMin"`
	BullMin string `schema:"bullMin"`
	AvgMin  string `schema:"avgMin"`
	Sort    string `schema:"sort"`
	Dir     string `schema:"dir"`

	Flip []string `schema:"flip"` // 뒤집힌 카드 행 id
}

// View returns the overlay part of the query
func (q DashboardQuery) View() ViewQuery {
	return ViewQuery{
		BearMin: q.BearMin,
		BaseMin: q.BaseMin,
		BullMin: q.BullMin,
		AvgMin:  q.AvgMin,
		Sort:    q.Sort,
		Dir:     q.Dir,
	}
}

type dashboardPage struct {
	Query    DashboardQuery
	Columns  []selection.Column
	Rows     []overlay.Row
	Total    int
	Card     *card.Card
	Flips    *card.FlipSet
	Selected string
	Message  string
}

// values encodes the current page state
func (p dashboardPage) values() url.Values {
	v := url.Values{}
	set := func(k, val string) {
		if val != "" {
			v.Set(k, val)
		}
	}
	set("ticker", p.Selected)
	set("pick", p.Query.Pick)
	set("mode", p.Query.Mode)
	set("bearMin", p.Query.BearMin)
	set("baseMin", p.Query.BaseMin)
	set("bullMin", p.Query.BullMin)
	set("avgMin", p.Query.AvgMin)
	set("sort", p.Query.Sort)
	set("dir", p.Query.Dir)
	for _, id := range p.Flips.IDs() {
		v.Add("flip", id)
	}
	return v
}

// Link keeps the page state and swaps the given keys; an empty value drops the key
func (p dashboardPage) Link(pairs ...string) template.URL {
	v := p.values()
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Del(pairs[i])
		if pairs[i+1] != "" {
			v.Set(pairs[i], pairs[i+1])
		}
	}
	return template.URL("/?" + v.Encode())
}

// FlipLink turns one card row over
func (p dashboardPage) FlipLink(id string) template.URL {
	flips := card.NewFlipSet(p.Flips.IDs()...)
	flips.Toggle(id)

	v := p.values()
	v.Del("flip")
	for _, f := range flips.IDs() {
		v.Add("flip", f)
	}
	return template.URL("/?" + v.Encode())
}

// SortLink applies a header click on column to the current sort
func (p dashboardPage) SortLink(column selection.Column) template.URL {
	active, _ := selection.ParseColumn(p.Query.Sort)
	dir, _ := selection.ParseDirection(p.Query.Dir)
	next := selection.ToggleSort(selection.SortState{Active: active, Direction: dir}, column)
	return p.Link("sort", string(next.Active), "dir", string(next.Direction))
}

// Render serves the dashboard
// GET /?ticker=&pick=&mode=&flip=&bearMin=...
func (h *DashboardHandler) Render(w http.ResponseWriter, r *http.Request) {
	var q DashboardQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		http.Error(w, "Invalid query parameters", http.StatusBadRequest)
		return
	}

	spec, err := q.View().SortSpec()
	if err != nil {
		// 잘못된 정렬 값은 문서 순서로
		q.Sort, q.Dir = "", ""
		spec = nil
	}

	companies := h.store.All()
	view := selection.ComputeView(companies, q.View().Criteria(), spec)
	metrics.ObserveView("dashboard", len(view))

	page := dashboardPage{
		Query:   q,
		Columns: selection.Columns,
		Rows:    overlay.NewRows(view),
		Total:   len(companies),
		Flips:   card.NewFlipSet(q.Flip...),
	}

	status := http.StatusOK
	selected, ok := h.selected(q.Ticker)
	switch {
	case ok:
		page.Selected = selected.Ticker
		c := card.Build(&selected, card.Options{
			Pick:       q.Pick,
			Mode:       card.ParseMode(q.Mode),
			ScoreFlips: page.Flips,
			QAFlips:    page.Flips,
			PodcastURL: h.podcastURL,
		})
		page.Card = &c
	case q.Ticker != "":
		status = http.StatusNotFound
		page.Message = "Unknown ticker " + q.Ticker
	default:
		page.Message = "No companies loaded"
	}

	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, page); err != nil {
		h.logger.WithError(err).Error("Failed to render dashboard")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// selected resolves the ticker; an empty ticker selects the first company
func (h *DashboardHandler) selected(ticker string) (contracts.Company, bool) {
	if ticker == "" {
		return h.store.First()
	}
	c, err := h.store.Get(ticker)
	return c, err == nil
}
