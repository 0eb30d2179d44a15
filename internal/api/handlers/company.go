package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/ledger/internal/card"
	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/internal/metrics"
	"github.com/wonny/ledger/internal/overlay"
	"github.com/wonny/ledger/internal/selection"
	"github.com/wonny/ledger/pkg/logger"
)

// CompanyHandler serves the company list, single records and cards
// ⭐ SSOT: 회사 조회 API 핸들러는 이 구조체에서만
type CompanyHandler struct {
	store      *dataset.Store
	podcastURL string
	logger     *logger.Logger
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(store *dataset.Store, podcastURL string, log *logger.Logger) *CompanyHandler {
	return &CompanyHandler{
		store:      store,
		podcastURL: podcastURL,
		logger:     log,
	}
}

// ViewQuery is the overlay state carried in the query string.
// Bounds stay text so that junk input clears a filter instead of failing.
type ViewQuery struct {
	BearMin string `schema:"bearMin"`
	BaseMin string `schema:"baseMin"`
	BullMin string `schema:"bullMin"`
	AvgMin  string `schema:"avgMin"`
	Sort    string `schema:"sort"`
	Dir     string `schema:"dir"`
}

// Criteria converts the bounds
func (q ViewQuery) Criteria() selection.FilterCriteria {
	return selection.FilterCriteria{
		BearMin: selection.ParseBound(q.BearMin),
		BaseMin: selection.ParseBound(q.BaseMin),
		BullMin: selection.ParseBound(q.BullMin),
		AvgMin:  selection.ParseBound(q.AvgMin),
	}
}

// SortSpec converts sort/dir; no sort column means document order
func (q ViewQuery) SortSpec() (*selection.SortSpec, error) {
	col, err := selection.ParseColumn(q.Sort)
	if err != nil {
		return nil, err
	}
	dir, err := selection.ParseDirection(q.Dir)
	if err != nil {
		return nil, err
	}
	if col == selection.ColumnNone {
		return nil, nil
	}
	return &selection.SortSpec{Column: col, Direction: dir}, nil
}

// ListResponse is the overlay table
type ListResponse struct {
	Count    int                      `json:"count"`
	Total    int                      `json:"total"`
	Criteria selection.FilterCriteria `json:"criteria"`
	Sort     *selection.SortSpec      `json:"sort,omitempty"`
	Rows     []overlay.Row            `json:"rows"`
}

// List returns the filtered and sorted company table
// GET /api/companies?bearMin=&baseMin=&bullMin=&avgMin=&sort=&dir=
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	var q ViewQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	spec, err := q.SortSpec()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	companies := h.store.All()
	criteria := q.Criteria()
	view := selection.ComputeView(companies, criteria, spec)
	metrics.ObserveView("http", len(view))

	respondJSON(w, http.StatusOK, ListResponse{
		Count:    len(view),
		Total:    len(companies),
		Criteria: criteria,
		Sort:     spec,
		Rows:     overlay.NewRows(view),
	})
}

// Get returns the raw record of one company
// GET /api/companies/{ticker}
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	company, err := h.store.Get(ticker)
	if err != nil {
		h.respondLookupError(w, ticker, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// CardQuery selects the per-viewer card options
type CardQuery struct {
	Pick string   `schema:"pick"`
	Mode string   `schema:"mode"`
	Flip []string `schema:"flip"` // 뒤집힌 행 id (반복 가능)
}

// Card returns the scorecard of one company
// GET /api/companies/{ticker}/card?pick=&mode=&flip=
func (h *CompanyHandler) Card(w http.ResponseWriter, r *http.Request) {
	ticker := mux.Vars(r)["ticker"]

	var q CardQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	company, err := h.store.Get(ticker)
	if err != nil {
		h.respondLookupError(w, ticker, err)
		return
	}

	flips := card.NewFlipSet(q.Flip...)
	c := card.Build(&company, card.Options{
		Pick:       q.Pick,
		Mode:       card.ParseMode(q.Mode),
		ScoreFlips: flips,
		QAFlips:    flips,
		PodcastURL: h.podcastURL,
	})

	respondJSON(w, http.StatusOK, c)
}

func (h *CompanyHandler) respondLookupError(w http.ResponseWriter, ticker string, err error) {
	if errors.Is(err, dataset.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Company not found: "+ticker)
		return
	}
	h.logger.WithError(err).WithField("ticker", ticker).Error("Failed to get company")
	respondError(w, http.StatusInternalServerError, "Failed to retrieve company")
}
