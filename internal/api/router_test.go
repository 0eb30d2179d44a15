package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ledger/internal/card"
	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/internal/overlay"
	"github.com/wonny/ledger/internal/selection"
	"github.com/wonny/ledger/pkg/config"
	"github.com/wonny/ledger/pkg/logger"
)

const testDocument = "../dataset/testdata/companies.json"

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            "development",
		Data:           config.DataConfig{Source: testDocument},
		RateLimit:      config.RateLimitConfig{RPS: 1000, Burst: 1000},
		PodcastURL:     "https://example.com/episode.mp3",
		MetricsEnabled: true,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (http.Handler, *dataset.Store) {
	t.Helper()

	log := logger.Nop()
	store := dataset.NewStore(log)
	refresher := dataset.NewRefresher(store, &dataset.FileSource{Path: cfg.Data.Source}, log)
	_, err := refresher.Refresh(context.Background(), false)
	require.NoError(t, err)

	hub := overlay.NewHub(store, log)
	refresher.OnReload(hub.Broadcast)

	return NewRouter(cfg, Deps{Store: store, Refresher: refresher, Overlay: hub}, log), store
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func rowTickers(rows []overlay.Row) []string {
	list := make([]string, 0, len(rows))
	for _, r := range rows {
		list = append(list, r.Ticker)
	}
	return list
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestListCompanies(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	tests := []struct {
		name   string
		query  string
		expect []string
	}{
		{"document order", "", []string{"AAPL", "MSFT", "TCKR06"}},
		{"avg desc", "?sort=avg&dir=desc", []string{"MSFT", "AAPL", "TCKR06"}},
		{"bull asc", "?sort=bull&dir=asc", []string{"AAPL", "MSFT", "TCKR06"}},
		{"sort defaults to desc", "?sort=bull", []string{"TCKR06", "MSFT", "AAPL"}},
		{"bear bound excludes all", "?bearMin=0", []string{"TCKR06"}},
		{"conjunctive", "?bullMin=26&avgMin=8", []string{"MSFT"}},
		{"junk bound ignored", "?baseMin=abc", []string{"AAPL", "MSFT", "TCKR06"}},
		{"unknown keys ignored", "?page=2", []string{"AAPL", "MSFT", "TCKR06"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/api/companies"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var resp struct {
				Count int           `json:"count"`
				Total int           `json:"total"`
				Rows  []overlay.Row `json:"rows"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.expect, rowTickers(resp.Rows))
			assert.Equal(t, len(tt.expect), resp.Count)
			assert.Equal(t, 3, resp.Total)
		})
	}
}

func TestListCompanies_RowFormat(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	rec := do(t, h, http.MethodGet, "/api/companies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Rows []overlay.Row `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 3)

	assert.Equal(t, "7.50", resp.Rows[0].AvgLabel)
	assert.Equal(t, "0.00", resp.Rows[2].AvgLabel)
	assert.Equal(t, 0.0, resp.Rows[2].Bear)
	assert.Contains(t, resp.Rows[2].Logo, "Tesla")
}

func TestListCompanies_BadSort(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/companies?sort=pe", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/companies?sort=bull&dir=up", "").Code)
}

func TestGetCompany(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	rec := do(t, h, http.MethodGet, "/api/companies/MSFT", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var c contracts.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, "Satya Nadella", c.CEO)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/companies/NOPE", "").Code)
}

func TestGetCard(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	rec := do(t, h, http.MethodGet, "/api/companies/AAPL/card?pick=bull&flip=score:Moat", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var c card.Card
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, card.PickBull, c.Scenario.Chosen)
	assert.Equal(t, card.ModeScores, c.Mode)
	require.Len(t, c.Scores, 2)
	assert.True(t, c.Scores[0].Flipped)
	assert.Equal(t, "https://example.com/episode.mp3", c.Podcast.URL)
	assert.Equal(t, "AAPL_Scorecard.pdf", c.ExportName)

	rec = do(t, h, http.MethodGet, "/api/companies/AAPL/card?mode=qa", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c = card.Card{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, card.ModeQA, c.Mode)
	assert.Len(t, c.QA, 1)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/companies/NOPE/card", "").Code)
}

func TestToggleSort(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	tests := []struct {
		name   string
		body   string
		code   int
		expect selection.SortState
	}{
		{"first click", `{"column":"bull"}`, http.StatusOK, selection.SortState{Active: "bull", Direction: selection.Desc}},
		{"second click flips", `{"column":"bull","active":"bull","direction":"desc"}`, http.StatusOK, selection.SortState{Active: "bull", Direction: selection.Asc}},
		{"switch column", `{"column":"avg","active":"bull","direction":"asc"}`, http.StatusOK, selection.SortState{Active: "avg", Direction: selection.Desc}},
		{"no column keeps state", `{"active":"base","direction":"asc"}`, http.StatusOK, selection.SortState{Active: "base", Direction: selection.Asc}},
		{"unknown column", `{"column":"pe"}`, http.StatusBadRequest, selection.SortState{}},
		{"bad body", `{`, http.StatusBadRequest, selection.SortState{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/sort/toggle", tt.body)
			require.Equal(t, tt.code, rec.Code)
			if tt.code != http.StatusOK {
				return
			}

			var state selection.SortState
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
			assert.Equal(t, tt.expect, state)
		})
	}
}

func TestReload(t *testing.T) {
	h, store := newTestRouter(t, testConfig())
	require.NoError(t, store.Replace(nil, "empty"))
	require.Equal(t, 0, store.Len())

	rec := do(t, h, http.MethodPost, "/api/reload", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, store.Len())

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/api/reload", "").Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{RPS: 0.001, Burst: 1}
	h, _ := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/companies", "").Code)

	rec := do(t, h, http.MethodGet, "/api/companies", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// health is not limited
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())
	do(t, h, http.MethodGet, "/api/companies", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_http_requests_total")

	cfg := testConfig()
	cfg.MetricsEnabled = false
	h, _ = newTestRouter(t, cfg)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics", "").Code)
}

func TestDashboard(t *testing.T) {
	h, _ := newTestRouter(t, testConfig())

	t.Run("first company selected by default", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/", "")
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)

		assert.Equal(t, "Apple Inc.", doc.Find("#profile-name").Text())
		assert.Equal(t, "2024: +30.1%", doc.Find("#yoy").Text())
		assert.True(t, doc.Find("#yoy").HasClass("positive"))
		assert.Equal(t, 0, doc.Find(".scenario-icon.highlighted").Length())
		assert.Equal(t, 2, doc.Find("#scores tr").Length())
		assert.Equal(t, 3, doc.Find("#overlay tbody tr").Length())
		assert.True(t, doc.Find(`#overlay tr[data-ticker="AAPL"]`).HasClass("selected"))
	})

	t.Run("ticker, pick and mode", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/?ticker=MSFT&pick=bear&mode=qa", "")
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)

		assert.Equal(t, "Microsoft Corporation", doc.Find("#profile-name").Text())
		icon := doc.Find(".scenario-icon.highlighted")
		require.Equal(t, 1, icon.Length())
		pick, _ := icon.Attr("data-pick")
		assert.Equal(t, "bear", pick)
		assert.Equal(t, 1, doc.Find("#qa").Length())
		assert.Equal(t, 0, doc.Find("#scores").Length())
	})

	t.Run("overlay filter and sort", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/?bullMin=26&sort=bull&dir=asc", "")
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)

		var got []string
		doc.Find("#overlay tbody tr").Each(func(_ int, s *goquery.Selection) {
			ticker, _ := s.Attr("data-ticker")
			got = append(got, ticker)
		})
		assert.Equal(t, []string{"MSFT", "TCKR06"}, got)
		assert.Equal(t, "2 / 3", doc.Find("#count").Text())

		// clicking the active column flips the direction
		href, _ := doc.Find(`a.sort[data-column="bull"]`).Attr("href")
		assert.Contains(t, href, "dir=desc")
	})

	t.Run("flipped rows show their back side", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/?flip=score:Moat", "")
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)

		moat := doc.Find(`#scores tr[data-id="score:Moat"]`)
		assert.True(t, moat.HasClass("flipped"))
		assert.Equal(t, "Ecosystem lock-in", moat.Find("a.flip").Text())

		growth := doc.Find(`#scores tr[data-id="score:Growth"]`)
		assert.False(t, growth.HasClass("flipped"))
		assert.Equal(t, "Growth", growth.Find("a.flip").Text())

		// clicking a flipped row turns it back; other links keep the flip
		href, _ := moat.Find("a.flip").Attr("href")
		assert.NotContains(t, href, "flip=")
		href, _ = growth.Find("a.flip").Attr("href")
		assert.Contains(t, href, "flip=score%3AGrowth")
		assert.Contains(t, href, "flip=score%3AMoat")
		href, _ = doc.Find("#mode-toggle").Attr("href")
		assert.Contains(t, href, "flip=score%3AMoat")
		href, _ = doc.Find(`#overlay tr[data-ticker="MSFT"] a`).Attr("href")
		assert.NotContains(t, href, "flip=")
	})

	t.Run("flipped question shows its answer", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/?mode=qa&flip=qa:1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		doc, err := goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)

		row := doc.Find(`#qa li[data-id="qa:1"]`)
		require.Equal(t, 1, row.Length())
		assert.True(t, row.HasClass("flipped"))
		assert.Equal(t, "Yes, quarterly.", row.Find(".answer").Text())
		assert.Equal(t, 0, row.Find(".question").Length())

		rec = do(t, h, http.MethodGet, "/?mode=qa", "")
		doc, err = goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)
		assert.Equal(t, "Q1: Does it pay a dividend?", doc.Find(`#qa li[data-id="qa:1"] .question`).Text())
		assert.Equal(t, 0, doc.Find("#qa .answer").Length())
	})

	t.Run("unknown ticker", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/?ticker=NOPE", "")
		require.Equal(t, http.StatusNotFound, rec.Code)

		doc, err := goquery.NewDocumentFromReader(rec.Body)
		require.NoError(t, err)
		assert.Contains(t, doc.Find("#message").Text(), "NOPE")
	})
}

func TestDashboard_Empty(t *testing.T) {
	h, store := newTestRouter(t, testConfig())
	require.NoError(t, store.Replace(nil, "empty"))

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "No companies loaded", doc.Find("#message").Text())
	assert.Equal(t, 0, doc.Find("#overlay tbody tr").Length())
}
