package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ledger/internal/selection"
)

func TestViewQuery_Decode(t *testing.T) {
	values, err := url.ParseQuery("bearMin=-5&baseMin=&bullMin=x&avgMin=7.5&sort=Average&dir=ASC&extra=1")
	require.NoError(t, err)

	var q ViewQuery
	require.NoError(t, queryDecoder.Decode(&q, values))

	criteria := q.Criteria()
	require.NotNil(t, criteria.BearMin)
	assert.Equal(t, -5.0, *criteria.BearMin)
	assert.Nil(t, criteria.BaseMin)
	assert.Nil(t, criteria.BullMin)
	require.NotNil(t, criteria.AvgMin)
	assert.Equal(t, 7.5, *criteria.AvgMin)

	spec, err := q.SortSpec()
	require.NoError(t, err)
	assert.Equal(t, &selection.SortSpec{Column: selection.ColumnAvg, Direction: selection.Asc}, spec)
}

func TestViewQuery_NoSort(t *testing.T) {
	spec, err := ViewQuery{Dir: "asc"}.SortSpec()
	require.NoError(t, err)
	assert.Nil(t, spec)

	_, err = ViewQuery{Sort: "bull", Dir: "sideways"}.SortSpec()
	assert.Error(t, err)
}

func TestDashboardPage_Link(t *testing.T) {
	page := dashboardPage{
		Query:    DashboardQuery{Mode: "qa", BullMin: "10", Sort: "bull", Dir: "desc"},
		Selected: "AAPL",
	}

	link := string(page.Link("ticker", "MSFT", "mode", ""))
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "MSFT", u.Query().Get("ticker"))
	assert.Empty(t, u.Query().Get("mode"), "selecting a company resets the card mode")
	assert.Equal(t, "10", u.Query().Get("bullMin"))

	sortLink, err := url.Parse(string(page.SortLink(selection.ColumnBull)))
	require.NoError(t, err)
	assert.Equal(t, "asc", sortLink.Query().Get("dir"))

	sortLink, err = url.Parse(string(page.SortLink(selection.ColumnBear)))
	require.NoError(t, err)
	assert.Equal(t, "bear", sortLink.Query().Get("sort"))
	assert.Equal(t, "desc", sortLink.Query().Get("dir"))
}
