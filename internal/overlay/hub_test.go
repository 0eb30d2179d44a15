package overlay

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/ledger/internal/dataset"
	"github.com/wonny/ledger/pkg/logger"
)

func newTestHub(t *testing.T) (*Hub, *dataset.Store, *websocket.Conn) {
	t.Helper()

	store := dataset.NewStore(logger.Nop())
	require.NoError(t, store.Replace(testCompanies(), "test"))

	hub := NewHub(store, logger.Nop())
	srv := httptest.NewServer(hub)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return hub, store, conn
}

func readOutbound(t *testing.T, conn *websocket.Conn) Outbound {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var out Outbound
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func TestHub_InitialView(t *testing.T) {
	hub, _, conn := newTestHub(t)

	out := readOutbound(t, conn)
	assert.Equal(t, MsgView, out.Type)
	assert.NotEmpty(t, out.Session)
	assert.Equal(t, "AAPL", out.Selected, "first company is the default selection")
	assert.Len(t, out.Rows, 3)

	assert.Eventually(t, func() bool { return hub.Sessions() == 1 }, time.Second, 10*time.Millisecond)
}

func TestHub_FilterAndSort(t *testing.T) {
	_, _, conn := newTestHub(t)
	first := readOutbound(t, conn)

	require.NoError(t, conn.WriteJSON(Inbound{Type: MsgFilter, Column: "bull", Value: "25"}))
	out := readOutbound(t, conn)
	assert.Equal(t, first.Session, out.Session)
	assert.Equal(t, []string{"MSFT", "TCKR06"}, tickers(out))

	require.NoError(t, conn.WriteJSON(Inbound{Type: MsgSort, Column: "bull"}))
	out = readOutbound(t, conn)
	assert.Equal(t, []string{"TCKR06", "MSFT"}, tickers(out))

	require.NoError(t, conn.WriteJSON(Inbound{Type: MsgSort, Column: "bull"}))
	out = readOutbound(t, conn)
	assert.Equal(t, []string{"MSFT", "TCKR06"}, tickers(out))
}

func TestHub_Errors(t *testing.T) {
	_, _, conn := newTestHub(t)
	readOutbound(t, conn)

	require.NoError(t, conn.WriteJSON(Inbound{Type: MsgSelect, Ticker: "NOPE"}))
	out := readOutbound(t, conn)
	assert.Equal(t, MsgError, out.Type)
	assert.Contains(t, out.Message, "NOPE")
}

func TestHub_BroadcastAfterReload(t *testing.T) {
	hub, store, conn := newTestHub(t)
	readOutbound(t, conn)

	require.NoError(t, store.Replace(testCompanies()[:1], "test"))
	hub.Broadcast()

	out := readOutbound(t, conn)
	assert.Equal(t, []string{"AAPL"}, tickers(out))
}

func TestHub_BroadcastResetsRemovedSelection(t *testing.T) {
	hub, store, conn := newTestHub(t)
	readOutbound(t, conn)

	require.NoError(t, conn.WriteJSON(Inbound{Type: MsgFlip, Value: "score:Moat"}))
	out := readOutbound(t, conn)
	require.Equal(t, "AAPL", out.Selected)
	require.Equal(t, []string{"score:Moat"}, out.Flipped)

	require.NoError(t, store.Replace(testCompanies()[1:], "test"))
	hub.Broadcast()

	out = readOutbound(t, conn)
	assert.Equal(t, "MSFT", out.Selected, "removed ticker falls back to the first company")
	assert.Empty(t, out.Flipped)
	assert.Equal(t, []string{"MSFT", "TCKR06"}, tickers(out))
}
