package overlay

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wonny/ledger/internal/contracts"
	"github.com/wonny/ledger/internal/metrics"
	"github.com/wonny/ledger/pkg/logger"
)

const (
	sendBuffer   = 16
	pingInterval = 45 * time.Second
	readTimeout  = 90 * time.Second
	writeTimeout = 10 * time.Second
)

// Companies is the read side of the company store
type Companies interface {
	All() []contracts.Company
	First() (contracts.Company, bool)
	Get(ticker string) (contracts.Company, error)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

type client struct {
	conn    *websocket.Conn
	out     chan Outbound
	done    chan struct{}
	mu      sync.Mutex // guards session
	session *Session
}

// Hub serves overlay sessions over websocket
// ⭐ SSOT: 세션별 오버레이 상태는 Hub 클라이언트가 소유
type Hub struct {
	companies Companies
	logger    *logger.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub creates a hub reading from companies
func NewHub(companies Companies, log *logger.Logger) *Hub {
	return &Hub{
		companies: companies,
		logger:    log,
		clients:   make(map[*client]struct{}),
	}
}

// Sessions returns the number of connected sessions
func (h *Hub) Sessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP upgrades the connection and runs one session until it closes
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	selected := ""
	if first, ok := h.companies.First(); ok {
		selected = first.Ticker
	}

	cl := &client{
		conn:    conn,
		out:     make(chan Outbound, sendBuffer),
		done:    make(chan struct{}),
		session: NewSession(uuid.NewString(), selected),
	}
	h.register(cl)
	defer h.unregister(cl)

	log := h.logger.WithField("session", cl.session.ID)
	log.Debug("Overlay session opened")

	go h.writer(cl)

	// 최초 뷰
	h.push(cl, nil)

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		var msg Inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("Overlay session read failed")
			}
			break
		}

		cl.mu.Lock()
		applyErr := cl.session.Apply(msg, h.exists)
		cl.mu.Unlock()

		h.push(cl, applyErr)
	}

	log.Debug("Overlay session closed")
}

// Broadcast recomputes every session's view, e.g. after a reload.
// A selection removed by the reload falls back to the first company.
func (h *Hub) Broadcast() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for cl := range h.clients {
		clients = append(clients, cl)
	}
	h.mu.RUnlock()

	first := ""
	if c, ok := h.companies.First(); ok {
		first = c.Ticker
	}

	for _, cl := range clients {
		cl.mu.Lock()
		prev := cl.session.Selected
		if cl.session.Resync(h.exists, first) {
			h.logger.WithFields(map[string]interface{}{
				"session": cl.session.ID,
				"from":    prev,
				"to":      first,
			}).Debug("Overlay selection reset after reload")
		}
		cl.mu.Unlock()

		h.push(cl, nil)
	}
}

func (h *Hub) exists(ticker string) bool {
	_, err := h.companies.Get(ticker)
	return err == nil
}

// push sends either the error or the session's fresh view
func (h *Hub) push(cl *client, err error) {
	var msg Outbound
	if err != nil {
		cl.mu.Lock()
		msg = Outbound{Type: MsgError, Session: cl.session.ID, Message: err.Error()}
		cl.mu.Unlock()
	} else {
		companies := h.companies.All()
		cl.mu.Lock()
		msg = cl.session.View(companies)
		cl.mu.Unlock()
		metrics.ObserveView("websocket", len(msg.Rows))
	}

	select {
	case cl.out <- msg:
	case <-cl.done:
	default:
		// 느린 클라이언트는 이번 뷰를 건너뜀
		h.logger.WithField("session", msg.Session).Warn("Overlay send buffer full, dropping view")
	}
}

func (h *Hub) writer(cl *client) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case msg := <-cl.out:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cl.conn.WriteJSON(msg); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					h.logger.WithError(err).Debug("Overlay write failed")
				}
				// reader loop를 깨우기 위해 연결 종료
				cl.conn.Close()
				return
			}
		case <-ping.C:
			_ = cl.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
		case <-cl.done:
			return
		}
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	h.clients[cl] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	metrics.OverlaySessions.Set(float64(n))
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	delete(h.clients, cl)
	n := len(h.clients)
	h.mu.Unlock()
	close(cl.done)
	metrics.OverlaySessions.Set(float64(n))
}
