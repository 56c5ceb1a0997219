package booking

import (
	"encoding/json"
	"net/http"
	"sync"

	"vroomly/globals"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

// Event is pushed to a user's open sockets whenever one of their bookings
// changes, so an open bookings page can refresh itself.
type Event struct {
	Type      string `json:"type"` // created, extended, cancelled
	BookingID string `json:"bookingId"`
}

// Hub fans booking events out to each user's websocket connections.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string][]*websocket.Conn)}
}

func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, _ := r.Context().Value(globals.UserIDKey).(string)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.subscribers[userID] = append(h.subscribers[userID], conn)
	h.mu.Unlock()

	for {
		// Keep the connection open until the client disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	conns := h.subscribers[userID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	h.subscribers[userID] = newList
	h.mu.Unlock()

	conn.Close()
}

func (h *Hub) Broadcast(userID string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subscribers[userID]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	h.subscribers[userID] = newList
}
