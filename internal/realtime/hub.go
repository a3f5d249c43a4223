// Package realtime fans leaderboard updates out to websocket subscribers.
package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	sendBuffer = 8
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Subscriber struct {
	quizID uint
	send   chan []byte
}

// Messages is closed when the subscriber is removed from the hub.
func (s *Subscriber) Messages() <-chan []byte { return s.send }

// Hub keeps subscribers per template quiz. A subscriber whose buffer is full
// when a message arrives is dropped instead of blocking the publisher.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint]map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[uint]map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe(quizID uint) *Subscriber {
	sub := &Subscriber{quizID: quizID, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subscribers[quizID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subscribers[quizID] = set
	}
	set[sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

func (h *Hub) Publish(quizID uint, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers[quizID] {
		select {
		case sub.send <- payload:
		default:
			log.Warn().Uint("quizID", quizID).Msg("Dropping slow leaderboard subscriber")
			h.removeLocked(sub)
		}
	}
}

func (h *Hub) SubscriberCount(quizID uint) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[quizID])
}

func (h *Hub) removeLocked(sub *Subscriber) {
	set, ok := h.subscribers[sub.quizID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	close(sub.send)
	if len(set) == 0 {
		delete(h.subscribers, sub.quizID)
	}
}

// Serve streams updates for quizID to conn until the peer goes away or the
// subscriber is dropped. initial, when non-nil, is written first.
func (h *Hub) Serve(conn *websocket.Conn, quizID uint, initial []byte) {
	sub := h.Subscribe(quizID)
	defer func() {
		h.Unsubscribe(sub)
		_ = conn.Close()
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if initial != nil {
		if err := write(conn, websocket.TextMessage, initial); err != nil {
			return
		}
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-sub.send:
			if !ok {
				_ = write(conn, websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "too slow"))
				return
			}
			if err := write(conn, websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := write(conn, websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func write(conn *websocket.Conn, messageType int, data []byte) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(messageType, data)
}
