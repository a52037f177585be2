package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/services"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 90 * time.Second
	wsPingPeriod = 30 * time.Second
)

// Message types sent over /ws/events.
const (
	WSMessageSnapshot = "snapshot"
	WSMessageChange   = "change"
)

// WSMessage is pushed to dashboard clients. Every change carries a fresh
// snapshot so clients never recompute counts themselves.
type WSMessage struct {
	Type     string                `json:"type"`
	Event    *services.ChangeEvent `json:"event,omitempty"`
	Snapshot models.StatsSnapshot  `json:"snapshot"`
}

// StreamEvents upgrades to a WebSocket and pushes a snapshot on connect and
// after every change. Clients only listen; anything they send is discarded.
func (a *API) StreamEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := a.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := a.hub.Subscribe()
	defer unsubscribe()

	// Reader goroutine: keeps the read deadline fresh and notices closes.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(4 * 1024)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// All writes happen on this goroutine.
	send := func(msg WSMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(msg)
	}
	if err := send(WSMessage{Type: WSMessageSnapshot, Snapshot: a.snapshot()}); err != nil {
		return
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := send(WSMessage{Type: WSMessageChange, Event: &ev, Snapshot: a.snapshot()}); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func (a *API) snapshot() models.StatsSnapshot {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return a.stats.Snapshot(ctx)
}
