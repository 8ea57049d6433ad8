// Package notify implements the websocket/notification pipeline spec.md
// §5 names as reading "L0/L1 on its own thread with a read-only database
// handle": a broadcast hub the Chain Post-Processor publishes to after
// each committed block, and that external subscribers (the non-goal
// push-to-browser fan-out) read from. The hub itself carries no SCE
// write access — it only ever receives already-computed event payloads.
package notify

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // public read-only stream, no session state to protect
	},
}

// EventType names the kinds of events the hub fans out.
type EventType string

const (
	EventBlockIndexed EventType = "block_indexed"
	EventBlockRolledBack EventType = "block_rolled_back"
)

// Event is the JSON payload pushed to every subscriber.
type Event struct {
	Type      EventType `json:"type"`
	Height    int32     `json:"height"`
	BlockHash string    `json:"blockHash,omitempty"`
	StateHash string    `json:"stateHash,omitempty"`
}

// Hub maintains the set of active websocket subscribers and fans out
// Events broadcast by the Chain Post-Processor (spec.md §4.8/§5).
type Hub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan Event
	mutex     sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast: make(chan Event, 256),
		clients:   make(map[*websocket.Conn]bool),
	}
}

// Run drains the broadcast channel and fans events out to every connected
// client. Meant to be started once as its own goroutine at engine startup.
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.mutex.Lock()
		for client := range h.clients {
			_ = client.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := client.WriteJSON(event); err != nil {
				log.Printf("[notify] websocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mutex.Unlock()
	}
}

// Subscribe upgrades an HTTP request to a websocket stream of Events.
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[notify] upgrade failed: %v", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
	log.Printf("[notify] client connected, total=%d", len(h.clients))

	go func() {
		defer func() {
			h.mutex.Lock()
			delete(h.clients, conn)
			h.mutex.Unlock()
			conn.Close()
			log.Printf("[notify] client disconnected, total=%d", len(h.clients))
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("[notify] read error: %v", err)
				}
				break
			}
		}
	}()
}

// Publish enqueues event for broadcast. Non-blocking: a full channel
// drops the event rather than stalling the block-connect thread that
// calls it (spec.md §5: indexing must never wait on a notification
// subscriber).
func (h *Hub) Publish(event Event) {
	select {
	case h.broadcast <- event:
	default:
		log.Printf("[notify] broadcast channel full, dropping event %s@%d", event.Type, event.Height)
	}
}
