package handlers

import (
	"sync"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// ReloadHub tells connected browsers to reload after content changes.
type ReloadHub struct {
	mu      sync.Mutex
	clients map[chan struct{}]struct{}
}

func NewReloadHub() *ReloadHub {
	return &ReloadHub{clients: make(map[chan struct{}]struct{})}
}

// Broadcast signals every connected client. Slow clients that still have a
// pending signal are skipped.
func (h *ReloadHub) Broadcast() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Clients is the number of connected browsers.
func (h *ReloadHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *ReloadHub) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *ReloadHub) unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
}

// Serve upgrades the request and writes "reload" on every broadcast.
func (h *ReloadHub) Serve(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("Live reload upgrade failed: %v", err)
		return
	}
	defer conn.CloseNow()

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	ctx := conn.CloseRead(c.Request.Context())
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ch:
			if err := conn.Write(ctx, websocket.MessageText, []byte("reload")); err != nil {
				return
			}
		}
	}
}
