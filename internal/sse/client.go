package sse

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmdjr/card-games/internal/model"
)

const (
	// sendBufferSize is the buffer size for each client's send channel
	sendBufferSize = 256

	// keepaliveInterval is how often keepalive comments are sent
	keepaliveInterval = 30 * time.Second
)

// Client represents a single SSE connection
type Client struct {
	hub         *Hub
	playerID    model.PlayerID
	send        chan []byte
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub, playerID model.PlayerID) *Client {
	return &Client{
		hub:         hub,
		playerID:    playerID,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// Send returns the channel messages for this client are delivered on
func (c *Client) Send() <-chan []byte {
	return c.send
}

// ServeSSE handles an SSE connection for a client
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, playerID model.PlayerID) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	client := NewClient(hub, playerID)
	hub.Register(client)
	defer hub.Unregister(client)

	// Tell the client the stream is live before any events arrive
	fmt.Fprintf(w, "event: connected\ndata: {\"table\":%q}\n\n", string(hub.tableID))
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	ctx := r.Context()
	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-keepalive.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-ctx.Done():
			return
		}
	}
}
