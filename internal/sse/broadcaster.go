package sse

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/jmdjr/card-games/internal/model"
)

// EventSource provides subscriptions to a table's event stream
type EventSource interface {
	Subscribe(id model.TableID, l func(model.Event)) (func(), error)
}

// Broadcaster forwards table events to SSE hubs as JSON payloads
type Broadcaster struct {
	hubManager *HubManager
	source     EventSource
	logger     *slog.Logger

	mu       sync.Mutex
	detaches map[model.TableID]func()
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, source EventSource, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		hubManager: hubManager,
		source:     source,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
		detaches:   make(map[model.TableID]func()),
	}
}

// Attach subscribes the broadcaster to a table's event stream. Events are
// JSON-encoded and sent to the table's hub with the event type as the SSE
// event name. Attaching an already-attached table is a no-op.
func (b *Broadcaster) Attach(tableID model.TableID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.detaches[tableID]; ok {
		return nil
	}

	hub := b.hubManager.GetOrCreateHub(tableID)
	detach, err := b.source.Subscribe(tableID, func(ev model.Event) {
		b.forward(hub, ev)
	})
	if err != nil {
		return err
	}

	b.detaches[tableID] = detach
	b.logger.Info("broadcaster attached", slog.String("table", string(tableID)))
	return nil
}

// Detach unsubscribes from a table's event stream and removes its hub
func (b *Broadcaster) Detach(tableID model.TableID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if detach, ok := b.detaches[tableID]; ok {
		detach()
		delete(b.detaches, tableID)
	}
	b.hubManager.RemoveHub(tableID)
	b.logger.Info("broadcaster detached", slog.String("table", string(tableID)))
}

func (b *Broadcaster) forward(hub *Hub, ev model.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		b.logger.Error("failed to encode event",
			slog.String("event_type", string(ev.Type)),
			slog.String("error", err.Error()))
		return
	}
	hub.BroadcastEvent(string(ev.Type), string(data))
}
