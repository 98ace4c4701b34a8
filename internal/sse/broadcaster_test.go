package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/jmdjr/card-games/internal/model"
	"github.com/jmdjr/card-games/internal/testutil"
)

// stubSource is an EventSource backed by a listener slice
type stubSource struct {
	listeners map[model.TableID][]func(model.Event)
	detached  bool
}

func newStubSource() *stubSource {
	return &stubSource{listeners: make(map[model.TableID][]func(model.Event))}
}

func (s *stubSource) Subscribe(id model.TableID, l func(model.Event)) (func(), error) {
	s.listeners[id] = append(s.listeners[id], l)
	return func() { s.detached = true }, nil
}

func (s *stubSource) publish(id model.TableID, ev model.Event) {
	for _, l := range s.listeners[id] {
		l(ev)
	}
}

func TestBroadcasterForwardsEvents(t *testing.T) {
	tableID := model.TableID("TBL001")
	m := NewHubManager(testutil.NopLogger())
	source := newStubSource()
	b := NewBroadcaster(m, source, testutil.NopLogger())

	if err := b.Attach(tableID); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	defer b.Detach(tableID)

	hub := m.GetHub(tableID)
	if hub == nil {
		t.Fatal("Attach did not create a hub")
	}
	client := NewClient(hub, model.PlayerID("p1"))
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	source.publish(tableID, model.Event{
		Type:     model.EventTurnChanged,
		TableID:  tableID,
		PlayerID: model.PlayerID("p2"),
	})

	select {
	case msg := <-client.send:
		text := string(msg)
		if !strings.HasPrefix(text, "event: "+string(model.EventTurnChanged)+"\n") {
			t.Errorf("unexpected event name in %q", text)
		}
		payload := strings.TrimSuffix(strings.TrimPrefix(text, "event: "+string(model.EventTurnChanged)+"\ndata: "), "\n\n")
		var ev model.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			t.Fatalf("event data is not valid JSON: %v", err)
		}
		if ev.TableID != tableID || ev.PlayerID != model.PlayerID("p2") {
			t.Errorf("decoded event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("client did not receive forwarded event")
	}
}

func TestBroadcasterAttachIdempotent(t *testing.T) {
	tableID := model.TableID("TBL001")
	m := NewHubManager(testutil.NopLogger())
	source := newStubSource()
	b := NewBroadcaster(m, source, testutil.NopLogger())

	if err := b.Attach(tableID); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if err := b.Attach(tableID); err != nil {
		t.Fatalf("second Attach() error = %v", err)
	}
	defer b.Detach(tableID)

	if got := len(source.listeners[tableID]); got != 1 {
		t.Errorf("listener count = %d, want 1", got)
	}
}

func TestBroadcasterDetach(t *testing.T) {
	tableID := model.TableID("TBL001")
	m := NewHubManager(testutil.NopLogger())
	source := newStubSource()
	b := NewBroadcaster(m, source, testutil.NopLogger())

	if err := b.Attach(tableID); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	b.Detach(tableID)

	if !source.detached {
		t.Error("Detach did not unsubscribe from the event source")
	}
	if got := m.GetHub(tableID); got != nil {
		t.Error("Detach did not remove the hub")
	}
}
