package telemetry

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/motion-control/mcc/internal/config"
)

// Event represents a telemetry event with SSE formatting.
type Event struct {
	ID   int64                  `json:"id,omitempty"`
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// Hub manages telemetry distribution for the single command stream.
//
// Events get monotonically increasing IDs and are retained in a ring buffer
// so reconnecting SSE clients can replay from Last-Event-ID.
type Hub struct {
	mu       sync.RWMutex
	nextID   int64
	buffer   []Event
	capacity int
	subs     map[int64]chan Event
	nextSub  int64
	closed   bool
}

// NewHub creates a new telemetry hub with the configured buffer capacity.
func NewHub(cfg *config.Config) *Hub {
	capacity := 64
	if cfg != nil && cfg.Timing.EventBufferSize > 0 {
		capacity = cfg.Timing.EventBufferSize
	}
	return &Hub{
		capacity: capacity,
		subs:     make(map[int64]chan Event),
	}
}

// Publish assigns the event an ID, buffers it, and fans it out to all
// subscribers. Slow subscribers drop events rather than block the publisher.
func (h *Hub) Publish(event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return fmt.Errorf("telemetry hub is stopped")
	}

	h.nextID++
	event.ID = h.nextID

	h.buffer = append(h.buffer, event)
	if len(h.buffer) > h.capacity {
		h.buffer = h.buffer[len(h.buffer)-h.capacity:]
	}

	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}

	return nil
}

// Subscribe registers a subscriber channel and returns it with an
// unsubscribe function. Events published after the call are delivered.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextSub++
	id := h.nextSub
	ch := make(chan Event, 32)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

// EventsSince returns buffered events with IDs greater than lastID.
func (h *Hub) EventsSince(lastID int64) []Event {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var out []Event
	for _, event := range h.buffer {
		if event.ID > lastID {
			out = append(out, event)
		}
	}
	return out
}

// Stop closes the hub. Subsequent publishes fail and all subscriber
// channels are closed.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

// ServeSSE streams events to an SSE client, replaying from the
// Last-Event-ID header when provided. It blocks until the client
// disconnects or the hub stops.
func (h *Hub) ServeSSE(w http.ResponseWriter, r *http.Request) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	lastEventID := int64(0)
	if lastIDStr := r.Header.Get("Last-Event-ID"); lastIDStr != "" {
		if id, err := strconv.ParseInt(lastIDStr, 10, 64); err == nil {
			lastEventID = id
		}
	}

	// Subscribe before replaying so no event between replay and live
	// streaming is lost; duplicates are filtered by ID below.
	events, cancel := h.Subscribe()
	defer cancel()

	for _, event := range h.EventsSince(lastEventID) {
		if err := writeSSEEvent(w, event); err != nil {
			return err
		}
		lastEventID = event.ID
	}
	flusher.Flush()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return nil
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return err
			}
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if event.ID <= lastEventID {
				continue
			}
			if err := writeSSEEvent(w, event); err != nil {
				return err
			}
			lastEventID = event.ID
			flusher.Flush()
		}
	}
}

// writeSSEEvent writes one event in SSE wire format.
func writeSSEEvent(w http.ResponseWriter, event Event) error {
	data, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.ID, event.Type, data)
	return err
}
