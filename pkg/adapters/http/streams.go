package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// EventType names a change to a stored document.
type EventType string

const (
	EventSaved   EventType = "saved"
	EventDeleted EventType = "deleted"
)

// Event is pushed to subscribers when a document changes.
type Event struct {
	Type EventType `json:"type"`
	ID   string    `json:"id"`
	Time time.Time `json:"time"`
}

// AllDocuments is the subscription key receiving the events of every document.
const AllDocuments = "*"

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- Event]struct{} // document ID -> set of channels
	logger      *slog.Logger
}

// NewStreamManager creates a StreamManager that reports dropped events to logger.
// A nil logger discards them.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- Event]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for the events of id (or AllDocuments).
// The returned function unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(id string) (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 10)
	if _, ok := sm.subscribers[id]; !ok {
		sm.subscribers[id] = make(map[chan<- Event]struct{})
	}
	sm.subscribers[id][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[id]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, id)
			}
		}
	}
}

// Broadcast delivers e to the subscribers of id and of AllDocuments.
// Slow subscribers lose the event instead of blocking the sender.
func (sm *StreamManager) Broadcast(id string, e Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, key := range []string{id, AllDocuments} {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- e:
			default:
				sm.logger.Warn("SSE: Client buffer full, dropping event", "id", id)
			}
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE). The optional "id" query
// narrows the stream to one document.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		id = AllDocuments
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(id)
	defer cancel()
	s.Logger.Info("SSE: subscribed", "id", id)

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE: client disconnected", "id", id)
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
			flusher.Flush()
		}
	}
}
