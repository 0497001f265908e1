/*
Package feed streams newly recorded history entries to WebSocket subscribers.

This file defines the Hub, which tracks subscribers per room and fans out
events published when a message is recorded. Delivery is best-effort: a
subscriber whose send queue is full is dropped rather than allowed to stall
the rest of the room.
*/
package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shiftchat/internal/pkg/logx"
)

// Event is the wire form of a single recorded history entry.
type Event struct {
	// ID is a unique identifier for this event.
	ID string `json:"id"`

	// RoomID identifies the room the entry was recorded in.
	RoomID int64 `json:"roomId"`

	// Entry is the recorded history line, "<name> : <text>".
	Entry string `json:"entry"`

	// SentAt is the server-side publication time.
	SentAt time.Time `json:"sentAt"`
}

// Hub fans recorded history entries out to WebSocket subscribers per room.
type Hub struct {
	// mu protects subscribers.
	mu sync.RWMutex

	// subscribers groups active subscribers by room id.
	subscribers map[int64]map[*Subscriber]struct{}

	closed bool

	logger zerolog.Logger
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	hubLogger := logx.Logger().With().Str("component", "FeedHub").Logger()

	return &Hub{
		subscribers: make(map[int64]map[*Subscriber]struct{}),
		logger:      hubLogger,
	}
}

// Publish delivers a history entry to every subscriber of the room.
// Subscribers that cannot keep up are unsubscribed.
func (h *Hub) Publish(roomID int64, entry string) {
	event := Event{
		ID:     uuid.New().String(),
		RoomID: roomID,
		Entry:  entry,
		SentAt: time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("event_id", event.ID).Msg("Failed to marshal feed event.")
		return
	}

	var stalled []*Subscriber

	h.mu.RLock()
	for sub := range h.subscribers[roomID] {
		select {
		case sub.send <- payload:
		default:
			stalled = append(stalled, sub)
		}
	}
	h.mu.RUnlock()

	for _, sub := range stalled {
		h.logger.Warn().
			Int64("room_id", roomID).
			Msg("Subscriber send queue full, dropping subscriber.")
		h.unsubscribe(sub)
	}
}

// register adds the subscriber to its room's set.
func (h *Hub) register(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(sub.send)
		return
	}

	set, ok := h.subscribers[sub.roomID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subscribers[sub.roomID] = set
	}
	set[sub] = struct{}{}

	h.logger.Info().
		Int64("room_id", sub.roomID).
		Int("room_subscribers", len(set)).
		Msg("Subscriber joined feed.")
}

// unsubscribe removes the subscriber and closes its send queue. Empty room
// sets are dropped so the map does not accumulate dead rooms.
func (h *Hub) unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subscribers[sub.roomID]
	if !ok {
		return
	}

	if _, present := set[sub]; !present {
		return
	}

	delete(set, sub)
	close(sub.send)

	if len(set) == 0 {
		delete(h.subscribers, sub.roomID)
	}

	h.logger.Info().
		Int64("room_id", sub.roomID).
		Int("room_subscribers", len(set)).
		Msg("Subscriber left feed.")
}

// Shutdown closes every subscriber queue and stops accepting new ones.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for roomID, set := range h.subscribers {
		for sub := range set {
			close(sub.send)
		}
		delete(h.subscribers, roomID)
	}

	h.logger.Info().Msg("Feed hub shut down.")
}
