/*
Package feed streams newly recorded history entries to WebSocket subscribers.

This file defines the Subscriber, one active WebSocket connection listening to
a room's feed, and its read/write pumps.
*/
package feed

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"shiftchat/internal/pkg/logx"
)

const (
	// timeout for writing to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time to wait for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency of server Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// size of the per-subscriber send queue.
	sendQueueSize = 64
)

// Subscriber represents one WebSocket connection subscribed to a room's feed.
type Subscriber struct {
	hub    *Hub
	conn   *websocket.Conn
	roomID int64

	// send queues marshaled events for the write pump.
	send chan []byte

	logger zerolog.Logger
}

// NewSubscriber registers a connection with the hub and returns the
// Subscriber. The caller runs WritePump in a goroutine and then ReadPump.
func NewSubscriber(hub *Hub, conn *websocket.Conn, roomID int64) *Subscriber {
	subLogger := logx.Logger().With().
		Int64("room_id", roomID).
		Str("component", "FeedSubscriber").
		Logger()

	sub := &Subscriber{
		hub:    hub,
		conn:   conn,
		roomID: roomID,
		send:   make(chan []byte, sendQueueSize),
		logger: subLogger,
	}

	hub.register(sub)

	return sub
}

// WritePump forwards queued events to the connection and keeps it alive with
// pings. It exits when the send queue is closed or a write fails.
func (s *Subscriber) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				s.logger.Error().Err(err).Msg("Failed to set write deadline.")
				return
			}

			if !ok {
				// Hub closed the queue.
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.logger.Info().Err(err).Msg("Feed write failed, closing connection.")
				return
			}

		case <-ticker.C:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump drains the connection, handling pongs and detecting closure. The
// feed is one-way; inbound frames are discarded. On exit the subscriber is
// removed from the hub.
func (s *Subscriber) ReadPump() {
	defer func() {
		s.hub.unsubscribe(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(512)

	if err := s.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		s.logger.Error().Err(err).Msg("Failed to set read deadline.")
		return
	}

	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info().Err(err).Msg("Feed connection closed unexpectedly.")
			}
			return
		}
	}
}
