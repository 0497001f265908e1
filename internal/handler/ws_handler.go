/*
Package handler provides the HTTP handler function for WebSocket connection upgrading and initialization.

This file contains the HandleWebSocket function, which is responsible for rate limiting,
resolving the target room, upgrading the HTTP connection to WebSocket, and attaching the
subscriber to the room's live feed.
*/
package handler

import (
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"shiftchat/internal/app/feed"
	"shiftchat/internal/app/store"
	"shiftchat/internal/pkg/errs"
	"shiftchat/internal/pkg/limiter"
	"shiftchat/internal/pkg/logx"
	"shiftchat/internal/pkg/resp"
)

// HandleWebSocket creates an HTTP HandlerFunc that subscribes the caller to a
// room's live history feed.
func HandleWebSocket(deps *AppDeps, upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			rateLimitErr := errs.NewError(errs.ErrRateLimitExceeded)
			resp.RespondError(w, r, rateLimitErr)
			return
		}

		roomID, err := parseID(chi.URLParam(r, "id"))
		if err != nil {
			logx.Warn("WebSocket request rejected: Invalid room id")
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		room, err := deps.Rooms.Materialize(r.Context(), roomID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				logx.Info("WebSocket connection rejected: Room not found.", "room_id", roomID)
				resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
				return
			}
			logx.Error(err, "WebSocket room lookup failed", "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		logx.Info("Attempting to upgrade connection", "room_id", room.ID(), "ip", ip)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		sub := feed.NewSubscriber(deps.Hub, conn, room.ID())

		go sub.WritePump()

		logx.Info("WebSocket connection established and subscriber registered", "room_id", room.ID())

		sub.ReadPump()
	}
}
