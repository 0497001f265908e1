/*
Package handler provides HTTP handler functions for room creation, joining,
leaving, and catalog listing.
*/
package handler

import (
	"errors"
	"net/http"
	"strings"

	"shiftchat/internal/app/chatroom"
	"shiftchat/internal/app/store"
	"shiftchat/internal/pkg/auth/jwt"
	"shiftchat/internal/pkg/errs"
	"shiftchat/internal/pkg/logx"
	"shiftchat/internal/pkg/req"
	"shiftchat/internal/pkg/resp"
)

type CreateRoomInput struct {
	// Name is the human-readable room name.
	Name string `json:"name"`
}

// HandleCreateRoom persists a new room with the creator as its first member,
// materializes the room entity, and makes it the session's current room.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input CreateRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		// Session-scoped pre-assignment; the store's generated key is the
		// durable id and wins once the room is persisted.
		preID := deps.Registry.GenerateID()

		roomID, err := deps.Store.CreateRoom(r.Context(), input.Name, identity.UserID)
		if err != nil {
			logx.Error(err, "failed to persist room", "room_name", input.Name, "pre_id", preID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		room := chatroom.NewRoom(roomID)
		room.SetName(input.Name)
		deps.Rooms.Put(room)

		logx.Info("Room created", "room_id", roomID, "pre_id", preID, "room_name", input.Name)

		u := sessionUser(identity)
		if err := deps.Registry.AddParticipantToRoom(u, room); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"roomId": roomID,
			"name":   input.Name,
		})
	}
}

// HandleListRooms returns every persisted room.
func HandleListRooms(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rooms, err := deps.Store.Rooms(r.Context())
		if err != nil {
			logx.Error(err, "failed to fetch room catalog")
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"rooms": rooms,
		})
	}
}

type JoinRoomInput struct {
	// RoomID joins by id; Name joins by name. Exactly one must be set.
	RoomID int64  `json:"roomId,omitempty"`
	Name   string `json:"name,omitempty"`
}

// HandleJoinRoom persists the membership exactly once, adds the user to the
// room entity, and makes the room current for the session.
func HandleJoinRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input JoinRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		roomID := input.RoomID
		if roomID == 0 && input.Name != "" {
			rec, err := deps.Store.RoomByName(r.Context(), input.Name)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
					return
				}
				logx.Error(err, "room lookup by name failed", "room_name", input.Name)
				resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
				return
			}
			roomID = rec.ID
		}

		if roomID <= 0 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		room, err := deps.Rooms.Materialize(r.Context(), roomID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
				return
			}
			logx.Error(err, "room lookup failed", "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		if err := deps.Membership.Join(r.Context(), identity.UserID, roomID); err != nil {
			logx.Error(err, "membership join failed", "user_id", identity.UserID, "room_id", roomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		u := sessionUser(identity)
		if err := deps.Registry.AddParticipantToRoom(u, room); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"roomId":       room.ID(),
			"name":         room.Name(),
			"participants": len(room.Participants()),
		})
	}
}

type LeaveRoomInput struct {
	RoomID int64 `json:"roomId"`
}

// HandleLeaveRoom removes the membership and the participant. The session's
// current-room pointer is cleared even when other participants remain.
func HandleLeaveRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		var input LeaveRoomInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		room, err := deps.Rooms.Materialize(r.Context(), input.RoomID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound))
				return
			}
			logx.Error(err, "room lookup failed", "room_id", input.RoomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		if err := deps.Membership.Leave(r.Context(), identity.UserID, input.RoomID); err != nil {
			logx.Error(err, "membership removal failed", "user_id", identity.UserID, "room_id", input.RoomID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		u := sessionUser(identity)
		if err := deps.Registry.RemoveParticipantFromRoom(u, room); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleCurrentRoom returns the session's current room, or null data when no
// room is current.
func HandleCurrentRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := deps.Registry.Current()
		if room == nil {
			resp.RespondSuccess(w, r, nil)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"roomId": room.ID(),
			"name":   room.Name(),
		})
	}
}
