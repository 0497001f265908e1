package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"shiftchat/internal/app/archive"
	"shiftchat/internal/app/chatroom"
	"shiftchat/internal/app/store"
	"shiftchat/internal/pkg/auth/jwt"
	"shiftchat/internal/pkg/errs"
	"shiftchat/internal/pkg/logx"
	"shiftchat/internal/pkg/req"
	"shiftchat/internal/pkg/resp"
)

const archiveLinkTTL = 15 * time.Minute

type SendMessageInput struct {
	Text string `json:"text"`
}

// HandleSendMessage encodes the message, appends it to the room history, and
// fans the formatted entry out to live subscribers.
func HandleSendMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		room, customErr := roomFromPath(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input SendMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u := sessionUser(identity)
		ciphertext, err := room.SendMessage(u, input.Text)
		if err != nil {
			if errors.Is(err, chatroom.ErrInvalidArgument) {
				resp.RespondError(w, r, errs.NewError(errs.ErrMessageEmpty))
				return
			}
			logx.Error(err, "failed to send message", "room_id", room.ID())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		deps.Hub.Publish(room.ID(), chatroom.Entry(u.Name, ciphertext))

		resp.RespondSuccess(w, r, map[string]any{
			"ciphertext": ciphertext,
		})
	}
}

type ReceiveMessageInput struct {
	Ciphertext string `json:"ciphertext"`
}

// HandleReceiveMessage decodes a ciphertext on behalf of the caller and
// records the decoded entry in the room history.
func HandleReceiveMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		room, customErr := roomFromPath(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var input ReceiveMessageInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u := sessionUser(identity)
		if err := room.ReceiveMessage(u, input.Ciphertext); err != nil {
			if errors.Is(err, chatroom.ErrInvalidArgument) {
				resp.RespondError(w, r, errs.NewError(errs.ErrMessageEmpty))
				return
			}
			logx.Error(err, "failed to receive message", "room_id", room.ID())
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleGetHistory returns the room's in-memory transcript.
func HandleGetHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, customErr := roomFromPath(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"roomId":  room.ID(),
			"history": room.History(),
		})
	}
}

// HandleSaveHistory writes the room transcript to the configured history
// directory, one entry per line.
func HandleSaveHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		room, customErr := roomFromPath(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if err := os.MkdirAll(deps.Config.HistoryDir, 0o755); err != nil {
			logx.Error(err, "failed to create history directory", "dir", deps.Config.HistoryDir)
			resp.RespondError(w, r, errs.NewError(errs.ErrHistoryIOFailed))
			return
		}

		path := historyPath(deps.Config.HistoryDir, room.ID())
		if err := room.SaveHistory(path); err != nil {
			logx.Error(err, "failed to save history", "room_id", room.ID(), "path", path)
			resp.RespondError(w, r, errs.NewError(errs.ErrHistoryIOFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"entries": len(room.History()),
		})
	}
}

// HandleLoadHistory reads a previously saved transcript for display. The
// loaded lines are returned to the caller and are not merged back into the
// room's live history.
func HandleLoadHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room, customErr := roomFromPath(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		path := historyPath(deps.Config.HistoryDir, room.ID())
		lines, err := room.LoadHistory(path)
		if err != nil {
			logx.Error(err, "failed to load history", "room_id", room.ID(), "path", path)
			resp.RespondError(w, r, errs.NewError(errs.ErrHistoryIOFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"roomId":  room.ID(),
			"history": lines,
		})
	}
}

// HandleArchiveHistory uploads a snapshot of the room transcript to object
// storage.
func HandleArchiveHistory(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		if deps.Archive == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrArchiveUnavailable))
			return
		}

		room, customErr := roomFromPath(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		var b strings.Builder
		for _, entry := range room.History() {
			b.WriteString(entry)
			b.WriteByte('\n')
		}

		key := archive.SnapshotKey(room.ID())
		if err := deps.Archive.Put(r.Context(), key, strings.NewReader(b.String())); err != nil {
			logx.Error(err, "failed to archive history", "room_id", room.ID(), "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrArchiveFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"key": key,
		})
	}
}

// HandleDownloadArchive returns a short-lived link to the archived transcript.
func HandleDownloadArchive(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Archive == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrArchiveUnavailable))
			return
		}

		room, customErr := roomFromPath(deps, r)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		key := archive.SnapshotKey(room.ID())
		url, err := deps.Archive.PresignDownload(r.Context(), key, archiveLinkTTL)
		if err != nil {
			logx.Error(err, "failed to presign archive download", "room_id", room.ID(), "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrArchiveFailed))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"url": url,
		})
	}
}

func historyPath(dir string, roomID int64) string {
	return filepath.Join(dir, fmt.Sprintf("room-%d.txt", roomID))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// roomFromPath resolves the {id} path parameter to a room entity, consulting
// the store when the entity is not yet materialized in this process.
func roomFromPath(deps *AppDeps, r *http.Request) (*chatroom.Room, *errs.CustomError) {
	roomID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, errs.NewError(errs.ErrInvalidParams)
	}

	room, err := deps.Rooms.Materialize(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errs.NewError(errs.ErrRoomNotFound)
		}
		logx.Error(err, "room lookup failed", "room_id", roomID)
		return nil, errs.NewError(errs.ErrStoreFailure)
	}
	return room, nil
}
