package handler

import (
	"shiftchat/internal/app/archive"
	"shiftchat/internal/app/chatroom"
	"shiftchat/internal/app/feed"
	"shiftchat/internal/app/membership"
	"shiftchat/internal/app/session"
	"shiftchat/internal/app/store"
	"shiftchat/internal/app/user"
	"shiftchat/internal/configs"
	"shiftchat/internal/pkg/auth/jwt"
)

// AppDeps bundles the collaborators every handler needs.
type AppDeps struct {
	Config     *configs.AppConfig
	Store      store.Store
	Sessions   *session.Directory
	Registry   *chatroom.Registry
	Membership *membership.Coordinator
	Hub        *feed.Hub

	// Archive is nil when no archive backend is configured.
	Archive archive.Service

	// Rooms materializes room entities for this process.
	Rooms *RoomCache
}

// sessionUser rebuilds the acting user from the verified token payload.
// The secret is never carried in the token.
func sessionUser(payload *jwt.Payload) *user.User {
	u := user.NewRegistered(payload.UserID, payload.Name, payload.Username, "")
	u.Online = true
	return u
}
