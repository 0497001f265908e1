/*
Package handler provides HTTP handler functions for user registration and sessions.
*/
package handler

import (
	"errors"
	"net/http"
	"regexp"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"shiftchat/internal/app/session"
	"shiftchat/internal/app/store"
	"shiftchat/internal/app/user"
	"shiftchat/internal/pkg/auth/jwt"
	"shiftchat/internal/pkg/errs"
	"shiftchat/internal/pkg/logx"
	"shiftchat/internal/pkg/req"
	"shiftchat/internal/pkg/resp"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)
)

type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// HandleRegister creates a new user account and signs it in as the session's
// current user.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input RegisterInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !usernameRegex.MatchString(input.Username) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidUsername))
			return
		}

		secretLen := utf8.RuneCountInString(input.Secret)
		if secretLen < 1 || secretLen > 50 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidSecret))
			return
		}

		name := input.Name
		if name == "" {
			name = input.Username
		}

		u, err := deps.Sessions.Register(r.Context(), name, input.Username, input.Secret)
		if err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				logx.Warn("registration conflict: username already exists", "username", input.Username)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to store new user")
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		tokenString, err := issueSessionToken(u, deps.Config.JWTSecret)
		if err != nil {
			logx.Error(err, "failed to generate token after registration")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  userView(u),
		})
	}
}

type LoginInput struct {
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

// HandleLogin verifies credentials against the store and issues a session token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Sessions.Login(r.Context(), input.Username, input.Secret)
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
				return
			}

			logx.Error(err, "login failed: store error", "username", input.Username)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		tokenString, err := issueSessionToken(u, deps.Config.JWTSecret)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  userView(u),
		})
	}
}

// HandleLogout flips the authenticated user offline in the session map and
// the store.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		u := sessionUser(identity)

		if err := deps.Sessions.Logout(r.Context(), u); err != nil {
			logx.Error(err, "logout failed", "user_id", u.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrStoreFailure))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}

// HandleUserOnline reports the session's view of a user's online flag.
func HandleUserOnline(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")
		if username == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"username": username,
			"online":   deps.Sessions.IsOnline(username),
		})
	}
}

func issueSessionToken(u *user.User, secretKey string) (string, error) {
	payload := &jwt.Payload{
		UserID:   u.ID,
		Username: u.Username(),
		Name:     u.Name,
	}

	return jwt.GenerateToken(payload, secretKey, jwt.SessionExpiration)
}

func userView(u *user.User) map[string]any {
	return map[string]any{
		"id":       u.ID,
		"name":     u.Name,
		"username": u.Username(),
		"online":   u.Online,
	}
}
