/*
Package handler provides the HTTP handlers and routing setup for the ShiftChat Server.

This file defines the main Router, applying necessary middleware like logging, CORS,
and IP-based rate limiting before delegating requests to specific handlers (API and WebSocket).
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"shiftchat/internal/pkg/auth/jwt"
	"shiftchat/internal/pkg/limiter"
	"shiftchat/internal/pkg/logx"
	"shiftchat/internal/pkg/resp"
)

const (
	CreateRate  = 0.05
	CreateBurst = 2
	AuthRate    = 0.2
	AuthBurst   = 5
	FeedRate    = 0.2
	FeedBurst   = 5
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters, configures CORS, and applies global and per-route middleware.
// It requires the AppDeps bundle for business logic and the AppConfig for settings (like allowed origins).
func Router(deps *AppDeps) http.Handler {
	createLimiter := limiter.NewIPRateLimiter(rate.Limit(CreateRate), CreateBurst)
	authLimiter := limiter.NewIPRateLimiter(rate.Limit(AuthRate), AuthBurst)
	feedLimiter := limiter.NewIPRateLimiter(rate.Limit(FeedRate), FeedBurst)

	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if deps.Config.Environment == "development" {
				return true
			}

			origin := r.Header.Get("Origin")
			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		logx.Info("Health check endpoint hit")

		data := map[string]string{
			"status":  "ok",
			"service": "ShiftChat Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(auth chi.Router) {
			auth.Method(http.MethodPost, "/register", authLimiter.Middleware(HandleRegister(deps)))
			auth.Method(http.MethodPost, "/login", authLimiter.Middleware(HandleLogin(deps)))
			auth.Post("/logout", HandleLogout(deps))
		})

		api.Get("/users/{username}/online", HandleUserOnline(deps))

		api.Route("/rooms", func(rooms chi.Router) {
			rooms.Method(http.MethodPost, "/", createLimiter.Middleware(HandleCreateRoom(deps)))
			rooms.Get("/", HandleListRooms(deps))
			rooms.Get("/current", HandleCurrentRoom(deps))
			rooms.Post("/join", HandleJoinRoom(deps))
			rooms.Post("/leave", HandleLeaveRoom(deps))

			rooms.Route("/{id}", func(room chi.Router) {
				room.Post("/messages", HandleSendMessage(deps))
				room.Post("/messages/receive", HandleReceiveMessage(deps))

				room.Route("/history", func(history chi.Router) {
					history.Get("/", HandleGetHistory(deps))
					history.Post("/save", HandleSaveHistory(deps))
					history.Post("/load", HandleLoadHistory(deps))
					history.Post("/archive", HandleArchiveHistory(deps))
					history.Get("/archive", HandleDownloadArchive(deps))
				})
			})
		})
	})

	r.Get("/ws/{id}", HandleWebSocket(deps, wsUpgrader, feedLimiter))

	return r
}
