package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"communityapp-backend/internal/accounts"
	"communityapp-backend/internal/database"
	"communityapp-backend/internal/models"
	"communityapp-backend/internal/relations"
)

var sugar *zap.SugaredLogger
var store database.Store
var validate = validator.New(validator.WithRequiredStructEnabled())

var relationsService *relations.Service
var accountsService *accounts.Service

func Setup(_sugar *zap.SugaredLogger, _store database.Store) {
	sugar = _sugar
	store = _store

	relationsService = relations.NewService(store, sugar)
	accountsService = accounts.NewService(store, sugar)
}

func Router(cfg *models.ConfigFile) http.Handler {
	r := chi.NewRouter()

	if cfg.PrintHttpRequests {
		r.Use(middleware.Logger)
	}

	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Get("/test", Test)

		api.Route("/auth", func(r chi.Router) {
			r.Post("/login", Login)
			r.Post("/register", Register)
			r.With(UserVerifier).Get("/logout", Logout)
			r.With(UserVerifier).Get("/isLoggedIn", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
		})

		api.Route("/user", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetUserInfo)
			r.Post("/update", UpdateUserInfo)
			r.Post("/delete", DeleteAccount)
		})

		api.Route("/server", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateServer)
			r.Get("/fetch", GetServerList)
			r.Post("/delete", DeleteServer)
			r.Post("/rename", RenameServer)
			r.Post("/join", JoinServer)
			r.Post("/leave", LeaveServer)
		})

		api.Route("/channel", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateChannel)
			r.Get("/fetch", GetChannelList)
			r.Post("/delete", DeleteChannel)
		})

		api.Route("/message", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/create", CreateMessage)
			r.Get("/fetch", GetMessageList)
			r.Post("/delete", DeleteMessage)
		})

		api.Route("/members", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetMemberList)
		})

		api.Route("/friend", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Post("/request", SendFriendRequest)
			r.Post("/accept", AcceptFriendRequest)
			r.Post("/reject", RejectFriendRequest)
			r.Post("/remove", RemoveFriend)
			r.Get("/fetch", GetFriendList)
			r.Get("/requests", GetFriendRequests)
		})

		api.Route("/dm", func(r chi.Router) {
			r.Use(UserVerifier)
			r.Get("/fetch", GetConversation)
			r.Post("/create", CreatePrivateMessage)
		})

		api.Route("/email", func(r chi.Router) {
			r.Get("/confirm", ConfirmEmail)
		})
	})

	if len(cfg.CorsOrigins) > 0 {
		return handlers.CORS(
			handlers.MaxAge(3600),
			handlers.AllowedOrigins(cfg.CorsOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Accept"}),
			handlers.AllowCredentials(),
		)(r)
	}

	return r
}
