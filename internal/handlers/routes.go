package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reborn-osrs/reborn-ranks/internal/auth"
)

type Handlers struct {
	Auth         *auth.AuthHandler
	Players      *PlayerHandler
	Catalog      *CatalogHandler
	Reviews      *ReviewHandler
	Interactions http.Handler
}

func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts every endpoint. A non-empty corsOrigin enables
// credentialed CORS for that origin.
func RegisterRoutes(r *chi.Mux, h Handlers, corsOrigin string) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if corsOrigin != "" {
		r.Use(cors(corsOrigin))
	}

	config := huma.DefaultConfig("Reborn Ranks API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Discord signs the raw body, so this stays outside huma.
	r.Post("/discord/interactions", h.Interactions.ServeHTTP)

	huma.Get(api, "/auth/discord/login", h.Auth.HandleLogin)
	huma.Get(api, "/auth/discord/callback", h.Auth.HandleCallback)

	huma.Get(api, "/me", h.Auth.HandleMe, func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
		o.Middlewares = huma.Middlewares{h.Auth.RequireSession(api)}
	})

	huma.Get(api, "/catalog", h.Catalog.HandleCatalog)
	huma.Get(api, "/ranks", h.Catalog.HandleRanks)

	huma.Get(api, "/players", h.Players.HandleList)
	huma.Post(api, "/players", h.Players.HandleCreate, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Get(api, "/players/{id}", h.Players.HandleGet)
	huma.Delete(api, "/players/{id}", h.Players.HandleDelete, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusNoContent
	})
	huma.Get(api, "/players/{id}/checklist", h.Players.HandleChecklist)
	huma.Put(api, "/players/{id}/checklist/{itemId}", h.Players.HandleSetItem)
	huma.Post(api, "/players/{id}/sync", h.Players.HandleSync)
	huma.Get(api, "/players/{id}/stats", h.Players.HandleStats)
	huma.Post(api, "/players/{id}/wom-update", h.Players.HandleWOMUpdate)
	huma.Get(api, "/roster", h.Players.HandleRoster)

	huma.Post(api, "/review-requests", h.Reviews.HandleCreate, func(o *huma.Operation) {
		o.DefaultStatus = http.StatusCreated
	})
	huma.Get(api, "/review-requests", h.Reviews.HandleList)
	huma.Get(api, "/review-requests/{id}", h.Reviews.HandleGet)

	return api
}
