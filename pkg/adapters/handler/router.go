package handler

import (
	"net/http"

	"github.com/pooke74/LinkForge/pkg/config"
	"github.com/pooke74/LinkForge/pkg/ports"
)

// NewRouter creates and configures the main application router
func NewRouter(cfg *config.Config, repo ports.Repository, identity ports.IdentityService,
	links ports.LinkService, clicks ports.ClickService, stats ports.StatsService) http.Handler {

	// Initialize Handlers
	authHandler := NewAuthHandler(identity, cfg.IsProduction())
	linkHandler := NewLinkHandler(links)
	clickHandler := NewClickHandler(clicks)
	statsHandler := NewStatsHandler(stats)
	publicHandler := NewPublicHandler(repo, links)

	// Initialize Middleware
	mw := NewMiddleware(identity)
	protected := func(h http.HandlerFunc) http.Handler {
		return mw.RequireSession(h)
	}

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /clicks", clickHandler.Record)
	mux.HandleFunc("GET /{username}", publicHandler.Profile)

	// Session-gated routes
	mux.Handle("GET /auth/me", protected(authHandler.Me))
	mux.Handle("GET /links", protected(linkHandler.List))
	mux.Handle("POST /links", protected(linkHandler.Create))
	mux.Handle("PUT /links", protected(linkHandler.Update))
	mux.Handle("DELETE /links", protected(linkHandler.Delete))
	mux.Handle("PUT /profile", protected(authHandler.UpdateProfile))
	mux.Handle("GET /stats", protected(statsHandler.Owner))

	return mux
}
