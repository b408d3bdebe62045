package handler

import (
	"net/http"

	"github.com/pooke74/LinkForge/pkg/adapters/handler"
	"github.com/pooke74/LinkForge/pkg/adapters/repository/sqlite"
	"github.com/pooke74/LinkForge/pkg/config"
	"github.com/pooke74/LinkForge/pkg/core/services"
)

var mux http.Handler

func init() {
	cfg := config.Load()

	// Note: On Vercel, linkforge.db is ephemeral unless DATABASE_URL
	// points at a remote Turso database.
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		panic(err)
	}

	identity := services.NewIdentityService(repo, cfg.SessionSecret)
	links := services.NewLinkService(repo)
	clicks := services.NewClickService(repo)
	stats := services.NewStatsService(repo)

	mux = handler.NewRouter(cfg, repo, identity, links, clicks, stats)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}
