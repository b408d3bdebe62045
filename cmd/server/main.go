package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pooke74/LinkForge/pkg/adapters/handler"
	"github.com/pooke74/LinkForge/pkg/adapters/repository/jsonfile"
	"github.com/pooke74/LinkForge/pkg/adapters/repository/sqlite"
	"github.com/pooke74/LinkForge/pkg/config"
	"github.com/pooke74/LinkForge/pkg/core/services"
	"github.com/pooke74/LinkForge/pkg/ports"
)

func main() {
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	repo, err := openRepository(cfg)
	if err != nil {
		slog.Error("failed to open storage", "backend", cfg.StorageBackend, "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	identity := services.NewIdentityService(repo, cfg.SessionSecret)
	links := services.NewLinkService(repo)
	clicks := services.NewClickService(repo)
	stats := services.NewStatsService(repo)

	mux := handler.NewRouter(cfg, repo, identity, links, clicks, stats)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	slog.Info("server starting", "port", cfg.Port, "backend", cfg.StorageBackend)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// openRepository picks the storage backend. Both implementations
// satisfy the same contract; callers never see which one is active.
func openRepository(cfg *config.Config) (ports.Repository, error) {
	switch cfg.StorageBackend {
	case "sqlite":
		return sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	case "jsonfile":
		return jsonfile.NewJSONFileRepository(cfg.DataFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
