// Command cli administers a LinkForge dataset: export dumps the whole
// store as JSON, import loads a dump, and migrate copies everything
// from one backend to the other. Export + import against different
// STORAGE_BACKEND settings is the supported path for moving between
// the JSON file and SQLite.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pooke74/LinkForge/pkg/adapters/repository/jsonfile"
	"github.com/pooke74/LinkForge/pkg/adapters/repository/sqlite"
	"github.com/pooke74/LinkForge/pkg/config"
	"github.com/pooke74/LinkForge/pkg/core/domain"
	"github.com/pooke74/LinkForge/pkg/ports"
)

func main() {
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON dump to import")

	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	migrateTo := migrateCmd.String("to", "", "target backend: sqlite or jsonfile")

	if len(os.Args) < 2 {
		fmt.Println("expected 'export', 'import' or 'migrate' subcommands")
		os.Exit(1)
	}

	cfg := config.Load()
	repo, err := openRepository(cfg, cfg.StorageBackend)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repo.Close()

	switch os.Args[1] {
	case "export":
		doExport(repo)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		doImport(repo, *importFile)
	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		if *migrateTo == "" || *migrateTo == cfg.StorageBackend {
			migrateCmd.PrintDefaults()
			os.Exit(1)
		}
		target, err := openRepository(cfg, *migrateTo)
		if err != nil {
			log.Fatalf("Failed to open target storage: %v", err)
		}
		defer target.Close()
		doMigrate(repo, target)
	default:
		fmt.Println("expected 'export', 'import' or 'migrate' subcommands")
		os.Exit(1)
	}
}

func openRepository(cfg *config.Config, backend string) (ports.Repository, error) {
	switch backend {
	case "sqlite":
		return sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	case "jsonfile":
		return jsonfile.NewJSONFileRepository(cfg.DataFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func doExport(repo ports.Repository) {
	snap, err := repo.Dump(context.Background())
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(snap); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doImport(repo ports.Repository, filename string) {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Failed to open file: %v", err)
	}
	defer file.Close()

	var snap domain.Snapshot
	if err := json.NewDecoder(file).Decode(&snap); err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	if err := repo.Import(context.Background(), &snap); err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Imported %d users, %d links, %d click events",
		len(snap.Users), len(snap.Links), len(snap.Analytics))
}

func doMigrate(source, target ports.Repository) {
	ctx := context.Background()
	snap, err := source.Dump(ctx)
	if err != nil {
		log.Fatalf("Dump failed: %v", err)
	}
	if err := target.Import(ctx, snap); err != nil {
		log.Fatalf("Migrate failed: %v", err)
	}
	log.Printf("Migrated %d users, %d links, %d click events",
		len(snap.Users), len(snap.Links), len(snap.Analytics))
}
