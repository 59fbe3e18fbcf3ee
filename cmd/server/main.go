package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/api"
	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/db"
	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/middleware"
	"github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/utils"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("server: loaded .env")
	}

	addr := utils.SafeEnv("ALUMNI_ADDR", ":8080")

	store, err := openStore()
	if err != nil {
		log.Fatalf("server: open store: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":   true,
			"name": "Alumni Survey API",
		})
	})

	handler := middleware.CORS(middleware.SecureHeaders(middleware.NoStore(middleware.WithAuth(mux))))

	log.Printf("server: listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}

// openStore picks SQLite when ALUMNI_DB_PATH is set, otherwise an in-memory
// store suitable for local development.
func openStore() (api.Store, error) {
	path := utils.SafeEnv("ALUMNI_DB_PATH", "")
	if path == "" {
		log.Printf("server: ALUMNI_DB_PATH not set, using in-memory store")
		return api.NewMemoryStore(), nil
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", path)
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.RunMigrations(sqlDB, utils.SafeEnv("ALUMNI_MIGRATIONS_DIR", "")); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	store, err := db.NewStore(sqlDB)
	if err != nil {
		return nil, err
	}
	log.Printf("server: using sqlite store at %s", path)
	return store, nil
}
