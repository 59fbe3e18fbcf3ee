package api

import "github.com/Pyae-Sone-Chan-Thar-Aung/Alumni-sub001/internal/services"

// Store is the full persistence surface the HTTP layer wires together. Each
// service depends only on its own slice of it; the union exists so one
// backend (SQLite or memory) can serve every service.
type Store interface {
	services.AuthoringStore
	services.TakingStore
	services.ListingStore
	services.AuthStore
	services.ExportStore
}

var _ Store = (*memoryStore)(nil)
