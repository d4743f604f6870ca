package app

import (
	"fmt"
	"log"

	"github.com/Tomlord1122/todoey/internal/config"
	"github.com/Tomlord1122/todoey/internal/database"
	"github.com/Tomlord1122/todoey/internal/repository"
	"github.com/Tomlord1122/todoey/internal/server"
)

// Stores bundles the store implementations selected by configuration.
type Stores struct {
	Items    repository.ItemStore
	Sections repository.SectionStore
	Health   server.HealthChecker

	db database.Service
}

// OpenStores connects the configured backend. Postgres schemas are migrated
// before returning.
func OpenStores(cfg config.Config) (*Stores, error) {
	switch cfg.Store {
	case config.StoreMemory:
		mem := repository.NewMemoryStore()
		return &Stores{
			Items:    mem.Items(),
			Sections: mem.Sections(),
			Health:   server.StaticHealth{"message": "in-memory store"},
		}, nil
	case config.StorePostgres:
		db, err := database.New(cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		gormDB := db.GetDB()
		return &Stores{
			Items:    repository.NewGormItemRepository(gormDB),
			Sections: repository.NewGormSectionRepository(gormDB),
			Health:   db,
			db:       db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// Close releases the database pool, if any.
func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	log.Println("Closing database connection pool...")
	return s.db.Close()
}
