package repository

import (
	"fmt"

	"ticketsim/internal/config"
	"ticketsim/internal/db"
)

// NewStore selects the persistence backend from configuration. Relational
// backends are migrated before they are returned.
func NewStore(cfg *config.Config) (Store, error) {
	if cfg.StoreDriver == config.DriverMemory || cfg.StoreDriver == "" {
		return NewMemoryStore(), nil
	}

	gormDB, err := db.Open(cfg.StoreDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		return nil, err
	}
	return NewGormStore(gormDB), nil
}
