// Package storage selects the persistence backend from configuration.
package storage

import (
	"fmt"

	"github.com/foliolab/folio/internal/common"
	"github.com/foliolab/folio/internal/interfaces"
	"github.com/foliolab/folio/internal/storage/memory"
	"github.com/foliolab/folio/internal/storage/surrealdb"
)

// NewStore creates a store based on the configured backend.
// Supported backends: "memory" (default), "surrealdb".
func NewStore(logger *common.Logger, config *common.Config) (interfaces.Store, error) {
	backend := config.Storage.Backend
	if backend == "" {
		backend = common.BackendMemory
	}

	switch backend {
	case common.BackendMemory:
		logger.Info().Msg("Using in-memory storage backend")
		return memory.NewStore(), nil

	case common.BackendSurreal:
		return surrealdb.NewManager(logger, config)

	default:
		return nil, fmt.Errorf("unknown storage backend: %s (supported: memory, surrealdb)", backend)
	}
}
