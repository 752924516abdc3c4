package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vendorrisk/internal/dbx"
	"github.com/dmitrijs2005/vendorrisk/internal/server/repositories/assessments"
)

// InMemoryRepositoryManager hands out one shared in-memory store regardless
// of the handle it is given.
type InMemoryRepositoryManager struct {
	assessments *assessments.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{assessments: assessments.NewMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Assessments(db dbx.DBTX) assessments.Repository {
	return m.assessments
}
