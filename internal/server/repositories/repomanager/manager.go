package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vendorrisk/internal/dbx"
	"github.com/dmitrijs2005/vendorrisk/internal/server/repositories/assessments"
)

// RepositoryManager vends repositories bound to a database handle and owns
// the schema migration hook. The in-memory manager ignores the handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Assessments(db dbx.DBTX) assessments.Repository
}
