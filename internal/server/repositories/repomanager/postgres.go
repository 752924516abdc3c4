// Package repomanager selects the repository implementations for the server:
// PostgreSQL with goose migrations when a DSN is configured, process memory
// otherwise.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/vendorrisk/internal/dbx"
	"github.com/dmitrijs2005/vendorrisk/internal/server/migrations"
	"github.com/dmitrijs2005/vendorrisk/internal/server/repositories/assessments"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Assessments returns an assessments.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Assessments(db dbx.DBTX) assessments.Repository {
	return assessments.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
