package assessments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/dbx"
	"github.com/lib/pq"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, request_token, submitted_at, status, vendor_name, service_name,
	deployment_type, use_case, num_users, num_records, vendor_website,
	contact_name, contact_email, contact_phone, certifications, additional_documents,
	reviewer_notes, last_updated`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssessment(row rowScanner) (*assessment.Assessment, error) {
	var a assessment.Assessment
	var token, notes sql.NullString

	if err := row.Scan(
		&a.ID, &token, &a.SubmittedAt, &a.Status, &a.VendorName, &a.ServiceName,
		&a.DeploymentType, &a.UseCase, &a.NumUsers, &a.NumRecords, &a.VendorWebsite,
		&a.ContactInfo.Name, &a.ContactInfo.Email, &a.ContactInfo.Phone,
		pq.Array(&a.Documents.Certifications), pq.Array(&a.Documents.Additional),
		&notes, &a.LastUpdated,
	); err != nil {
		return nil, err
	}

	a.RequestToken = token.String
	if notes.Valid {
		n := notes.String
		a.ReviewerNotes = &n
	}
	a.SubmittedAt = a.SubmittedAt.UTC()
	a.LastUpdated = a.LastUpdated.UTC()
	a.Normalize()
	return &a, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullNotes(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

// Create inserts a new assessment. Unique violations on the id or the
// request token map to common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, a *assessment.Assessment) error {
	a.Normalize()

	query := `
		INSERT INTO assessments (` + selectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, nullString(a.RequestToken), a.SubmittedAt, a.Status, a.VendorName, a.ServiceName,
		a.DeploymentType, a.UseCase, a.NumUsers, a.NumRecords, a.VendorWebsite,
		a.ContactInfo.Name, a.ContactInfo.Email, a.ContactInfo.Phone,
		pq.Array(a.Documents.Certifications), pq.Array(a.Documents.Additional),
		nullNotes(a.ReviewerNotes), a.LastUpdated,
	)
	if err != nil {
		if dbx.IsUniqueViolation(err, "") {
			return fmt.Errorf("%w: assessment %s", common.ErrorAlreadyExists, a.ID)
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) getOne(ctx context.Context, db dbx.DBTX, where string, arg any) (*assessment.Assessment, error) {
	query := `SELECT ` + selectColumns + ` FROM assessments WHERE ` + where
	a, err := scanAssessment(db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*assessment.Assessment, error) {
	return r.getOne(ctx, r.db, "id = $1", id)
}

func (r *PostgresRepository) GetByRequestToken(ctx context.Context, token string) (*assessment.Assessment, error) {
	if token == "" {
		return nil, common.ErrorNotFound
	}
	return r.getOne(ctx, r.db, "request_token = $1", token)
}

// List filters server side and returns rows in insertion order.
func (r *PostgresRepository) List(ctx context.Context, f assessment.Filter) ([]*assessment.Assessment, error) {
	var where []string
	var args []any

	if f.Search != "" {
		args = append(args, f.Search)
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(strpos(lower(vendor_name), lower($%d)) > 0 OR strpos(lower(service_name), lower($%d)) > 0)", n, n))
	}
	if f.Status != nil {
		args = append(args, f.Status.String())
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + selectColumns + ` FROM assessments`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select assessments: %w", err)
	}
	defer rows.Close()

	result := make([]*assessment.Assessment, 0)
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update locks the row with SELECT ... FOR UPDATE, applies fn and writes the
// review fields back. Bound to a *sql.DB it opens its own transaction; bound
// to a transaction it runs inside it.
func (r *PostgresRepository) Update(ctx context.Context, id string, fn UpdateFunc) (*assessment.Assessment, error) {
	var out *assessment.Assessment

	run := func(ctx context.Context, tx dbx.DBTX) error {
		cur, err := r.getOne(ctx, tx, "id = $1 FOR UPDATE", id)
		if err != nil {
			return err
		}

		if err := fn(cur); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE assessments SET status = $2, reviewer_notes = $3, last_updated = $4 WHERE id = $1`,
			id, cur.Status, nullNotes(cur.ReviewerNotes), cur.LastUpdated,
		)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected error: %w", err)
		}
		if n != 1 {
			return fmt.Errorf("unexpected rows affected: %d", n)
		}

		out = cur
		return nil
	}

	var err error
	if db, ok := r.db.(*sql.DB); ok {
		err = dbx.WithTx(ctx, db, nil, run)
	} else {
		err = run(ctx, r.db)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
