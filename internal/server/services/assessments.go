// Package services implements the review service: intake of new
// assessments, listing and lookup, reviewer status transitions and links to
// supporting documents.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/dmitrijs2005/vendorrisk/internal/server/repositories/assessments"
	"github.com/dmitrijs2005/vendorrisk/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Upload is a presigned PUT for one declared document.
type Upload struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SubmitResult is the outcome of an intake. Replayed is set when the request
// token matched an earlier submission and no new record was created.
type SubmitResult struct {
	Assessment *assessment.Assessment `json:"assessment"`
	Uploads    []Upload               `json:"uploads"`
	Replayed   bool                   `json:"replayed"`
}

type AssessmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	documents   DocumentStore
	logger      logging.Logger

	now   func() time.Time
	newID func() string
}

// NewAssessmentService wires the service. db may be nil for the in-memory
// manager and documents may be nil when no document store is configured.
func NewAssessmentService(db *sql.DB, repomanager repomanager.RepositoryManager, documents DocumentStore, logger logging.Logger) *AssessmentService {
	return &AssessmentService{
		db:          db,
		repomanager: repomanager,
		documents:   documents,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

func (s *AssessmentService) repo() assessments.Repository {
	return s.repomanager.Assessments(s.db)
}

// Submit validates the form and stores a new pending assessment. A form
// carrying a request token that was already used returns the stored record.
func (s *AssessmentService) Submit(ctx context.Context, form assessment.IntakeForm) (*SubmitResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	repo := s.repo()

	if form.RequestToken != "" {
		existing, err := repo.GetByRequestToken(ctx, form.RequestToken)
		if err == nil {
			return s.replay(ctx, existing)
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
	}

	a, err := form.ToAssessment(s.newID(), s.now())
	if err != nil {
		return nil, err
	}

	if err := repo.Create(ctx, a); err != nil {
		// a concurrent submission with the same token won the insert
		if errors.Is(err, common.ErrorAlreadyExists) && form.RequestToken != "" {
			if existing, gerr := repo.GetByRequestToken(ctx, form.RequestToken); gerr == nil {
				return s.replay(ctx, existing)
			}
		}
		return nil, err
	}

	uploads, err := s.uploadsFor(ctx, a)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "assessment submitted", "id", a.ID, "vendor", a.VendorName, "documents", len(uploads))

	return &SubmitResult{Assessment: a, Uploads: uploads}, nil
}

func (s *AssessmentService) replay(ctx context.Context, a *assessment.Assessment) (*SubmitResult, error) {
	uploads, err := s.uploadsFor(ctx, a)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "duplicate submission replayed", "id", a.ID)
	return &SubmitResult{Assessment: a, Uploads: uploads, Replayed: true}, nil
}

func (s *AssessmentService) uploadsFor(ctx context.Context, a *assessment.Assessment) ([]Upload, error) {
	uploads := []Upload{}
	if s.documents == nil {
		return uploads, nil
	}

	seen := map[string]bool{}
	names := append(append([]string{}, a.Documents.Certifications...), a.Documents.Additional...)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		url, err := s.documents.PresignPut(ctx, DocumentKey(a.ID, name))
		if err != nil {
			return nil, fmt.Errorf("presign upload %s: %w", name, err)
		}
		uploads = append(uploads, Upload{Name: name, URL: url})
	}
	return uploads, nil
}

// List returns the assessments matching f, ordered by sort. An inactive sort
// keeps insertion order.
func (s *AssessmentService) List(ctx context.Context, f assessment.Filter, sort assessment.SortState) ([]*assessment.Assessment, error) {
	list, err := s.repo().List(ctx, f)
	if err != nil {
		return nil, err
	}
	return sort.Sort(list), nil
}

func (s *AssessmentService) Get(ctx context.Context, id string) (*assessment.Assessment, error) {
	return s.repo().Get(ctx, id)
}

// UpdateStatus records a reviewer decision together with its notes. Pending
// is not a valid decision.
func (s *AssessmentService) UpdateStatus(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error) {
	if !u.Status.IsReviewDecision() {
		return nil, fmt.Errorf("%w: %s is not a review decision", common.ErrorInvalidStatus, u.Status)
	}

	now := s.now()
	a, err := s.repo().Update(ctx, id, func(a *assessment.Assessment) error {
		a.Apply(u, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "assessment status updated", "id", id, "status", a.Status.String())
	return a, nil
}

// DocumentURL returns a presigned GET for a document listed on the
// assessment.
func (s *AssessmentService) DocumentURL(ctx context.Context, id, name string) (string, error) {
	if s.documents == nil {
		return "", common.ErrorDocumentStoreDisabled
	}

	a, err := s.repo().Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !a.Documents.Contains(name) {
		return "", fmt.Errorf("%w: %s", common.ErrorDocumentNotFound, name)
	}

	return s.documents.PresignGet(ctx, DocumentKey(id, name))
}

// Seed stores list when the repository is empty.
func (s *AssessmentService) Seed(ctx context.Context, list []*assessment.Assessment) error {
	repo := s.repo()

	n, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for _, a := range list {
		if err := repo.Create(ctx, a); err != nil {
			return err
		}
	}
	s.logger.Info(ctx, "seeded sample assessments", "count", len(list))
	return nil
}
