package httpapi

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/dmitrijs2005/vendorrisk/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// AssessmentService is the part of services.AssessmentService the HTTP layer
// depends on.
type AssessmentService interface {
	Submit(ctx context.Context, form assessment.IntakeForm) (*services.SubmitResult, error)
	List(ctx context.Context, f assessment.Filter, sort assessment.SortState) ([]*assessment.Assessment, error)
	Get(ctx context.Context, id string) (*assessment.Assessment, error)
	UpdateStatus(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error)
	DocumentURL(ctx context.Context, id, name string) (string, error)
}

// Limiter throttles intake per client address.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Handler struct {
	assessments AssessmentService
	limiter     Limiter
	logger      logging.Logger
}

// NewHandler wires the handlers. limiter may be nil.
func NewHandler(as AssessmentService, limiter Limiter, logger logging.Logger) *Handler {
	return &Handler{assessments: as, limiter: limiter, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil {
		ok, err := h.limiter.Allow(r.Context(), clientKey(r))
		if err != nil {
			h.logger.Warn(r.Context(), "rate limiter unavailable", "error", err.Error())
		}
		if !ok {
			writeError(w, http.StatusTooManyRequests, "too many submissions, try again later")
			return
		}
	}

	var form assessment.IntakeForm
	if err := readJSON(w, r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if key := strings.TrimSpace(r.Header.Get(common.IdempotencyKeyHeaderName)); key != "" {
		form.RequestToken = key
	}

	result, err := h.assessments.Submit(r.Context(), form)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f, sort, err := assessment.ParseQuery(q.Get("search"), q.Get("status"), q.Get("sort"), q.Get("order"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	list, err := h.assessments.List(r.Context(), f, sort)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"assessments": list,
		"total":       len(list),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.assessments.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"assessment": a,
		"badge":      a.Status.Badge(),
	})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status        string `json:"status"`
		ReviewerNotes string `json:"reviewerNotes"`
	}
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	st, err := assessment.ParseStatus(req.Status)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	a, err := h.assessments.UpdateStatus(r.Context(), chi.URLParam(r, "id"), assessment.StatusUpdate{Status: st, ReviewerNotes: req.ReviewerNotes})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	url, err := h.assessments.DocumentURL(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "name"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}
