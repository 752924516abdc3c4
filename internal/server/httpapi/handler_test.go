package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/dmitrijs2005/vendorrisk/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/vendorrisk/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLimiter struct {
	allow bool
	err   error
	keys  []string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (bool, error) {
	f.keys = append(f.keys, key)
	return f.allow, f.err
}

type fakeDocuments struct{}

func (fakeDocuments) PresignPut(ctx context.Context, key string) (string, error) {
	return "https://s3.local/put/" + key, nil
}

func (fakeDocuments) PresignGet(ctx context.Context, key string) (string, error) {
	return "https://s3.local/get/" + key, nil
}

func newTestRouter(t *testing.T, docs services.DocumentStore, limiter Limiter) http.Handler {
	t.Helper()

	svc := services.NewAssessmentService(nil, repomanager.NewInMemoryRepositoryManager(), docs, logging.Discard())
	require.NoError(t, svc.Seed(context.Background(), assessment.SampleAssessments()))

	return NewRouter(NewHandler(svc, limiter, logging.Discard()), logging.Discard(), time.Second)
}

func do(t *testing.T, h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

const validBody = `{
	"vendorName": "Acme",
	"serviceName": "Backup",
	"deploymentType": "SaaS",
	"useCase": "Nightly backups",
	"numUsers": "25",
	"numRecords": 1000,
	"contactName": "Jo",
	"contactEmail": "jo@acme.example.com",
	"contactPhone": "555-0100",
	"certifications": ["SOC2.pdf"]
}`

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(common.RequestIDHeaderName))
}

func TestSubmit_Created(t *testing.T) {
	rec := do(t, newTestRouter(t, fakeDocuments{}, nil), http.MethodPost, "/api/v1/assessments", validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	out := decode(t, rec)
	a := out["assessment"].(map[string]any)
	assert.Equal(t, "Acme", a["vendorName"])
	assert.Equal(t, "pending", a["status"])
	assert.Equal(t, float64(25), a["numUsers"])

	uploads := out["uploads"].([]any)
	require.Len(t, uploads, 1)
	assert.Equal(t, "SOC2.pdf", uploads[0].(map[string]any)["name"])
}

func TestSubmit_IdempotencyKey(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	first := do(t, h, http.MethodPost, "/api/v1/assessments", validBody, common.IdempotencyKeyHeaderName, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)
	second := do(t, h, http.MethodPost, "/api/v1/assessments", validBody, common.IdempotencyKeyHeaderName, "key-1")
	require.Equal(t, http.StatusOK, second.Code)

	id1 := decode(t, first)["assessment"].(map[string]any)["id"]
	out := decode(t, second)
	assert.Equal(t, id1, out["assessment"].(map[string]any)["id"])
	assert.Equal(t, true, out["replayed"])

	list := decode(t, do(t, h, http.MethodGet, "/api/v1/assessments", ""))
	assert.Equal(t, float64(2), list["total"])
}

func TestSubmit_ValidationFields(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodPost, "/api/v1/assessments", `{"vendorName":"Acme","contactEmail":"nope"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	out := decode(t, rec)
	fields := out["fields"].(map[string]any)
	assert.Equal(t, "must be a valid email address", fields["contactEmail"])
	assert.Equal(t, "is required", fields["serviceName"])
	assert.NotContains(t, fields, "vendorName")
}

func TestSubmit_BadJSON(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodPost, "/api/v1/assessments", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmit_RateLimited(t *testing.T) {
	limiter := &fakeLimiter{allow: false}
	rec := do(t, newTestRouter(t, nil, limiter), http.MethodPost, "/api/v1/assessments", validBody)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, []string{"192.0.2.1"}, limiter.keys)
}

func TestSubmit_LimiterFailsOpen(t *testing.T) {
	limiter := &fakeLimiter{allow: true, err: errors.New("redis down")}
	rec := do(t, newTestRouter(t, nil, limiter), http.MethodPost, "/api/v1/assessments", validBody)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestList_FilterAndSort(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	body := strings.Replace(validBody, `"Acme"`, `"Zeta"`, 1)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/v1/assessments", body).Code)

	out := decode(t, do(t, h, http.MethodGet, "/api/v1/assessments?sort=vendorName&order=desc", ""))
	list := out["assessments"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "Zeta", list[0].(map[string]any)["vendorName"])
	assert.Equal(t, "CloudTech Solutions", list[1].(map[string]any)["vendorName"])

	out = decode(t, do(t, h, http.MethodGet, "/api/v1/assessments?search=data+storage", ""))
	assert.Equal(t, float64(1), out["total"])

	out = decode(t, do(t, h, http.MethodGet, "/api/v1/assessments?status=approved", ""))
	assert.Equal(t, float64(0), out["total"])
	assert.Empty(t, out["assessments"])
}

func TestList_BadQuery(t *testing.T) {
	h := newTestRouter(t, nil, nil)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/assessments?status=maybe", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/assessments?sort=useCase", "").Code)
}

func TestGet(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	out := decode(t, do(t, h, http.MethodGet, "/api/v1/assessments/1", ""))
	assert.Equal(t, "CloudTech Solutions", out["assessment"].(map[string]any)["vendorName"])
	assert.Equal(t, map[string]any{"class": "bg-yellow-100 text-yellow-800", "label": "Pending Review"}, out["badge"])

	rec := do(t, h, http.MethodGet, "/api/v1/assessments/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatus(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	rec := do(t, h, http.MethodPut, "/api/v1/assessments/1/status", `{"status":"rejected","reviewerNotes":"no SOC2"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decode(t, rec)
	assert.Equal(t, "rejected", out["status"])
	assert.Equal(t, "no SOC2", out["reviewerNotes"])

	got := decode(t, do(t, h, http.MethodGet, "/api/v1/assessments/1", ""))
	assert.Equal(t, "Rejected", got["badge"].(map[string]any)["label"])
}

func TestUpdateStatus_Errors(t *testing.T) {
	h := newTestRouter(t, nil, nil)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/api/v1/assessments/1/status", `{"status":"pending"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/api/v1/assessments/1/status", `{"status":"done"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/api/v1/assessments/1/status", `[`).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/api/v1/assessments/9/status", `{"status":"approved"}`).Code)
}

func TestDocument(t *testing.T) {
	h := newTestRouter(t, fakeDocuments{}, nil)

	rec := do(t, h, http.MethodGet, "/api/v1/assessments/1/documents/SLA.pdf", "")
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "https://s3.local/get/assessments/1/SLA.pdf", rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/api/v1/assessments/1/documents/secret.pdf", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDocument_StoreDisabled(t *testing.T) {
	rec := do(t, newTestRouter(t, nil, nil), http.MethodGet, "/api/v1/assessments/1/documents/SLA.pdf", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRecovery(t *testing.T) {
	h := Recovery(logging.Discard())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStatusFor_HidesInternalErrors(t *testing.T) {
	code, msg := statusFor(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "internal error", msg)
}
