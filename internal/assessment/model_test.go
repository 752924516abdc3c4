package assessment

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessment_JSONFieldNames(t *testing.T) {
	a := SampleAssessments()[0]
	notes := "looks fine"
	a.ReviewerNotes = &notes
	a.RequestToken = "secret-token"

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	for _, k := range []string{
		"id", "submittedAt", "status", "vendorName", "serviceName", "deploymentType",
		"useCase", "numUsers", "numRecords", "contactInfo", "documents",
		"reviewerNotes", "lastUpdated",
	} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "RequestToken")
	assert.NotContains(t, m, "requestToken")
	assert.NotContains(t, m, "vendorWebsite")
	assert.Equal(t, "pending", m["status"])
	assert.Equal(t, "2024-03-10T10:00:00Z", m["submittedAt"])
}

func TestAssessment_NormalizeEmptyDocuments(t *testing.T) {
	a := &Assessment{}
	a.Normalize()

	b, err := json.Marshal(a.Documents)
	require.NoError(t, err)
	assert.JSONEq(t, `{"certifications":[],"additional":[]}`, string(b))
}

func TestAssessment_CloneIsDeep(t *testing.T) {
	orig := SampleAssessments()[0]
	notes := "n"
	orig.ReviewerNotes = &notes

	c := orig.Clone()
	if diff := cmp.Diff(orig, c, cmp.AllowUnexported(Status{})); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	c.Documents.Certifications[0] = "changed.pdf"
	*c.ReviewerNotes = "changed"
	assert.Equal(t, "ISO27001.pdf", orig.Documents.Certifications[0])
	assert.Equal(t, "n", orig.Notes())
}

func TestAssessment_Apply(t *testing.T) {
	a := SampleAssessments()[0]
	now := a.SubmittedAt.Add(time.Hour)

	a.Apply(StatusUpdate{Status: StatusApproved, ReviewerNotes: "ok"}, now)

	assert.Equal(t, StatusApproved, a.Status)
	assert.Equal(t, "ok", a.Notes())
	assert.Equal(t, now, a.LastUpdated)
}

func TestAssessment_ApplyBlankNotesClears(t *testing.T) {
	a := SampleAssessments()[0]
	notes := "old"
	a.ReviewerNotes = &notes

	a.Apply(StatusUpdate{Status: StatusRejected, ReviewerNotes: "   "}, a.SubmittedAt.Add(time.Minute))

	assert.Nil(t, a.ReviewerNotes)
}

func TestAssessment_ApplyNeverMovesBeforeSubmission(t *testing.T) {
	a := SampleAssessments()[0]
	skewed := a.SubmittedAt.Add(-24 * time.Hour)

	a.Apply(StatusUpdate{Status: StatusNeedsInfo}, skewed)

	assert.Equal(t, a.SubmittedAt, a.LastUpdated)
	assert.False(t, a.LastUpdated.Before(a.SubmittedAt))
}

func TestDocuments_Contains(t *testing.T) {
	d := SampleAssessments()[0].Documents
	assert.True(t, d.Contains("ISO27001.pdf"))
	assert.True(t, d.Contains("NDA.pdf"))
	assert.False(t, d.Contains("missing.pdf"))
}
