// Package assessment defines the vendor risk assessment record shared by the
// intake flow, the review service and the reviewer dashboard, together with
// the pure filter and sort functions that derive dashboard views from it.
package assessment

import (
	"slices"
	"strings"
	"time"
)

// ContactInfo is the vendor contact embedded in an assessment.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Documents lists supporting document file names. Both lists are always
// present, possibly empty.
type Documents struct {
	Certifications []string `json:"certifications"`
	Additional     []string `json:"additional"`
}

// Contains reports whether name appears in either list.
func (d Documents) Contains(name string) bool {
	return slices.Contains(d.Certifications, name) || slices.Contains(d.Additional, name)
}

// Assessment is one vendor risk submission under review.
type Assessment struct {
	ID             string      `json:"id"`
	SubmittedAt    time.Time   `json:"submittedAt"`
	Status         Status      `json:"status"`
	VendorName     string      `json:"vendorName"`
	ServiceName    string      `json:"serviceName"`
	DeploymentType string      `json:"deploymentType"`
	UseCase        string      `json:"useCase"`
	NumUsers       int64       `json:"numUsers"`
	NumRecords     int64       `json:"numRecords"`
	VendorWebsite  string      `json:"vendorWebsite,omitempty"`
	ContactInfo    ContactInfo `json:"contactInfo"`
	Documents      Documents   `json:"documents"`
	ReviewerNotes  *string     `json:"reviewerNotes,omitempty"`
	LastUpdated    time.Time   `json:"lastUpdated"`

	// RequestToken is the intake idempotency key. It never leaves the server.
	RequestToken string `json:"-"`
}

// Normalize replaces nil document lists with empty ones.
func (a *Assessment) Normalize() {
	if a.Documents.Certifications == nil {
		a.Documents.Certifications = []string{}
	}
	if a.Documents.Additional == nil {
		a.Documents.Additional = []string{}
	}
}

// Clone returns a deep copy so callers cannot mutate stored records.
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	c := *a
	c.Documents = Documents{
		Certifications: slices.Clone(a.Documents.Certifications),
		Additional:     slices.Clone(a.Documents.Additional),
	}
	if a.ReviewerNotes != nil {
		notes := *a.ReviewerNotes
		c.ReviewerNotes = &notes
	}
	c.Normalize()
	return &c
}

// Notes returns the reviewer notes or an empty string.
func (a *Assessment) Notes() string {
	if a.ReviewerNotes == nil {
		return ""
	}
	return *a.ReviewerNotes
}

// StatusUpdate is the combined payload of a reviewer decision: the target
// status and the notes that go with it.
type StatusUpdate struct {
	Status        Status `json:"status"`
	ReviewerNotes string `json:"reviewerNotes"`
}

// Apply writes u into a and advances LastUpdated to now, never moving it
// before SubmittedAt or backwards.
func (a *Assessment) Apply(u StatusUpdate, now time.Time) {
	a.Status = u.Status
	if notes := strings.TrimSpace(u.ReviewerNotes); notes != "" {
		n := u.ReviewerNotes
		a.ReviewerNotes = &n
	} else {
		a.ReviewerNotes = nil
	}
	a.LastUpdated = latest(now, a.SubmittedAt, a.LastUpdated)
}

func latest(ts ...time.Time) time.Time {
	var out time.Time
	for _, t := range ts {
		if t.After(out) {
			out = t
		}
	}
	return out
}
