// Package common defines shared constants and sentinel errors used across
// client and server layers of vendorrisk. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Status errors.
	ErrorInvalidStatus  = errors.New("invalid status")
	ErrorInvalidColumn  = errors.New("invalid sort column")
	ErrorInvalidRequest = errors.New("invalid request")

	// Document store errors.
	ErrorDocumentStoreDisabled = errors.New("document store is not configured")
	ErrorDocumentNotFound      = errors.New("document not found")

	// Submission lifecycle errors.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	ErrSubmissionCanceled = errors.New("submission canceled")
)
