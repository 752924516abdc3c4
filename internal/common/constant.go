package common

// IdempotencyKeyHeaderName is the HTTP header carrying the intake request
// token. It overrides the token in the request body when both are present.
const IdempotencyKeyHeaderName = "Idempotency-Key"

// RequestIDHeaderName is echoed on every HTTP response.
const RequestIDHeaderName = "X-Request-ID"

// GenericSubmissionError is the only user-visible submission failure message.
const GenericSubmissionError = "An error occurred while submitting the form. Please try again."
