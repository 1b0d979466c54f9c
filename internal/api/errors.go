package api

import "fmt"

// The client distinguishes three failure kinds so callers branch on type
// instead of inspecting message strings: transport failures, backend HTTP
// failures, and domain-rule violations signalled inside an otherwise
// successful payload.

// TransportError wraps a network or decode failure.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a failure the backend signalled through an HTTP status code.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: backend returned %d", e.Status)
}

// ValidationError is a domain rule the backend (or the client's own payload
// check) rejected. Code is stable; Message is user-facing Italian.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("api: %s: %s", e.Code, e.Message)
}

// Codes recognised in validation errors.
const (
	CodeGenderNotAllowed = "GENDER_NOT_ALLOWED"
	CodeInvalidInput     = "INVALID_INPUT"
)

const genderNotAllowedMessage = "Il genere selezionato non è consentito per questo slot"
