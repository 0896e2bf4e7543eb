package api

import (
	"fmt"
	"net/http"
)

// APIError is the decoded shopfront error envelope: HTTP status, the string
// code from ErrorResponse (invalid_argument, conflict, confirm_required, ...),
// the numeric code from the server taxonomy, and the human-readable message.
type APIError struct {
	Status    int
	Code      string
	ErrorCode int
	Message   string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	if e.Code != "" && e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Status > 0 {
		return fmt.Sprintf("api error: %d", e.Status)
	}
	return "api error"
}

// NotFound reports whether the server rejected the request because the
// product, blog post, or category does not exist.
func (e *APIError) NotFound() bool {
	return e != nil && e.Status == http.StatusNotFound
}

// RevisionConflict reports whether a category write lost the revision
// compare-and-swap. The caller should re-read the set and retry.
func (e *APIError) RevisionConflict() bool {
	return e != nil && e.Status == http.StatusConflict
}

// ConfirmRequired reports whether a destructive request was sent without
// the X-Confirm header.
func (e *APIError) ConfirmRequired() bool {
	return e != nil && e.Status == http.StatusPreconditionRequired
}
