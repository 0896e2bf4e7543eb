package api

import (
	"net/http"
	"testing"
)

func TestAPIErrorHelpers(t *testing.T) {
	conflict := &APIError{Status: http.StatusConflict, Code: "conflict", Message: "category set changed"}
	if !conflict.RevisionConflict() {
		t.Fatal("409 must report a revision conflict")
	}
	if conflict.Error() != "conflict: category set changed" {
		t.Fatalf("unexpected message: %q", conflict.Error())
	}

	if !(&APIError{Status: http.StatusNotFound}).NotFound() {
		t.Fatal("404 must report not found")
	}
	if !(&APIError{Status: http.StatusPreconditionRequired}).ConfirmRequired() {
		t.Fatal("428 must report confirmation required")
	}

	var nilErr *APIError
	if nilErr.NotFound() || nilErr.RevisionConflict() || nilErr.ConfirmRequired() {
		t.Fatal("nil error reports nothing")
	}
	if nilErr.Error() != "" {
		t.Fatalf("nil error message must be empty, got %q", nilErr.Error())
	}
}
