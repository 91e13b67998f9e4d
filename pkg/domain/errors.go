package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors
var (
	ErrMissingDocumentID = errors.New("missing required field: document_id")
	ErrMissingContent    = errors.New("missing required field: content")
)

// ValidationError is the input-validation fault raised when a payload is
// missing required fields or a field is malformed. It is always surfaced to
// the caller and never downgraded into a ProcessingResult.
type ValidationError struct {
	// DocumentID is the offending identifier when one was present in the
	// payload, otherwise empty.
	DocumentID string
	// Fields lists the individual field errors.
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "document validation failed"
	}
	return fmt.Sprintf("document validation failed: %s", strings.Join(e.Fields, "; "))
}

// NewValidationError builds a ValidationError for the given identifier and
// field errors.
func NewValidationError(documentID string, fields ...string) *ValidationError {
	return &ValidationError{DocumentID: documentID, Fields: fields}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
