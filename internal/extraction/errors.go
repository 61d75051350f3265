// Package extraction turns a page URL into normalized heading and body text ready for embedding.
package extraction

import (
	"errors"
	"fmt"
)

// Reason classifies why an extraction failed.
type Reason string

const (
	// ReasonHTTPError covers non-2xx responses and transport failures
	ReasonHTTPError Reason = "http_error"
	// ReasonMissingFields means the heading or the body could not be found
	ReasonMissingFields Reason = "missing_fields"
)

var (
	// ErrHeadingNotFound is returned by a Strategy when no heading matches
	ErrHeadingNotFound = errors.New("heading not found")
	// ErrBodyNotFound is returned by a Strategy when no body region matches
	ErrBodyNotFound = errors.New("body not found")
)

// ExtractionError reports a failed extraction for one URL.
type ExtractionError struct {
	URL    string
	Reason Reason
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.URL, e.Reason, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.URL, e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// IsReason reports whether err is an ExtractionError with the given reason.
func IsReason(err error, reason Reason) bool {
	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		return extErr.Reason == reason
	}
	return false
}
