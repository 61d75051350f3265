package embedding

import (
	"errors"
	"fmt"
)

// Reason classifies why an embedding could not be produced.
type Reason string

const (
	// ReasonEmptyInput means the text was empty or whitespace only
	ReasonEmptyInput Reason = "empty_input"
	// ReasonEmptyResponse means the backend returned no vector
	ReasonEmptyResponse Reason = "empty_response"
	// ReasonProviderError covers backend and client initialization failures
	ReasonProviderError Reason = "provider_error"
)

// EmbeddingError reports a failed Embed call.
type EmbeddingError struct {
	Reason  Reason
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	msg := string(e.Reason)
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", e.Reason, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("embedding error: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("embedding error: %s", msg)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}

// IsEmptyInput reports whether err was caused by empty input text.
func IsEmptyInput(err error) bool {
	var embErr *EmbeddingError
	return errors.As(err, &embErr) && embErr.Reason == ReasonEmptyInput
}
