// Package catalog loads the ordered list of pages and existing meta titles to evaluate.
package catalog

import "fmt"

// LoadError reports a catalog that could not be read, or a row that failed validation.
// Row is 1-based and counts data rows only; zero means the error is not tied to a row.
type LoadError struct {
	Source  string
	Row     int
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	where := e.Source
	if e.Row > 0 {
		where = fmt.Sprintf("%s row %d", e.Source, e.Row)
	}
	if e.Cause != nil {
		return fmt.Sprintf("catalog error (%s): %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error (%s): %s", where, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
