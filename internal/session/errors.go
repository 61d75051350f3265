// Package session drives one editor's comparison of candidate titles against a selected page.
package session

import "errors"

// ErrNoEntrySelected is returned by EvaluateTitle when the session is Idle.
var ErrNoEntrySelected = errors.New("no catalog entry selected")
