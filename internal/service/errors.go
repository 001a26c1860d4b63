package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/teachscope/teachscope/internal/model"
)

// The controller maps these onto HTTP statuses: validation → 422,
// authorization → 403, state precondition → 409/422, not found → 404,
// write conflict → 409.

// ErrNotFound wraps the storage layer's record-not-found.
var ErrNotFound = errors.New("record not found")

// ErrConflict reports a lost transition race: another caller changed the
// observation's status between our read and our write.
var ErrConflict = errors.New("observation was modified concurrently")

// AuthorizationError rejects an operation because of who asked, not what
// state the record is in.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// StateError rejects a transition requested from a state that does not
// permit it. Kept distinct from AuthorizationError so callers can explain
// "why" separately from "who".
type StateError struct {
	Action  Action
	Current model.Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("action %s is not allowed while observation is %s", e.Action, e.Current)
}

// ValidationError carries the complete set of input failures from one pass.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}
