package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrNameTaken           = fmt.Errorf("participant name already taken")
	ErrParticipantNotFound = fmt.Errorf("participant not found")
	ErrUnknownSender       = fmt.Errorf("unknown sender")
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrEmptyWords          = fmt.Errorf("no words have been found")
)

// ValidationError carries every violation found in a payload so clients
// can display the full list, not just the first failure.
type ValidationError struct {
	Violations []string
}

func NewValidationError(violations ...string) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	return "invalid payload: " + strings.Join(e.Violations, "; ")
}

// Violations extracts the violation list when err wraps a ValidationError,
// nil otherwise. Handlers use it to build 422 bodies.
func Violations(err error) []string {
	var vErr *ValidationError
	if stderrors.As(err, &vErr) {
		return vErr.Violations
	}
	return nil
}

// HTTPStatus maps the error taxonomy onto response codes. Validation and
// conflict/not-found errors are expected and user-facing; anything else is
// treated as a store failure and stays opaque to the caller.
func HTTPStatus(err error) int {
	var vErr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.As(err, &vErr), stderrors.Is(err, ErrUnknownSender):
		return http.StatusUnprocessableEntity
	case stderrors.Is(err, ErrNameTaken):
		return http.StatusConflict
	case stderrors.Is(err, ErrParticipantNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
