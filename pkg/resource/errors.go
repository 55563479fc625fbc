package resource

import (
	"sort"
	"strings"

	"github.com/go-faster/errors"
)

var (
	ErrControllerClosed = errors.New("resource: controller is unmounted")
	ErrAlreadyMounted   = errors.New("resource: controller already mounted")
	ErrNotReady         = errors.New("resource: list is not ready")
	ErrNotRetryable     = errors.New("resource: retry is only allowed after a failed load")
	ErrNotFound         = errors.New("resource: entity not found")
	ErrNotConfirmed     = errors.New("resource: delete was not confirmed")
	ErrFormBusy         = errors.New("resource: form is submitting")
	ErrFormClosed       = errors.New("resource: form is closed")
	ErrReadOnly         = errors.New("resource: form is read-only")
	ErrMissingID        = errors.New("resource: entity has no id")
	ErrDiscarded        = errors.New("resource: result arrived after the form was reset")
)

// ValidationError reports field level failures found before any repository
// call. Fields maps field name to a user-facing message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "resource: validation failed: " + strings.Join(names, ", ")
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
