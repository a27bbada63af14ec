package apperror

import (
	"errors"
	"fmt"
)

// Category identifies which class of failure an error belongs to. Callers
// branch on it: validation errors are fixed by correcting input, not found
// renders a dedicated view, store errors may be retried by the caller.
type Category string

const (
	CategoryValidation Category = "validation_error"
	CategoryNotFound   Category = "not_found"
	CategoryStore      Category = "store_error"
)

// Error is the application error carried across layer boundaries.
type Error struct {
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Err      error    `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match against the category sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Category == e.Category && (t.Message == "" || t.Message == e.Message)
}

// Category sentinels for errors.Is checks.
var (
	ErrValidation = &Error{Category: CategoryValidation}
	ErrNotFound   = &Error{Category: CategoryNotFound}
	ErrStore      = &Error{Category: CategoryStore}
)

func Validationf(format string, args ...interface{}) *Error {
	return &Error{
		Category: CategoryValidation,
		Message:  fmt.Sprintf(format, args...),
	}
}

func NotFound(resource string) *Error {
	return &Error{
		Category: CategoryNotFound,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

func Store(msg string, err error) *Error {
	return &Error{
		Category: CategoryStore,
		Message:  msg,
		Err:      err,
	}
}

// CategoryOf returns the category of err, or CategoryStore for anything
// that did not originate in this package. Unknown failures are treated as
// transient so the caller is offered a retry rather than blamed.
func CategoryOf(err error) Category {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Category
	}
	return CategoryStore
}
