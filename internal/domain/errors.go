package domain

import "errors"

var (
	ErrNotFound     = errors.New("requested resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateSlug  = errors.New("slug already taken")

	ErrInvalidTimeFormat    = errors.New("time must be in HH:MM format")
	ErrDayOutOfRange        = errors.New("day is outside the event dates")
	ErrTalkAlreadyScheduled = errors.New("talk is already scheduled in this event")
	ErrSlotConflict         = errors.New("another slot starts at the same time")
	ErrTalkLookupFailed     = errors.New("talk not found")
	ErrTalkRequired         = errors.New("talk slots require a talk")

	ErrEventInUse     = errors.New("event has schedules or enrollments")
	ErrDeadlinePassed = errors.New("enrollment deadline has passed")
	ErrEventFull      = errors.New("event is fully booked")

	ErrPersisterNotRegistered = errors.New("no persister registered")
)

// FieldErrors maps a form field name to a localization key describing what
// is wrong with it.
type FieldErrors map[string]string

// ValidationFailed carries per-field errors from a rejected save. Callers
// unwrap it with errors.As to re-render the form instead of redirecting.
type ValidationFailed struct {
	Fields FieldErrors
}

func (e *ValidationFailed) Error() string {
	return "validation failed"
}

// NewValidationFailed builds a single-field validation error.
func NewValidationFailed(field, message string) *ValidationFailed {
	return &ValidationFailed{Fields: FieldErrors{field: message}}
}
