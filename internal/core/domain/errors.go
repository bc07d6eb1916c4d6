package domain

import "errors"

// Error kinds. Every error surfaced by the services wraps exactly one of these,
// and the HTTP layer maps the kind to a status code.
var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("access forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrTooManyRequests = errors.New("too many requests")
)

var (
	ErrUserExists         = newError(ErrConflict, "You are already registered with us")
	ErrUserNotFound       = newError(ErrNotFound, "user not found")
	ErrInvalidCredentials = newError(ErrUnauthenticated, "Invalid credentials")
	ErrInvalidToken       = newError(ErrUnauthenticated, "invalid or expired token")
	ErrTooManyAttempts    = newError(ErrTooManyRequests, "too many failed login attempts, try again later")

	ErrBakerNotFound   = newError(ErrNotFound, "Baker not found")
	ErrLaundryNotFound = newError(ErrNotFound, "Laundry not found")
	ErrMedicalNotFound = newError(ErrNotFound, "Medical not found")
	ErrReportNotFound  = newError(ErrNotFound, "Report not found")
)

// kindError is a client-safe message tagged with one of the error kinds.
type kindError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// Invalid returns a BadRequest error carrying msg.
func Invalid(msg string) error {
	return newError(ErrBadRequest, msg)
}
