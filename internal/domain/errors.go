package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories map
// store-level conditions (no rows, unique violations) onto these so callers
// can branch with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrNotPrivate        = errors.New("event is not private")
	ErrAlreadyRegistered = errors.New("already registered for this event")
	ErrAlreadyInvited    = errors.New("an invitation for this email already exists")
	ErrDuplicateSlug     = errors.New("slug already in use")
	ErrInvalidInput      = errors.New("invalid input")
)

// AuthzError is an authorization denial carrying a human-readable reason.
// It unwraps to ErrForbidden unless a more specific sentinel is set, so
// errors.Is(err, ErrForbidden) holds for every policy denial.
type AuthzError struct {
	Reason   string
	Sentinel error
}

func (e *AuthzError) Error() string { return e.Reason }

func (e *AuthzError) Unwrap() error {
	if e.Sentinel != nil {
		return e.Sentinel
	}
	return ErrForbidden
}

// Forbidden returns an AuthzError with the given reason.
func Forbidden(reason string) error {
	return &AuthzError{Reason: reason}
}

// AuthzReason extracts the reason from an authorization error, falling back
// to the error's own message.
func AuthzReason(err error) string {
	var ae *AuthzError
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return err.Error()
}
