package domain

import (
	"context"
	"time"
)

// RSVPStatus is an attendee's answer for an event.
type RSVPStatus string

const (
	RSVPGoing    RSVPStatus = "going"
	RSVPNotGoing RSVPStatus = "not_going"
	RSVPMaybe    RSVPStatus = "maybe"
)

// ValidRSVPStatus reports whether s is one of the known RSVP statuses.
func ValidRSVPStatus(s RSVPStatus) bool {
	switch s {
	case RSVPGoing, RSVPNotGoing, RSVPMaybe:
		return true
	}
	return false
}

// Registration represents a user's RSVP for an event. At most one exists
// per (event, user); the store enforces this with a unique constraint.
// swagger:model Registration
type Registration struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Status    RSVPStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewRegistration creates a Registration. ID is set by the repository on
// create.
func NewRegistration(eventID, userID string, status RSVPStatus, createdAt time.Time) *Registration {
	return &Registration{
		EventID:   eventID,
		UserID:    userID,
		Status:    status,
		CreatedAt: createdAt,
	}
}

// RegistrationRepository defines storage for registrations. Create must
// surface a unique-constraint violation on (event_id, user_id) as
// ErrAlreadyRegistered; that constraint, not the caller's pre-check, is the
// final authority against concurrent duplicates.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Registration, error)
	ListByEventAndStatus(ctx context.Context, eventID string, status RSVPStatus) ([]*Registration, error)
	ListByUserID(ctx context.Context, userID string) ([]*Registration, error)
}

// RegistrationService defines the registration workflow.
type RegistrationService interface {
	// Register creates an RSVP for the event with the given slug. status may
	// be empty, defaulting to going.
	Register(ctx context.Context, principal Principal, eventSlug string, status RSVPStatus) (*Registration, error)
	ListMine(ctx context.Context, principal Principal) ([]*Registration, error)
}
