package domain

import (
	"context"
	"time"
)

// Invitation represents an email invited to a private event. The token is
// the credential for acceptance: accepting requires no authentication, only
// exact knowledge of the token. The state machine is one-way: pending
// (accepted=false) to accepted (accepted=true, AcceptedAt stamped), terminal.
// swagger:model Invitation
type Invitation struct {
	ID          string     `json:"id"`
	EventID     string     `json:"event_id"`
	Email       string     `json:"email"`
	Token       string     `json:"-"`
	Accepted    bool       `json:"accepted"`
	InvitedByID string     `json:"invited_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty"`
}

// NewInvitation creates a pending Invitation. ID is set by the repository
// on create.
func NewInvitation(eventID, email, token, invitedByID string, createdAt time.Time) *Invitation {
	return &Invitation{
		EventID:     eventID,
		Email:       email,
		Token:       token,
		InvitedByID: invitedByID,
		CreatedAt:   createdAt,
	}
}

// InvitationRepository defines storage for invitations. Create must surface
// a unique violation on (event_id, email) as ErrAlreadyInvited. Accept must
// atomically flip exactly one pending invitation with the given token to
// accepted, returning ErrNotFound when no pending row matches; an already
// accepted token is indistinguishable from an unknown one.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByID(ctx context.Context, id string) (*Invitation, error)
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Invitation, error)
	HasAccepted(ctx context.Context, eventID, email string) (bool, error)
	Accept(ctx context.Context, token string, at time.Time) (*Invitation, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
}

// InvitationService defines the invitation lifecycle.
type InvitationService interface {
	// Send creates a pending invitation for the private event with the given
	// slug and enqueues the invitation email. It returns once the invitation
	// row is committed and the job is enqueued; delivery is asynchronous.
	Send(ctx context.Context, principal Principal, eventSlug, email string) (*Invitation, error)
	// Accept transitions the pending invitation with this token to accepted.
	Accept(ctx context.Context, token string) (*Invitation, error)
	ListForEvent(ctx context.Context, principal Principal, eventSlug string) ([]*Invitation, error)
}
