package domain

import (
	"context"
	"time"
)

// Role is the closed set of application roles carried in token claims.
type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleOrganizer Role = "organizer"
)

// ParseRole maps a claim string onto a known role. Unknown values fall back
// to attendee, the least privileged role.
func ParseRole(s string) Role {
	if s == string(RoleOrganizer) {
		return RoleOrganizer
	}
	return RoleAttendee
}

// Principal is the actor behind a request. Tokens come from the external
// identity provider; this service only verifies them and projects the
// claims. The zero Principal represents an anonymous request.
type Principal struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          Role   `json:"role"`
	Authenticated bool   `json:"-"`
}

// IsOrganizer reports whether the principal holds the organizer role.
func (p Principal) IsOrganizer() bool {
	return p.Authenticated && p.Role == RoleOrganizer
}

// User is the local projection of an identity-provider principal. Rows are
// upserted from verified token claims so background jobs can resolve a
// registrant's email without calling back to the provider.
// swagger:model User
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenIssuer issues bearer tokens for a principal. Used by tooling and
// tests; production tokens come from the identity provider.
type TokenIssuer interface {
	Issue(userID, email, name string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the principal it encodes.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// UserRepository defines storage for the local principal projection.
type UserRepository interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}
