package domain

import (
	"context"
	"time"
)

// Notification is an in-app message for a user, typically created by the
// reminder worker. It is mutated only by the owning user marking it read.
// swagger:model Notification
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   *string   `json:"event_id,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationRepository defines storage for notifications. MarkRead is
// scoped to the owning user: a notification belonging to someone else is
// ErrNotFound, not ErrForbidden, so ownership is never revealed.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUserID(ctx context.Context, userID string) ([]*Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

// NotificationService defines the user-facing notification operations.
type NotificationService interface {
	ListMine(ctx context.Context, principal Principal) ([]*Notification, error)
	MarkRead(ctx context.Context, principal Principal, id string) error
}
