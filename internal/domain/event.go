package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle status of an event. Transitions are not
// constrained by the API, but completed and cancelled are terminal for
// reminder scheduling.
type EventStatus string

const (
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

// ValidEventStatus reports whether s is one of the known statuses.
func ValidEventStatus(s EventStatus) bool {
	switch s {
	case EventStatusUpcoming, EventStatusActive, EventStatusCancelled, EventStatusCompleted:
		return true
	}
	return false
}

// Event represents an event. The slug is unique, derived from the name on
// creation, and immutable afterwards. Private events are visible only to
// their organizer and accepted invitees.
// swagger:model Event
type Event struct {
	ID           string      `json:"id"`
	Slug         string      `json:"slug"`
	OrganizerID  string      `json:"organizer_id"`
	VenueID      *string     `json:"venue_id,omitempty"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	StartsAt     time.Time   `json:"starts_at"`
	EndsAt       time.Time   `json:"ends_at"`
	Status       EventStatus `json:"status"`
	MaxAttendees *int        `json:"max_attendees,omitempty"`
	TicketPrice  *float64    `json:"ticket_price,omitempty"`
	IsPrivate    bool        `json:"is_private"`
	Categories   []*Category `json:"categories,omitempty"`
	Tags         []*Tag      `json:"tags,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// NewEvent returns a new Event with status upcoming. ID and Slug are set by
// the service on create.
func NewEvent(organizerID, name, description string, startsAt, endsAt time.Time, createdAt time.Time) *Event {
	return &Event{
		OrganizerID: organizerID,
		Name:        name,
		Description: description,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Status:      EventStatusUpcoming,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// EventFilter holds the supported list filters. Zero values mean "no
// constraint". Visibility scoping is applied on top of these from the
// requesting principal.
type EventFilter struct {
	Search      string
	StartDate   *time.Time
	EndDate     *time.Time
	City        string
	State       string
	OrganizerID string
	Category    string
	Tag         string
}

// EventUpdate carries the mutable event fields for partial updates. Nil
// pointers leave the stored value unchanged. Slug is immutable once set.
type EventUpdate struct {
	Name         *string
	Description  *string
	StartsAt     *time.Time
	EndsAt       *time.Time
	VenueID      *string
	Status       *EventStatus
	MaxAttendees *int
	TicketPrice  *float64
	IsPrivate    *bool
}

// EventRepository defines the interface for event storage. List applies the
// same visibility predicate set-wise that CanView applies per event: public
// events, plus (for an authenticated viewer) events organized by viewerID
// and events holding an accepted invitation for viewerEmail, deduplicated.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, filter EventFilter, viewerID, viewerEmail string) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	SetCategories(ctx context.Context, eventID string, categoryIDs []string) error
	SetTags(ctx context.Context, eventID string, tagIDs []string) error
	// ListDueForReminder returns events with status upcoming starting after now.
	ListDueForReminder(ctx context.Context, now time.Time) ([]*Event, error)
}

// EventInput carries the fields accepted when creating an event.
type EventInput struct {
	Name         string
	Description  string
	StartsAt     time.Time
	EndsAt       time.Time
	VenueID      *string
	MaxAttendees *int
	TicketPrice  *float64
	IsPrivate    bool
	CategoryIDs  []string
	TagIDs       []string
}

// EventService defines event CRUD with visibility and authorization applied.
type EventService interface {
	Create(ctx context.Context, principal Principal, in EventInput) (*Event, error)
	GetBySlug(ctx context.Context, principal Principal, slug string) (*Event, error)
	List(ctx context.Context, principal Principal, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, principal Principal, slug string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, principal Principal, slug string) error
}
