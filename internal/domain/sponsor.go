package domain

import (
	"context"
	"time"
)

// Sponsor represents a sponsor that can back events.
// swagger:model Sponsor
type Sponsor struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	ContactEmail  string    `json:"contact_email,omitempty"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	LogoURL       string    `json:"logo_url,omitempty"`
	WebsiteURL    string    `json:"website_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SponsorRepository defines storage for sponsors.
type SponsorRepository interface {
	Create(ctx context.Context, s *Sponsor) error
	GetByID(ctx context.Context, id string) (*Sponsor, error)
	List(ctx context.Context) ([]*Sponsor, error)
	Update(ctx context.Context, s *Sponsor) error
	Delete(ctx context.Context, id string) error
}
