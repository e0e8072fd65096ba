package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker that can appear at events.
// swagger:model Speaker
type Speaker struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Title        string    `json:"title,omitempty"`
	PhotoURL     string    `json:"photo_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SpeakerRepository defines storage for speakers. Email is unique.
type SpeakerRepository interface {
	Create(ctx context.Context, s *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	List(ctx context.Context) ([]*Speaker, error)
	Update(ctx context.Context, s *Speaker) error
	Delete(ctx context.Context, id string) error
}
