package domain

import "context"

// CatalogService covers the reference entities referenced by events:
// venues, speakers, sponsors, categories and tags. Reads are public;
// writes require authentication (enforced at the router).
type CatalogService interface {
	CreateVenue(ctx context.Context, v *Venue) error
	GetVenue(ctx context.Context, id string) (*Venue, error)
	ListVenues(ctx context.Context) ([]*Venue, error)
	UpdateVenue(ctx context.Context, v *Venue) error
	DeleteVenue(ctx context.Context, id string) error

	CreateSpeaker(ctx context.Context, s *Speaker) error
	GetSpeaker(ctx context.Context, id string) (*Speaker, error)
	ListSpeakers(ctx context.Context) ([]*Speaker, error)
	UpdateSpeaker(ctx context.Context, s *Speaker) error
	DeleteSpeaker(ctx context.Context, id string) error

	CreateSponsor(ctx context.Context, s *Sponsor) error
	GetSponsor(ctx context.Context, id string) (*Sponsor, error)
	ListSponsors(ctx context.Context) ([]*Sponsor, error)
	UpdateSponsor(ctx context.Context, s *Sponsor) error
	DeleteSponsor(ctx context.Context, id string) error

	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	CreateTag(ctx context.Context, name string) (*Tag, error)
	ListTags(ctx context.Context) ([]*Tag, error)
}
