package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type catalogService struct {
	venueRepo    domain.VenueRepository
	speakerRepo  domain.SpeakerRepository
	sponsorRepo  domain.SponsorRepository
	categoryRepo domain.CategoryRepository
	tagRepo      domain.TagRepository
}

// NewCatalogService creates a CatalogService over the reference-entity
// repositories.
func NewCatalogService(
	venueRepo domain.VenueRepository,
	speakerRepo domain.SpeakerRepository,
	sponsorRepo domain.SponsorRepository,
	categoryRepo domain.CategoryRepository,
	tagRepo domain.TagRepository,
) domain.CatalogService {
	return &catalogService{
		venueRepo:    venueRepo,
		speakerRepo:  speakerRepo,
		sponsorRepo:  sponsorRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
	}
}

func (s *catalogService) CreateVenue(ctx context.Context, v *domain.Venue) error {
	if strings.TrimSpace(v.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	v.CreatedAt, v.UpdatedAt = now, now
	return s.venueRepo.Create(ctx, v)
}

func (s *catalogService) GetVenue(ctx context.Context, id string) (*domain.Venue, error) {
	return s.venueRepo.GetByID(ctx, id)
}

func (s *catalogService) ListVenues(ctx context.Context) ([]*domain.Venue, error) {
	return s.venueRepo.List(ctx)
}

func (s *catalogService) UpdateVenue(ctx context.Context, v *domain.Venue) error {
	v.UpdatedAt = time.Now()
	return s.venueRepo.Update(ctx, v)
}

func (s *catalogService) DeleteVenue(ctx context.Context, id string) error {
	return s.venueRepo.Delete(ctx, id)
}

func (s *catalogService) CreateSpeaker(ctx context.Context, sp *domain.Speaker) error {
	if strings.TrimSpace(sp.FirstName) == "" || strings.TrimSpace(sp.Email) == "" {
		return fmt.Errorf("%w: first_name and email are required", domain.ErrInvalidInput)
	}
	now := time.Now()
	sp.CreatedAt, sp.UpdatedAt = now, now
	return s.speakerRepo.Create(ctx, sp)
}

func (s *catalogService) GetSpeaker(ctx context.Context, id string) (*domain.Speaker, error) {
	return s.speakerRepo.GetByID(ctx, id)
}

func (s *catalogService) ListSpeakers(ctx context.Context) ([]*domain.Speaker, error) {
	return s.speakerRepo.List(ctx)
}

func (s *catalogService) UpdateSpeaker(ctx context.Context, sp *domain.Speaker) error {
	sp.UpdatedAt = time.Now()
	return s.speakerRepo.Update(ctx, sp)
}

func (s *catalogService) DeleteSpeaker(ctx context.Context, id string) error {
	return s.speakerRepo.Delete(ctx, id)
}

func (s *catalogService) CreateSponsor(ctx context.Context, sp *domain.Sponsor) error {
	if strings.TrimSpace(sp.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	now := time.Now()
	sp.CreatedAt, sp.UpdatedAt = now, now
	return s.sponsorRepo.Create(ctx, sp)
}

func (s *catalogService) GetSponsor(ctx context.Context, id string) (*domain.Sponsor, error) {
	return s.sponsorRepo.GetByID(ctx, id)
}

func (s *catalogService) ListSponsors(ctx context.Context) ([]*domain.Sponsor, error) {
	return s.sponsorRepo.List(ctx)
}

func (s *catalogService) UpdateSponsor(ctx context.Context, sp *domain.Sponsor) error {
	sp.UpdatedAt = time.Now()
	return s.sponsorRepo.Update(ctx, sp)
}

func (s *catalogService) DeleteSponsor(ctx context.Context, id string) error {
	return s.sponsorRepo.Delete(ctx, id)
}

func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	c := &domain.Category{Name: name, Slug: domain.Slugify(name)}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogService) CreateTag(ctx context.Context, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	t := &domain.Tag{Name: name, Slug: domain.Slugify(name)}
	if err := s.tagRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *catalogService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.tagRepo.List(ctx)
}
