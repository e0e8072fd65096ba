package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.InvitationRepository
	categoryRepo   domain.CategoryRepository
	tagRepo        domain.TagRepository
	userRepo       domain.UserRepository
	contextTimeout time.Duration
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(
	eventRepo domain.EventRepository,
	invitationRepo domain.InvitationRepository,
	categoryRepo domain.CategoryRepository,
	tagRepo domain.TagRepository,
	userRepo domain.UserRepository,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		categoryRepo:   categoryRepo,
		tagRepo:        tagRepo,
		userRepo:       userRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) Create(ctx context.Context, principal domain.Principal, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := domain.CanCreate(principal); err != nil {
		return nil, err
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	now := time.Now()
	event := domain.NewEvent(principal.UserID, strings.TrimSpace(in.Name), in.Description, in.StartsAt, in.EndsAt, now)
	event.Slug = domain.Slugify(event.Name)
	event.VenueID = in.VenueID
	event.MaxAttendees = in.MaxAttendees
	event.TicketPrice = in.TicketPrice
	event.IsPrivate = in.IsPrivate

	// Pre-check the slug for a friendly error; the unique index is the
	// final authority and surfaces the same ErrDuplicateSlug on insert.
	if _, err := s.eventRepo.GetBySlug(ctx, event.Slug); err == nil {
		return nil, domain.ErrDuplicateSlug
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check slug: %w", err)
	}

	// Tokens mint principals the database has never seen; the organizer
	// row has to exist before events.organizer_id can reference it.
	organizer := &domain.User{
		ID:        principal.UserID,
		Email:     principal.Email,
		Name:      principal.Name,
		Role:      principal.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Upsert(ctx, organizer); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if len(in.CategoryIDs) > 0 {
		if err := s.eventRepo.SetCategories(ctx, event.ID, in.CategoryIDs); err != nil {
			return nil, fmt.Errorf("set categories: %w", err)
		}
	}
	if len(in.TagIDs) > 0 {
		if err := s.eventRepo.SetTags(ctx, event.ID, in.TagIDs); err != nil {
			return nil, fmt.Errorf("set tags: %w", err)
		}
	}
	return event, nil
}

func validateEventInput(in domain.EventInput) error {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	} else if domain.Slugify(in.Name) == "" {
		errs = append(errs, "name must contain at least one letter or digit")
	}
	if strings.TrimSpace(in.Description) == "" {
		errs = append(errs, "description is required")
	}
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() {
		errs = append(errs, "starts_at and ends_at are required")
	} else if in.EndsAt.Before(in.StartsAt) {
		errs = append(errs, "ends_at must not be before starts_at")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(errs, "; "))
	}
	return nil
}

func (s *eventService) GetBySlug(ctx context.Context, principal domain.Principal, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	hasInvite, err := s.hasAcceptedInvite(ctx, principal, event)
	if err != nil {
		return nil, err
	}
	if err := domain.CanView(principal, event, hasInvite); err != nil {
		return nil, err
	}

	if err := s.attachLabels(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, principal domain.Principal, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	viewerID, viewerEmail := "", ""
	if principal.Authenticated {
		viewerID = principal.UserID
		viewerEmail = principal.Email
	}
	events, err := s.eventRepo.List(ctx, filter, viewerID, viewerEmail)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) Update(ctx context.Context, principal domain.Principal, slug string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := domain.CanModify(principal, event); err != nil {
		return nil, err
	}
	if upd.Status != nil && !domain.ValidEventStatus(*upd.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *upd.Status)
	}
	// Validate the endpoints the event would have after the update, so a
	// single-endpoint change cannot slip an inverted range past the check.
	starts, ends := event.StartsAt, event.EndsAt
	if upd.StartsAt != nil {
		starts = *upd.StartsAt
	}
	if upd.EndsAt != nil {
		ends = *upd.EndsAt
	}
	if ends.Before(starts) {
		return nil, fmt.Errorf("%w: ends_at must not be before starts_at", domain.ErrInvalidInput)
	}

	updated, err := s.eventRepo.Update(ctx, event.ID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, principal domain.Principal, slug string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if err := domain.CanModify(principal, event); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, event.ID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// hasAcceptedInvite resolves the accepted-invitation fact consumed by the
// authorization predicates. Only private events for authenticated
// non-organizers need the lookup.
func (s *eventService) hasAcceptedInvite(ctx context.Context, principal domain.Principal, event *domain.Event) (bool, error) {
	if !event.IsPrivate || !principal.Authenticated || domain.IsOrganizerOf(principal, event) {
		return false, nil
	}
	ok, err := s.invitationRepo.HasAccepted(ctx, event.ID, principal.Email)
	if err != nil {
		return false, fmt.Errorf("check invitation: %w", err)
	}
	return ok, nil
}

func (s *eventService) attachLabels(ctx context.Context, event *domain.Event) error {
	cats, err := s.categoryRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list event categories: %w", err)
	}
	tags, err := s.tagRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list event tags: %w", err)
	}
	event.Categories = cats
	event.Tags = tags
	return nil
}
