package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventplanner/internal/domain"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	invitationRepo   domain.InvitationRepository
	userRepo         domain.UserRepository
}

// NewRegistrationService creates a RegistrationService with the given
// repositories.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	invitationRepo domain.InvitationRepository,
	userRepo domain.UserRepository,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		invitationRepo:   invitationRepo,
		userRepo:         userRepo,
	}
}

func (s *registrationService) Register(ctx context.Context, principal domain.Principal, eventSlug string, status domain.RSVPStatus) (*domain.Registration, error) {
	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	hasInvite := false
	if event.IsPrivate && principal.Authenticated && !domain.IsOrganizerOf(principal, event) {
		hasInvite, err = s.invitationRepo.HasAccepted(ctx, event.ID, principal.Email)
		if err != nil {
			return nil, fmt.Errorf("check invitation: %w", err)
		}
	}
	if err := domain.CanRegister(principal, event, hasInvite); err != nil {
		return nil, err
	}

	if status == "" {
		status = domain.RSVPGoing
	}
	if !domain.ValidRSVPStatus(status) {
		return nil, fmt.Errorf("%w: unknown rsvp status %q", domain.ErrInvalidInput, status)
	}

	// Pre-check for a friendly conflict; the unique constraint on
	// (event_id, user_id) closes the race between this check and the insert.
	if _, err := s.registrationRepo.GetByEventAndUser(ctx, event.ID, principal.UserID); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	// Keep the local principal projection fresh so reminder jobs can
	// resolve the registrant's email later.
	now := time.Now()
	user := &domain.User{
		ID:        principal.UserID,
		Email:     principal.Email,
		Name:      principal.Name,
		Role:      principal.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	reg := domain.NewRegistration(event.ID, principal.UserID, status, now)
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Registration, error) {
	if !principal.Authenticated {
		return nil, domain.Forbidden("authentication required")
	}
	regs, err := s.registrationRepo.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, nil
}
