package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eventplanner/internal/domain"
)

type invitationService struct {
	eventRepo      domain.EventRepository
	invitationRepo domain.InvitationRepository
	userRepo       domain.UserRepository
	enqueuer       domain.JobEnqueuer
	logger         *slog.Logger
}

// NewInvitationService creates an InvitationService. Invitation emails are
// handed to the job queue; Send never waits on delivery.
func NewInvitationService(
	eventRepo domain.EventRepository,
	invitationRepo domain.InvitationRepository,
	userRepo domain.UserRepository,
	enqueuer domain.JobEnqueuer,
	logger *slog.Logger,
) domain.InvitationService {
	return &invitationService{
		eventRepo:      eventRepo,
		invitationRepo: invitationRepo,
		userRepo:       userRepo,
		enqueuer:       enqueuer,
		logger:         logger,
	}
}

const invitationTokenBytes = 32

func generateInvitationToken() (string, error) {
	b := make([]byte, invitationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func (s *invitationService) Send(ctx context.Context, principal domain.Principal, eventSlug, email string) (*domain.Invitation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := domain.CanInvite(principal, event); err != nil {
		return nil, err
	}

	// Pre-check for a friendly conflict; the unique constraint on
	// (event_id, email) is the backstop against concurrent sends.
	if _, err := s.invitationRepo.GetByEventAndEmail(ctx, event.ID, email); err == nil {
		return nil, domain.ErrAlreadyInvited
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	token, err := generateInvitationToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	now := time.Now()
	// The inviter may have no local row yet; invited_by_id references
	// users, so project the principal first.
	inviter := &domain.User{
		ID:        principal.UserID,
		Email:     principal.Email,
		Name:      principal.Name,
		Role:      principal.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.userRepo.Upsert(ctx, inviter); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	inv := domain.NewInvitation(event.ID, email, token, principal.UserID, now)
	if err := s.invitationRepo.Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrAlreadyInvited) {
			return nil, domain.ErrAlreadyInvited
		}
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	// The invitation row stands regardless of email outcome; delivery is
	// the queue's problem from here.
	if err := s.enqueuer.EnqueueInvitationEmail(ctx, inv.ID); err != nil {
		s.logger.ErrorContext(ctx, "enqueue invitation email", "invitation_id", inv.ID, "err", err)
		return nil, fmt.Errorf("enqueue invitation email: %w", err)
	}
	return inv, nil
}

func (s *invitationService) Accept(ctx context.Context, token string) (*domain.Invitation, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrNotFound
	}
	inv, err := s.invitationRepo.Accept(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("accept invitation: %w", err)
	}
	return inv, nil
}

func (s *invitationService) ListForEvent(ctx context.Context, principal domain.Principal, eventSlug string) ([]*domain.Invitation, error) {
	event, err := s.eventRepo.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := domain.CanModify(principal, event); err != nil {
		return nil, err
	}
	invs, err := s.invitationRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}
