package services

import (
	"context"
	"errors"
	"fmt"

	"eventplanner/internal/domain"
)

type notificationService struct {
	notificationRepo domain.NotificationRepository
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notificationRepo domain.NotificationRepository) domain.NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Notification, error) {
	if !principal.Authenticated {
		return nil, domain.Forbidden("authentication required")
	}
	notifications, err := s.notificationRepo.ListByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	if notifications == nil {
		notifications = []*domain.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, principal domain.Principal, id string) error {
	if !principal.Authenticated {
		return domain.Forbidden("authentication required")
	}
	if err := s.notificationRepo.MarkRead(ctx, id, principal.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}
