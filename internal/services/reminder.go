package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventplanner/internal/domain"
)

// Reminder timing: each registrant gets a reminder 24 hours before the
// event starts. The sweep runs on a coarse cadence and looks one window
// ahead, scheduling the delivery job for the exact reminder instant, so
// reminders are neither sent early nor re-caught by the next sweep as long
// as the cadence does not exceed the window. Duplicate scheduling from
// overlapping sweeps is additionally suppressed by the queue's unique-job
// guarantee.
const (
	ReminderLead  = 24 * time.Hour
	ReminderSweep = time.Hour
)

// ReminderService schedules reminder jobs for upcoming events.
type ReminderService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	enqueuer         domain.JobEnqueuer
	logger           *slog.Logger
}

func NewReminderService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	enqueuer domain.JobEnqueuer,
	logger *slog.Logger,
) *ReminderService {
	return &ReminderService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		enqueuer:         enqueuer,
		logger:           logger,
	}
}

// Sweep scans upcoming events and schedules a reminder job, targeted at
// exactly start − 24h, for every going registrant of each event whose
// reminder instant falls inside [now, now+1h). It returns the number of
// jobs scheduled. Per-event failures are logged and do not stop the sweep.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time) (int, error) {
	events, err := s.eventRepo.ListDueForReminder(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list upcoming events: %w", err)
	}

	scheduled := 0
	for _, event := range events {
		reminderTime := event.StartsAt.Add(-ReminderLead)
		if reminderTime.Before(now) || !reminderTime.Before(now.Add(ReminderSweep)) {
			continue
		}

		regs, err := s.registrationRepo.ListByEventAndStatus(ctx, event.ID, domain.RSVPGoing)
		if err != nil {
			s.logger.ErrorContext(ctx, "list registrations for reminder", "event_id", event.ID, "err", err)
			continue
		}
		message := fmt.Sprintf("Just a friendly reminder: %q is starting on %s!",
			event.Name, event.StartsAt.Format("Jan 2, 2006 at 15:04 MST"))
		for _, reg := range regs {
			if err := s.enqueuer.ScheduleReminder(ctx, event.ID, reg.UserID, message, reminderTime); err != nil {
				s.logger.ErrorContext(ctx, "schedule reminder", "event_id", event.ID, "user_id", reg.UserID, "err", err)
				continue
			}
			scheduled++
		}
	}
	return scheduled, nil
}
