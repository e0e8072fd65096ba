package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"eventplanner/internal/domain"
	"eventplanner/internal/services"
)

type InvitationEmailArgs struct {
	InvitationID string `json:"invitation_id"`
}

func (InvitationEmailArgs) Kind() string { return JobKindInvitationEmail }

// InvitationEmailWorker delivers the invitation email for a freshly created
// invitation. The invitation row is committed before the job is enqueued,
// so a missing row means it was deleted along with its event; that is a
// permanent condition, not a retryable one.
type InvitationEmailWorker struct {
	river.WorkerDefaults[InvitationEmailArgs]
	InvitationRepo domain.InvitationRepository
	EventRepo      domain.EventRepository
	UserRepo       domain.UserRepository
	Emails         domain.EmailService
	BaseURL        string
	Logger         *slog.Logger
}

func (InvitationEmailWorker) Kind() string { return JobKindInvitationEmail }

func (w InvitationEmailWorker) Work(ctx context.Context, job *river.Job[InvitationEmailArgs]) error {
	inv, err := w.InvitationRepo.GetByID(ctx, job.Args.InvitationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			w.Logger.WarnContext(ctx, "invitation gone before email delivery", "invitation_id", job.Args.InvitationID)
			return river.JobCancel(err)
		}
		return fmt.Errorf("load invitation: %w", err)
	}

	event, err := w.EventRepo.GetByID(ctx, inv.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return river.JobCancel(err)
		}
		return fmt.Errorf("load event: %w", err)
	}

	invitedBy := ""
	if inviter, err := w.UserRepo.GetByID(ctx, inv.InvitedByID); err == nil {
		invitedBy = inviter.Name
	}

	data := &domain.InvitationEmailData{
		Email:          inv.Email,
		EventName:      event.Name,
		InvitedBy:      invitedBy,
		InvitationLink: fmt.Sprintf("%s/api/v1/invitations/accept/%s", w.BaseURL, inv.Token),
	}
	if err := w.Emails.SendInvitation(ctx, data); err != nil {
		return fmt.Errorf("send invitation email: %w", err)
	}
	return nil
}

type EventReminderArgs struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

func (EventReminderArgs) Kind() string { return JobKindEventReminder }

// EventReminderWorker fires at the reminder instant. The world may have
// moved since the sweep scheduled the job, so it re-checks that the event
// is still upcoming and the registrant is still going before notifying.
type EventReminderWorker struct {
	river.WorkerDefaults[EventReminderArgs]
	EventRepo        domain.EventRepository
	RegistrationRepo domain.RegistrationRepository
	UserRepo         domain.UserRepository
	NotificationRepo domain.NotificationRepository
	Emails           domain.EmailService
	Logger           *slog.Logger
}

func (EventReminderWorker) Kind() string { return JobKindEventReminder }

func (w EventReminderWorker) Work(ctx context.Context, job *river.Job[EventReminderArgs]) error {
	event, err := w.EventRepo.GetByID(ctx, job.Args.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return river.JobCancel(err)
		}
		return fmt.Errorf("load event: %w", err)
	}
	if event.Status != domain.EventStatusUpcoming {
		w.Logger.InfoContext(ctx, "skipping reminder for non-upcoming event",
			"event_id", event.ID, "status", event.Status)
		return nil
	}

	reg, err := w.RegistrationRepo.GetByEventAndUser(ctx, job.Args.EventID, job.Args.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("load registration: %w", err)
	}
	if reg.Status != domain.RSVPGoing {
		return nil
	}

	user, err := w.UserRepo.GetByID(ctx, job.Args.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return river.JobCancel(err)
		}
		return fmt.Errorf("load user: %w", err)
	}

	notif := &domain.Notification{
		UserID:    user.ID,
		EventID:   &event.ID,
		Message:   job.Args.Message,
		CreatedAt: time.Now(),
	}
	if err := w.NotificationRepo.Create(ctx, notif); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	data := &domain.ReminderEmailData{
		Email:     user.Email,
		Name:      user.Name,
		EventName: event.Name,
		Message:   job.Args.Message,
	}
	if err := w.Emails.SendReminder(ctx, data); err != nil {
		// The in-app notification exists; a redelivered email after retry
		// is acceptable, a lost one is not.
		return fmt.Errorf("send reminder email: %w", err)
	}
	return nil
}

type ReminderSweepArgs struct{}

func (ReminderSweepArgs) Kind() string { return JobKindReminderSweep }

// ReminderSweepWorker runs the hourly reminder sweep.
type ReminderSweepWorker struct {
	river.WorkerDefaults[ReminderSweepArgs]
	Reminders *services.ReminderService
	Logger    *slog.Logger
}

func (ReminderSweepWorker) Kind() string { return JobKindReminderSweep }

func (w ReminderSweepWorker) Work(ctx context.Context, job *river.Job[ReminderSweepArgs]) error {
	scheduled, err := w.Reminders.Sweep(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("reminder sweep: %w", err)
	}
	w.Logger.InfoContext(ctx, "reminder sweep complete", "scheduled", scheduled)
	return nil
}

// RegisterWorkers registers every worker on the given registry.
func RegisterWorkers(
	workers *river.Workers,
	invitationWorker InvitationEmailWorker,
	reminderWorker EventReminderWorker,
	sweepWorker ReminderSweepWorker,
) {
	river.AddWorker(workers, invitationWorker)
	river.AddWorker(workers, reminderWorker)
	river.AddWorker(workers, sweepWorker)
}
