package jobs

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"

	"eventplanner/internal/domain"
	"eventplanner/internal/services"
)

const (
	JobKindInvitationEmail = "invitation_email"
	JobKindEventReminder   = "event_reminder"
	JobKindReminderSweep   = "reminder_sweep"
)

const (
	EmailMaxAttempts = 5
	SweepMaxAttempts = 1
)

// RetryConfig controls per-kind retry behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryPolicy implements River's ClientRetryPolicy with per-kind
// exponential backoff.
type RetryPolicy struct {
	Default RetryConfig
	ByKind  map[string]RetryConfig
}

func NewRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		Default: RetryConfig{
			MaxAttempts: EmailMaxAttempts,
			BaseDelay:   30 * time.Second,
			MaxDelay:    30 * time.Minute,
		},
		ByKind: map[string]RetryConfig{
			// The sweep is periodic; a failed run is simply superseded by
			// the next one.
			JobKindReminderSweep: {
				MaxAttempts: SweepMaxAttempts,
			},
		},
	}
}

// NextRetry determines the next retry time for a failed job.
func (p *RetryPolicy) NextRetry(job *rivertype.JobRow) time.Time {
	config := p.configFor(job.Kind)
	if config.BaseDelay == 0 {
		return time.Now()
	}

	attempt := job.Attempt
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(config.BaseDelay) * math.Pow(2, float64(attempt-1)))
	if config.MaxDelay > 0 && delay > config.MaxDelay {
		delay = config.MaxDelay
	}

	if job.AttemptedAt != nil {
		return job.AttemptedAt.Add(delay)
	}
	return time.Now().Add(delay)
}

func (p *RetryPolicy) configFor(kind string) RetryConfig {
	if config, ok := p.ByKind[kind]; ok {
		return config
	}
	return p.Default
}

// NewWorkers creates an empty worker registry for RegisterWorkers.
func NewWorkers() *river.Workers {
	return river.NewWorkers()
}

// NewClientConfig builds a River client configuration with retry policy
// and the periodic reminder sweep.
func NewClientConfig(workers *river.Workers, logger *slog.Logger, periodicJobs []*river.PeriodicJob) *river.Config {
	policy := NewRetryPolicy()
	config := &river.Config{
		Workers:      workers,
		RetryPolicy:  policy,
		MaxAttempts:  policy.Default.MaxAttempts,
		PeriodicJobs: periodicJobs,
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
		},
	}
	if logger != nil {
		config.Logger = logger
	}
	return config
}

// NewClient creates a River client using pgx v5.
func NewClient(pool *pgxpool.Pool, workers *river.Workers, logger *slog.Logger, periodicJobs []*river.PeriodicJob) (*river.Client[pgx.Tx], error) {
	return river.NewClient(riverpgxv5.New(pool), NewClientConfig(workers, logger, periodicJobs))
}

// NewPeriodicJobs creates the periodic schedule: the reminder sweep runs
// hourly, matching the one hour window it looks ahead, and once at startup
// so a restart never leaves a window uncovered for a full hour.
func NewPeriodicJobs() []*river.PeriodicJob {
	return []*river.PeriodicJob{
		river.NewPeriodicJob(
			river.PeriodicInterval(services.ReminderSweep),
			func() (river.JobArgs, *river.InsertOpts) {
				return ReminderSweepArgs{}, nil
			},
			&river.PeriodicJobOpts{RunOnStart: true},
		),
	}
}

// Enqueuer implements domain.JobEnqueuer on top of a River client.
type Enqueuer struct {
	Client *river.Client[pgx.Tx]
}

func NewEnqueuer(client *river.Client[pgx.Tx]) *Enqueuer {
	return &Enqueuer{Client: client}
}

var _ domain.JobEnqueuer = (*Enqueuer)(nil)

func (e *Enqueuer) EnqueueInvitationEmail(ctx context.Context, invitationID string) error {
	_, err := e.Client.Insert(ctx, InvitationEmailArgs{InvitationID: invitationID}, nil)
	return err
}

// ScheduleReminder inserts the reminder job with ScheduledAt set to the
// exact reminder instant. Uniqueness by args makes re-scheduling the same
// (event, user) pair a no-op while the first job is still pending, which
// covers overlapping sweeps.
func (e *Enqueuer) ScheduleReminder(ctx context.Context, eventID, userID, message string, runAt time.Time) error {
	_, err := e.Client.Insert(ctx, EventReminderArgs{EventID: eventID, UserID: userID, Message: message}, &river.InsertOpts{
		ScheduledAt: runAt,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	return err
}
