package domain

import (
	"context"
	"time"
)

// JobEnqueuer hands side-effecting work to the durable job queue. The core
// only guarantees "job enqueued at least once with the right payload and,
// for reminders, the right target time"; delivery, retry and failure are the
// queue's concern and never roll back the triggering row.
type JobEnqueuer interface {
	// EnqueueInvitationEmail enqueues delivery of the invitation email.
	EnqueueInvitationEmail(ctx context.Context, invitationID string) error
	// ScheduleReminder enqueues a reminder for (event, user) that fires at
	// exactly runAt. Scheduling the same (event, user) pair again must be a
	// no-op while the first job is still pending.
	ScheduleReminder(ctx context.Context, eventID, userID, message string, runAt time.Time) error
}
