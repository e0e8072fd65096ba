package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func TestReminderService_Sweep_SchedulesAtExactInstant(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	start := now.Add(24*time.Hour + 30*time.Minute) // reminder due in 30m

	eventRepo := newFakeEventRepo()
	regRepo := newFakeRegistrationRepo()
	enqueuer := &fakeEnqueuer{}
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "conf", Name: "Conf", OrganizerID: "org-1", StartsAt: start, Status: domain.EventStatusUpcoming})

	require.NoError(t, regRepo.Create(ctx, domain.NewRegistration("ev-1", "u-going", domain.RSVPGoing, now)))
	require.NoError(t, regRepo.Create(ctx, domain.NewRegistration("ev-1", "u-maybe", domain.RSVPMaybe, now)))
	require.NoError(t, regRepo.Create(ctx, domain.NewRegistration("ev-1", "u-no", domain.RSVPNotGoing, now)))

	svc := NewReminderService(eventRepo, regRepo, enqueuer, discardLogger())
	scheduled, err := svc.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, scheduled)

	require.Len(t, enqueuer.reminders, 1, "only going registrants are reminded")
	job := enqueuer.reminders[0]
	assert.Equal(t, "u-going", job.UserID)
	assert.Equal(t, start.Add(-24*time.Hour), job.RunAt, "job fires at exactly start minus 24h")
	assert.Contains(t, job.Message, "Conf")
}

func TestReminderService_Sweep_WindowBounds(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		startsAt time.Time
		want     int
	}{
		{"reminder exactly now is caught", now.Add(24 * time.Hour), 1},
		{"reminder just inside window", now.Add(24*time.Hour + 59*time.Minute), 1},
		{"reminder at window edge is left for the next sweep", now.Add(25 * time.Hour), 0},
		{"reminder already past", now.Add(23 * time.Hour), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eventRepo := newFakeEventRepo()
			regRepo := newFakeRegistrationRepo()
			enqueuer := &fakeEnqueuer{}
			eventRepo.add(&domain.Event{ID: "ev-1", Slug: "conf", Name: "Conf", OrganizerID: "org-1", StartsAt: tt.startsAt, Status: domain.EventStatusUpcoming})
			require.NoError(t, regRepo.Create(ctx, domain.NewRegistration("ev-1", "u-1", domain.RSVPGoing, now)))

			svc := NewReminderService(eventRepo, regRepo, enqueuer, discardLogger())
			scheduled, err := svc.Sweep(ctx, now)
			require.NoError(t, err)
			assert.Equal(t, tt.want, scheduled)
		})
	}
}

func TestReminderService_Sweep_SkipsTerminalStatuses(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	start := now.Add(24*time.Hour + 30*time.Minute)

	eventRepo := newFakeEventRepo()
	regRepo := newFakeRegistrationRepo()
	enqueuer := &fakeEnqueuer{}
	eventRepo.add(&domain.Event{ID: "ev-c", Slug: "cancelled", OrganizerID: "org-1", StartsAt: start, Status: domain.EventStatusCancelled})
	eventRepo.add(&domain.Event{ID: "ev-d", Slug: "completed", OrganizerID: "org-1", StartsAt: start, Status: domain.EventStatusCompleted})
	require.NoError(t, regRepo.Create(ctx, domain.NewRegistration("ev-c", "u-1", domain.RSVPGoing, now)))
	require.NoError(t, regRepo.Create(ctx, domain.NewRegistration("ev-d", "u-1", domain.RSVPGoing, now)))

	svc := NewReminderService(eventRepo, regRepo, enqueuer, discardLogger())
	scheduled, err := svc.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, scheduled)
	assert.Empty(t, enqueuer.reminders)
}

func TestReminderService_Sweep_MultipleRegistrants(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	start := now.Add(24*time.Hour + 15*time.Minute)

	eventRepo := newFakeEventRepo()
	regRepo := newFakeRegistrationRepo()
	enqueuer := &fakeEnqueuer{}
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "conf", Name: "Conf", OrganizerID: "org-1", StartsAt: start, Status: domain.EventStatusUpcoming})
	for _, uid := range []string{"u-1", "u-2", "u-3"} {
		require.NoError(t, regRepo.Create(ctx, domain.NewRegistration("ev-1", uid, domain.RSVPGoing, now)))
	}

	svc := NewReminderService(eventRepo, regRepo, enqueuer, discardLogger())
	scheduled, err := svc.Sweep(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 3, scheduled)
}
