package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func newRegistrationFixture() (*fakeEventRepo, *fakeRegistrationRepo, *fakeInvitationRepo, domain.RegistrationService) {
	eventRepo := newFakeEventRepo()
	regRepo := newFakeRegistrationRepo()
	invRepo := newFakeInvitationRepo()
	svc := NewRegistrationService(eventRepo, regRepo, invRepo, newFakeUserRepo())
	return eventRepo, regRepo, invRepo, svc
}

func TestRegistrationService_Register(t *testing.T) {
	ctx := context.Background()
	eventRepo, _, _, svc := newRegistrationFixture()
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "open-day", OrganizerID: testOrganizer.UserID})

	reg, err := svc.Register(ctx, testAttendee, "open-day", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RSVPGoing, reg.Status, "status defaults to going")
	assert.Equal(t, testAttendee.UserID, reg.UserID)
}

func TestRegistrationService_Register_UnknownEvent(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newRegistrationFixture()

	_, err := svc.Register(ctx, testAttendee, "missing", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationService_Register_TwiceConflicts(t *testing.T) {
	ctx := context.Background()
	eventRepo, _, _, svc := newRegistrationFixture()
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "open-day", OrganizerID: testOrganizer.UserID})

	_, err := svc.Register(ctx, testAttendee, "open-day", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, testAttendee, "open-day", domain.RSVPMaybe)
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered, "second attempt must conflict, not overwrite")
}

func TestRegistrationService_Register_ConstraintBackstop(t *testing.T) {
	// Simulate the race where the pre-check sees nothing but the insert
	// hits the unique constraint: the outcome is the same Conflict.
	ctx := context.Background()
	eventRepo, regRepo, _, svc := newRegistrationFixture()
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "open-day", OrganizerID: testOrganizer.UserID})
	regRepo.createErr = domain.ErrAlreadyRegistered

	_, err := svc.Register(ctx, testAttendee, "open-day", "")
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
}

func TestRegistrationService_Register_ConcurrentSingleWinner(t *testing.T) {
	ctx := context.Background()
	eventRepo, _, _, svc := newRegistrationFixture()
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "open-day", OrganizerID: testOrganizer.UserID})

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, testAttendee, "open-day", "")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, domain.ErrAlreadyRegistered)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent attempt wins")
}

func TestRegistrationService_Register_PrivateEventGating(t *testing.T) {
	ctx := context.Background()
	eventRepo, _, invRepo, svc := newRegistrationFixture()
	eventRepo.add(&domain.Event{ID: "ev-2", Slug: "secret", OrganizerID: testOrganizer.UserID, IsPrivate: true})

	// Uninvited attendee is rejected.
	_, err := svc.Register(ctx, testAttendee, "secret", "")
	require.ErrorIs(t, err, domain.ErrForbidden)

	// The organizer bypasses the invitation requirement.
	_, err = svc.Register(ctx, testOrganizer, "secret", "")
	require.NoError(t, err)

	// An accepted invitee may register.
	now := time.Now()
	inv := domain.NewInvitation("ev-2", testAttendee.Email, "tok-9", testOrganizer.UserID, now)
	require.NoError(t, invRepo.Create(ctx, inv))
	_, err = invRepo.Accept(ctx, "tok-9", now)
	require.NoError(t, err)
	_, err = svc.Register(ctx, testAttendee, "secret", "")
	require.NoError(t, err)
}

func TestRegistrationService_Register_Anonymous(t *testing.T) {
	ctx := context.Background()
	eventRepo, _, _, svc := newRegistrationFixture()
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "open-day", OrganizerID: testOrganizer.UserID})

	_, err := svc.Register(ctx, testAnonymous, "open-day", "")
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegistrationService_Register_BadStatus(t *testing.T) {
	ctx := context.Background()
	eventRepo, _, _, svc := newRegistrationFixture()
	eventRepo.add(&domain.Event{ID: "ev-1", Slug: "open-day", OrganizerID: testOrganizer.UserID})

	_, err := svc.Register(ctx, testAttendee, "open-day", domain.RSVPStatus("definitely"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
