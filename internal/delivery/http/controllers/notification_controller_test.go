package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotificationService implements domain.NotificationService.
type fakeNotificationService struct {
	listErr     error
	listResult  []*domain.Notification
	markReadErr error
	lastMarkID  string
}

func (f *fakeNotificationService) ListMine(ctx context.Context, principal domain.Principal) ([]*domain.Notification, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, principal domain.Principal, id string) error {
	f.lastMarkID = id
	return f.markReadErr
}

func TestNotificationController_List(t *testing.T) {
	fake := &fakeNotificationService{listResult: []*domain.Notification{
		{ID: "7f1e1a2b-0000-4000-8000-000000000001", UserID: testAttendee.UserID, Message: "Reminder: Go Conf starts soon"},
	}}
	ctrl := NewNotificationController(testLogger, fake)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req = withPrincipal(req, testAttendee)
	rr := httptest.NewRecorder()

	ctrl.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.Nil(t, envelope.Error)
}

func TestNotificationController_MarkRead(t *testing.T) {
	const notifID = "7f1e1a2b-0000-4000-8000-000000000001"

	tests := []struct {
		name       string
		id         string
		fakeErr    error
		wantStatus int
		wantCalled bool
	}{
		{name: "success", id: notifID, wantStatus: http.StatusOK, wantCalled: true},
		{name: "not a uuid", id: "42", wantStatus: http.StatusBadRequest},
		{name: "someone else's notification", id: notifID, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeNotificationService{markReadErr: tt.fakeErr}
			ctrl := NewNotificationController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/"+tt.id+"/mark-read", nil)
			req.SetPathValue("id", tt.id)
			req = withPrincipal(req, testAttendee)
			rr := httptest.NewRecorder()

			ctrl.MarkRead(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			if tt.wantCalled {
				assert.Equal(t, tt.id, fake.lastMarkID)
			} else {
				assert.Empty(t, fake.lastMarkID, "service must not be called with a bad id")
			}
		})
	}
}
