package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitationController_Accept(t *testing.T) {
	acceptedAt := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		token      string
		fakeErr    error
		wantStatus int
	}{
		{name: "valid token", token: "tok-abc", wantStatus: http.StatusOK},
		{name: "unknown token", token: "tok-missing", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "already accepted token", token: "tok-used", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invs := &fakeInvitationService{
				acceptErr: tt.fakeErr,
				acceptResult: &domain.Invitation{
					ID:         "inv-1",
					EventID:    "ev-1",
					Email:      "guest@example.com",
					Accepted:   true,
					AcceptedAt: &acceptedAt,
				},
			}
			ctrl := NewInvitationController(testLogger, invs)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations/accept/"+tt.token, nil)
			req.SetPathValue("token", tt.token)
			rr := httptest.NewRecorder()

			ctrl.Accept(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.token, invs.lastToken)
			if tt.wantStatus == http.StatusOK {
				envelope := decodeEnvelope(t, rr)
				require.Nil(t, envelope.Error)
			}
		})
	}
}

func TestInvitationController_Accept_MissingToken(t *testing.T) {
	invs := &fakeInvitationService{}
	ctrl := NewInvitationController(testLogger, invs)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invitations/accept/", nil)
	rr := httptest.NewRecorder()

	ctrl.Accept(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, invs.lastToken, "service must not be called without a token")
}
