package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func writeAndDecode(t *testing.T, err error) (int, APIResponse) {
	t.Helper()
	rr := httptest.NewRecorder()
	WriteDomainError(rr, err)
	var envelope APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return rr.Code, envelope
}

func TestWriteDomainError_SentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"forbidden", domain.Forbidden("event is private"), http.StatusForbidden, ErrCodeForbidden},
		{"not private", &domain.AuthzError{Reason: "event is not private", Sentinel: domain.ErrNotPrivate}, http.StatusBadRequest, ErrCodeBadRequest},
		{"already registered", domain.ErrAlreadyRegistered, http.StatusConflict, ErrCodeConflict},
		{"already invited", domain.ErrAlreadyInvited, http.StatusConflict, ErrCodeConflict},
		{"duplicate slug", domain.ErrDuplicateSlug, http.StatusConflict, ErrCodeConflict},
		{"invalid input", fmt.Errorf("%w: name is required", domain.ErrInvalidInput), http.StatusBadRequest, ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := writeAndDecode(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestWriteDomainError_OpaqueInternalError(t *testing.T) {
	// Driver and infrastructure error text stays out of response bodies.
	status, envelope := writeAndDecode(t, errors.New(`pq: insert or update on table "events" violates foreign key constraint`))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, ErrCodeInternalError, envelope.Error.Code)
	assert.Equal(t, "internal server error", envelope.Error.Message)
	assert.NotContains(t, envelope.Error.Message, "pq:")
}

func TestClientError(t *testing.T) {
	assert.True(t, ClientError(domain.ErrNotFound))
	assert.True(t, ClientError(domain.Forbidden("nope")))
	assert.True(t, ClientError(fmt.Errorf("%w: bad", domain.ErrInvalidInput)))
	assert.False(t, ClientError(errors.New("dial tcp: connection refused")))
}
