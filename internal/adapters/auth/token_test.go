package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventplanner/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", "Uma", domain.RoleOrganizer, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, "Uma", claims.Name)
	assert.Equal(t, "organizer", claims.Role)
}

func TestJWTVerifier_RoundTrip(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)

	token, err := issuer.Issue("user-123", "u@example.com", "Uma", domain.RoleAttendee, time.Hour)
	require.NoError(t, err)

	principal, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", principal.UserID)
	assert.Equal(t, "u@example.com", principal.Email)
	assert.Equal(t, "Uma", principal.Name)
	assert.Equal(t, domain.RoleAttendee, principal.Role)
	assert.True(t, principal.Authenticated)
}

func TestJWTVerifier_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("right-secret")
	verifier := NewJWTVerifier("wrong-secret")

	token, err := issuer.Issue("user-123", "u@example.com", "Uma", domain.RoleAttendee, time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestJWTVerifier_RejectsExpired(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)

	token, err := issuer.Issue("user-123", "u@example.com", "Uma", domain.RoleAttendee, -time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestJWTVerifier_RejectsGarbage(t *testing.T) {
	verifier := NewJWTVerifier("test-secret")
	_, err := verifier.Verify("not-a-token")
	require.Error(t, err)
}

func TestJWTVerifier_UnknownRoleFallsBackToAttendee(t *testing.T) {
	secret := "test-secret"
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "u@example.com",
		Role:  "superadmin",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	principal, err := NewJWTVerifier(secret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAttendee, principal.Role)
}
