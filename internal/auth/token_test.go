package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/bizness/internal/validation"
)

func TestIssueAndParseToken(t *testing.T) {
	s := mustService(t, nil, "session-secret", "jwt-secret")
	u := User{ID: "u1", Name: "Sarah", Email: "sarah@bizness.com", Role: RoleUser}

	token, err := s.IssueToken(u)
	require.NoError(t, err)

	claims, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, u, claims.User())
}

func TestVerifyBearerReloadsAccount(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	u, err := s.Register(ctx, validation.Registration{Name: "Admin", Email: "admin@bizness.com", Password: "correct horse"}, RoleAdmin)
	require.NoError(t, err)

	token, err := s.IssueToken(u)
	require.NoError(t, err)

	got, err := s.VerifyBearer(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, got.Role)

	_, err = s.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, RoleUser, u.ID)
	require.NoError(t, err)
	got, err = s.VerifyBearer(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, got.Role, "demotion applies before the token expires")

	_, err = s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, u.ID)
	require.NoError(t, err)
	_, err = s.VerifyBearer(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEmptyKeyForgeryIsRefused(t *testing.T) {
	s := newTestService(t)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "attacker", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(""))
	require.NoError(t, err)

	_, err = s.VerifyBearer(context.Background(), forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejects(t *testing.T) {
	s := mustService(t, nil, "session-secret", "jwt-secret")
	token, err := s.IssueToken(User{ID: "u1", Role: RoleUser})
	require.NoError(t, err)

	other := mustService(t, nil, "session-secret", "another-secret")
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "wrong key")

	expired := mustService(t, nil, "session-secret", "jwt-secret")
	expired.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = expired.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "expired")

	_, err = s.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTSecretFallsBackToSessionSecret(t *testing.T) {
	a := mustService(t, nil, "shared", "")
	b := mustService(t, nil, "unused", "shared")

	token, err := a.IssueToken(User{ID: "u1"})
	require.NoError(t, err)

	_, err = b.ParseToken(token)
	assert.NoError(t, err)
}
