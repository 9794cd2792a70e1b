package service

import (
	"testing"
	"time"

	"spc-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, func() *model.User) {
	t.Helper()

	db := newTestDB(t)
	svc := NewAuthService(db, testJWTConfig(t))

	lastUser := func() *model.User {
		var user model.User
		require.NoError(t, db.Preload("Roles").Order("id DESC").First(&user).Error)
		return &user
	}
	return svc, lastUser
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.AccessToken)
	assert.NotEmpty(t, reg.RefreshToken)
	assert.Equal(t, "a@x.com", reg.Email)
	assert.Contains(t, reg.Roles, model.RoleUser)

	login, err := svc.Login("a@x.com", "Abcd123!")
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
	assert.NotEmpty(t, login.RefreshToken)
	assert.Equal(t, reg.UserID, login.UserID)
	assert.Contains(t, login.Roles, model.RoleUser)
}

func TestLoginEmailIsCaseInsensitive(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("Person@Example.com", "Abcd123!", "P", "E")
	require.NoError(t, err)

	_, err = svc.Login("person@example.com", "Abcd123!")
	assert.NoError(t, err)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)

	// Wrong password for a known user and a completely unknown user must
	// surface the same error to resist enumeration.
	_, wrongPassword := svc.Login("a@x.com", "nope")
	_, unknownUser := svc.Login("ghost@x.com", "Abcd123!")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)

	_, err = svc.Register("a@x.com", "Abcd123!", "A", "B")
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)

	// Same address in a different case is still a duplicate
	_, err = svc.Register("A@X.COM", "Abcd123!", "A", "B")
	assert.ErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestRegisterPasswordPolicy(t *testing.T) {
	svc, _ := newAuthService(t)

	for _, password := range []string{
		"short1!",     // too short
		"abcd1234!",   // no upper
		"ABCD1234!",   // no lower
		"Abcdefgh!",   // no digit
		"Abcd12345",   // no symbol
	} {
		_, err := svc.Register("p@x.com", password, "P", "Q")
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q should be rejected", password)
	}

	_, err := svc.Register("p@x.com", "Abcd123!", "P", "Q")
	assert.NoError(t, err)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)

	first, err := svc.RefreshToken(reg.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, reg.RefreshToken, first.RefreshToken)

	// The superseded token is invalidated by overwrite
	_, err = svc.RefreshToken(reg.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	// The latest token still works
	_, err = svc.RefreshToken(first.RefreshToken)
	assert.NoError(t, err)
}

func TestLoginInvalidatesPriorRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)

	// Logging in from a second location overwrites the stored token
	login, err := svc.Login("a@x.com", "Abcd123!")
	require.NoError(t, err)

	_, err = svc.RefreshToken(reg.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	_, err = svc.RefreshToken(login.RefreshToken)
	assert.NoError(t, err)
}

func TestRefreshTokenExpired(t *testing.T) {
	svc, lastUser := newAuthService(t)

	reg, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)

	// Age the stored expiry; the token string itself still matches
	past := time.Now().Add(-time.Minute)
	user := lastUser()
	require.NoError(t, svc.db.Model(user).Update("refresh_token_expires_at", past).Error)

	_, err = svc.RefreshToken(reg.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)

	reg, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)

	revoked, err := svc.RevokeRefreshToken("a@x.com")
	require.NoError(t, err)
	assert.True(t, revoked)

	_, err = svc.RefreshToken(reg.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevokeUnknownEmailReturnsFalse(t *testing.T) {
	svc, _ := newAuthService(t)

	revoked, err := svc.RevokeRefreshToken("ghost@x.com")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestStoredRefreshTokenMatchesLastIssued(t *testing.T) {
	svc, lastUser := newAuthService(t)

	_, err := svc.Register("a@x.com", "Abcd123!", "A", "B")
	require.NoError(t, err)

	login, err := svc.Login("a@x.com", "Abcd123!")
	require.NoError(t, err)

	// Registration and the immediate login each mutate the stored token;
	// the final state must match whatever the last call returned.
	user := lastUser()
	require.NotNil(t, user.RefreshToken)
	assert.Equal(t, login.RefreshToken, *user.RefreshToken)
}
