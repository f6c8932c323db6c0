package services

import (
	"testing"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPasswordMakesCredentialUsable(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))

	user := createTestUser(t, db, "locked@example.com", models.UserTypeCandidate)
	user.HasUsablePassword = false
	require.NoError(t, db.Model(user).Update("has_usable_password", false).Error)

	_, err := svc.VerifyCredentials("locked@example.com", "opened-sesame")
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	require.NoError(t, svc.SetPassword(user, "opened-sesame"))
	assert.True(t, user.HasUsablePassword)

	verified, err := svc.VerifyCredentials("locked@example.com", "opened-sesame")
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
}

func TestSetPasswordUnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repositories.NewUserRepository(db))

	ghost := &models.User{}
	ghost.ID = "00000000-0000-0000-0000-000000000000"
	err := svc.SetPassword(ghost, "whatever-password")
	assert.ErrorIs(t, err, appErrors.ErrUserNotFound)
}
