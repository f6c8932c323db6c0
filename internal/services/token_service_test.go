package services

import (
	"testing"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueOrGet_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db)
	user := createTestUser(t, db, "token@example.com", models.UserTypeCandidate)

	first, err := svc.IssueOrGet(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, first.Key)

	second, err := svc.IssueOrGet(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)

	var count int64
	require.NoError(t, db.Model(&models.AuthToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolve_ReturnsOwningUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db)
	user := createTestUser(t, db, "resolve@example.com", models.UserTypeCandidate)

	token, err := svc.IssueOrGet(user.ID)
	require.NoError(t, err)

	resolved, err := svc.Resolve(token.Key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestResolve_UnknownKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db)

	_, err := svc.Resolve("definitely-not-a-key")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestReissue_InvalidatesOldKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db)
	user := createTestUser(t, db, "reissue@example.com", models.UserTypeCandidate)

	old, err := svc.IssueOrGet(user.ID)
	require.NoError(t, err)

	fresh, err := svc.Reissue(user.ID)
	require.NoError(t, err)
	require.NotEqual(t, old.Key, fresh.Key)

	_, err = svc.Resolve(old.Key)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	resolved, err := svc.Resolve(fresh.Key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
}

func TestReissue_WithoutExistingToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db)
	user := createTestUser(t, db, "fresh@example.com", models.UserTypeCandidate)

	token, err := svc.Reissue(user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Key)
}
