package services

import (
	"testing"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove_LastActiveAdminIsProtected(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "solo")
	admin := createTestUser(t, db, "only-admin@example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	err := svc.Remove(company.ID, admin.ID)
	assert.ErrorIs(t, err, appErrors.ErrLastAdmin)

	var count int64
	require.NoError(t, db.Model(&models.CompanyUser{}).Where("company_id = ?", company.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRemove_AdminWithBackupSucceeds(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "duo")
	first := createTestUser(t, db, "first@example.com", models.UserTypeCompanyAdmin)
	second := createTestUser(t, db, "second@example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, first.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)
	createTestMembership(t, db, second.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	require.NoError(t, svc.Remove(company.ID, first.ID))

	_, err := svc.Get(first.ID, company.ID)
	assert.ErrorIs(t, err, appErrors.ErrMembershipNotFound)
}

func TestRemove_InactiveAdminDoesNotCount(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "ghost")
	active := createTestUser(t, db, "active@example.com", models.UserTypeCompanyAdmin)
	inactive := createTestUser(t, db, "inactive@example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, active.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)
	createTestMembership(t, db, inactive.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusInactive)

	err := svc.Remove(company.ID, active.ID)
	assert.ErrorIs(t, err, appErrors.ErrLastAdmin)
}

func TestRemove_NonAdminNeverBlocked(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "plain")
	admin := createTestUser(t, db, "boss@example.com", models.UserTypeCompanyAdmin)
	member := createTestUser(t, db, "worker@example.com", models.UserTypeHRRecruiter)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)
	createTestMembership(t, db, member.ID, company.ID, models.RoleHRRecruiter, models.MembershipStatusActive)

	assert.NoError(t, svc.Remove(company.ID, member.ID))
}

func TestUpdate_DemotingLastAdminFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "onechief")
	admin := createTestUser(t, db, "chief@example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	role := models.RoleHRManager
	_, err := svc.Update(company.ID, admin.ID, &dto.UpdateMembershipRequest{Role: &role})
	assert.ErrorIs(t, err, appErrors.ErrLastAdmin)
}

func TestUpdate_DeactivatingLastAdminFails(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "pause")
	admin := createTestUser(t, db, "pause-admin@example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	status := models.MembershipStatusInactive
	_, err := svc.Update(company.ID, admin.ID, &dto.UpdateMembershipRequest{Status: &status})
	assert.ErrorIs(t, err, appErrors.ErrLastAdmin)
}

func TestUpdate_RoleChangeWithBackupAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewMembershipService(db, repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "shift")
	admin := createTestUser(t, db, "shift-a@example.com", models.UserTypeCompanyAdmin)
	other := createTestUser(t, db, "shift-b@example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)
	createTestMembership(t, db, other.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	role := models.RoleHRManager
	updated, err := svc.Update(company.ID, admin.ID, &dto.UpdateMembershipRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.RoleHRManager, updated.Role)
}

func TestShouldUpgradeRole(t *testing.T) {
	cases := []struct {
		name      string
		existing  models.MembershipRole
		requested models.MembershipRole
		want      bool
	}{
		{"recruiter to manager", models.RoleHRRecruiter, models.RoleHRManager, true},
		{"recruiter to admin", models.RoleHRRecruiter, models.RoleCompanyAdmin, true},
		{"admin to recruiter blocked", models.RoleCompanyAdmin, models.RoleHRRecruiter, false},
		{"admin to admin", models.RoleCompanyAdmin, models.RoleCompanyAdmin, true},
		{"interviewer to csr", models.RoleInterviewer, models.RoleCSR, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shouldUpgradeRole(tc.existing, tc.requested))
		})
	}
}

func TestAuthz_ActiveRowsOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthzService(repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "guard")
	admin := createTestUser(t, db, "guard-admin@example.com", models.UserTypeCompanyAdmin)
	dormant := createTestUser(t, db, "guard-dormant@example.com", models.UserTypeHRManager)
	outsider := createTestUser(t, db, "guard-outsider@example.com", models.UserTypeCandidate)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)
	createTestMembership(t, db, dormant.ID, company.ID, models.RoleHRManager, models.MembershipStatusInactive)

	isAdmin, err := svc.IsAdmin(admin.ID, company.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isMember, err := svc.IsMember(dormant.ID, company.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	isMember, err = svc.IsMember(outsider.ID, company.ID)
	require.NoError(t, err)
	assert.False(t, isMember)

	// A role change is visible on the next predicate call.
	require.NoError(t, db.Model(&models.CompanyUser{}).
		Where("user_id = ? AND company_id = ?", admin.ID, company.ID).
		Update("role", models.RoleHRManager).Error)

	isAdmin, err = svc.IsAdmin(admin.ID, company.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestAuthz_SystemAdminBypass(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthzService(repositories.NewMembershipRepository(db))

	company := createTestCompany(t, db, "ops")
	operator := createTestUser(t, db, "operator@example.com", models.UserTypeSystemAdmin)

	assert.NoError(t, svc.RequireAdmin(operator, company.ID))
	assert.NoError(t, svc.RequireMember(operator, company.ID))
}
