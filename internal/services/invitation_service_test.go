package services

import (
	"sync"
	"testing"
	"time"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/email"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInviteService(db *gorm.DB, provider *recordingEmailProvider) InvitationService {
	return NewInvitationService(
		db,
		repositories.NewCompanyRepository(db),
		repositories.NewJobRepository(db),
		provider,
		"no-reply@hirepro.test",
		"hirepro.test",
	)
}

func TestInviteUserToCompany_CreatesNewUser(t *testing.T) {
	db := newTestDB(t)
	provider := &recordingEmailProvider{}
	svc := newInviteService(db, provider)

	company := createTestCompany(t, db, "acme")
	admin := createTestUser(t, db, "admin@acme.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	resp, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: "New.Recruiter@Example.com",
		Role:  models.RoleHRRecruiter,
	}, admin)
	require.NoError(t, err)

	assert.True(t, resp.CreatedUser)
	assert.Equal(t, "new.recruiter@example.com", resp.Email)
	assert.Equal(t, models.RoleHRRecruiter, resp.Role)
	assert.Equal(t, models.MembershipStatusActive, resp.Status)
	assert.Contains(t, resp.DashboardURL, "acme.hirepro.test/dashboard")
	assert.Contains(t, resp.DashboardURL, "setup=1")
	assert.Contains(t, resp.DashboardURL, resp.Token)

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "new.recruiter@example.com").Error)
	assert.False(t, user.HasUsablePassword)
	assert.Equal(t, models.UserTypeHRRecruiter, user.UserType)

	var membership models.CompanyUser
	require.NoError(t, db.First(&membership, "user_id = ? AND company_id = ?", user.ID, company.ID).Error)
	if assert.NotNil(t, membership.InvitedByID) {
		assert.Equal(t, admin.ID, *membership.InvitedByID)
	}

	assert.Eventually(t, func() bool { return provider.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Contains(t, provider.last().To, user.Email)
	assert.Equal(t, email.TemplateInvite, provider.lastTemplate())
}

func TestInviteUserToCompany_InterviewerDashboard(t *testing.T) {
	db := newTestDB(t)
	provider := &recordingEmailProvider{}
	svc := newInviteService(db, provider)

	company := createTestCompany(t, db, "globex")
	admin := createTestUser(t, db, "admin@globex.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	resp, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: "iv@example.com",
		Role:  models.RoleInterviewer,
	}, admin)
	require.NoError(t, err)
	assert.Contains(t, resp.DashboardURL, "globex.hirepro.test/interviewer-dashboard")
}

func TestInviteUserToCompany_InvalidRole(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db, &recordingEmailProvider{})

	company := createTestCompany(t, db, "initech")
	admin := createTestUser(t, db, "admin@initech.example.com", models.UserTypeCompanyAdmin)

	_, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: "x@example.com",
		Role:  models.MembershipRole("janitor"),
	}, admin)
	assert.ErrorIs(t, err, appErrors.ErrInvalidRole)
}

func TestInviteUserToCompany_UpgradesExistingMember(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db, &recordingEmailProvider{})

	company := createTestCompany(t, db, "umbrella")
	admin := createTestUser(t, db, "admin@umbrella.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	member := createTestUser(t, db, "rec@umbrella.example.com", models.UserTypeHRRecruiter)
	createTestMembership(t, db, member.ID, company.ID, models.RoleHRRecruiter, models.MembershipStatusActive)

	resp, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: member.Email,
		Role:  models.RoleHRManager,
	}, admin)
	require.NoError(t, err)
	assert.False(t, resp.CreatedUser)
	assert.True(t, resp.UpgradedRole)
	assert.Equal(t, models.RoleHRManager, resp.Role)
}

func TestInviteUserToCompany_NeverDemotesAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db, &recordingEmailProvider{})

	company := createTestCompany(t, db, "hooli")
	admin := createTestUser(t, db, "admin@hooli.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	resp, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: admin.Email,
		Role:  models.RoleHRRecruiter,
	}, admin)
	require.NoError(t, err)
	assert.False(t, resp.UpgradedRole)
	assert.Equal(t, models.RoleCompanyAdmin, resp.Role)

	var membership models.CompanyUser
	require.NoError(t, db.First(&membership, "user_id = ? AND company_id = ?", admin.ID, company.ID).Error)
	assert.Equal(t, models.RoleCompanyAdmin, membership.Role)
}

func TestInviteUserToCompany_ConcurrentSamePair(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db, &recordingEmailProvider{})

	company := createTestCompany(t, db, "stark")
	admin := createTestUser(t, db, "admin@stark.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
				Email: "race@example.com",
				Role:  models.RoleHRRecruiter,
			}, admin)
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var users int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "race@example.com").Count(&users).Error)
	assert.EqualValues(t, 1, users)

	var memberships int64
	require.NoError(t, db.Model(&models.CompanyUser{}).
		Joins("JOIN users ON users.id = company_users.user_id").
		Where("users.email = ? AND company_users.company_id = ?", "race@example.com", company.ID).
		Count(&memberships).Error)
	assert.EqualValues(t, 1, memberships)
}

func TestValidateSetupToken(t *testing.T) {
	db := newTestDB(t)
	provider := &recordingEmailProvider{}
	svc := newInviteService(db, provider)

	company := createTestCompany(t, db, "wayne")
	admin := createTestUser(t, db, "admin@wayne.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	invited, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: "setup@example.com",
		Role:  models.RoleHRManager,
	}, admin)
	require.NoError(t, err)

	resp, err := svc.ValidateSetupToken(invited.Token)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
	assert.True(t, resp.RequiresSetup)
	require.NotNil(t, resp.Company)
	assert.Equal(t, company.ID, resp.Company.ID)

	_, err = svc.ValidateSetupToken("bogus")
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestCompleteSetup_RotatesToken(t *testing.T) {
	db := newTestDB(t)
	provider := &recordingEmailProvider{}
	svc := newInviteService(db, provider)
	tokenSvc := NewTokenService(db)

	company := createTestCompany(t, db, "oscorp")
	admin := createTestUser(t, db, "admin@oscorp.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	invited, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: "joiner@example.com",
		Role:  models.RoleHRRecruiter,
	}, admin)
	require.NoError(t, err)

	resp, err := svc.CompleteSetup(&dto.CompleteSetupRequest{
		Token:     invited.Token,
		Password:  "brand-new-password",
		FirstName: "Joan",
		LastName:  "Iner",
	})
	require.NoError(t, err)
	require.NotEqual(t, invited.Token, resp.Token)
	assert.Equal(t, "Joan", resp.User.FirstName)

	// The setup link is single-use: the old key no longer resolves.
	_, err = tokenSvc.Resolve(invited.Token)
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)

	resolved, err := tokenSvc.Resolve(resp.Token)
	require.NoError(t, err)
	assert.True(t, resolved.HasUsablePassword)
	assert.True(t, resolved.IsProfileComplete)

	// Completing again with the dead token fails outright.
	_, err = svc.CompleteSetup(&dto.CompleteSetupRequest{
		Token:    invited.Token,
		Password: "another-password",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidToken)
}

func TestCompleteSetup_RequiresNames(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db, &recordingEmailProvider{})

	company := createTestCompany(t, db, "cyberdyne")
	admin := createTestUser(t, db, "admin@cyberdyne.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	invited, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: "anon@example.com",
		Role:  models.RoleCSR,
	}, admin)
	require.NoError(t, err)

	_, err = svc.CompleteSetup(&dto.CompleteSetupRequest{
		Token:    invited.Token,
		Password: "strong-password",
	})
	require.Error(t, err)
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, appErrors.CodeValidationFailed, appErr.Code)
}

func TestInviteInterviewer_LinksJob(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db, &recordingEmailProvider{})

	company := createTestCompany(t, db, "tyrell")
	admin := createTestUser(t, db, "admin@tyrell.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	job := &models.Job{CompanyID: company.ID, Title: "Replicant QA", CreatedByID: &admin.ID}
	require.NoError(t, db.Create(job).Error)

	resp, err := svc.InviteInterviewer(job.ID, &dto.InviteUserRequest{
		Email: "iv@tyrell.example.com",
		Role:  models.RoleInterviewer,
	}, admin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleInterviewer, resp.Role)

	var link models.JobInterviewer
	require.NoError(t, db.First(&link, "job_id = ? AND interviewer_id = ?", job.ID, resp.UserID).Error)

	// Repeat invite is a no-op on the link.
	_, err = svc.InviteInterviewer(job.ID, &dto.InviteUserRequest{
		Email: "iv@tyrell.example.com",
		Role:  models.RoleInterviewer,
	}, admin)
	require.NoError(t, err)

	var links int64
	require.NoError(t, db.Model(&models.JobInterviewer{}).
		Where("job_id = ? AND interviewer_id = ?", job.ID, resp.UserID).
		Count(&links).Error)
	assert.EqualValues(t, 1, links)
}

func TestAttachMembershipDuplicateKeepsTransactionUsable(t *testing.T) {
	db := newTestDB(t)

	company := createTestCompany(t, db, "hooli")
	admin := createTestUser(t, db, "admin@hooli.example.com", models.UserTypeCompanyAdmin)
	user := createTestUser(t, db, "member@hooli.example.com", models.UserTypeInterviewer)
	createTestMembership(t, db, user.ID, company.ID, models.RoleInterviewer, models.MembershipStatusActive)

	// The insert hits the (user, company) unique constraint; the
	// savepoint must contain the failure so the rest of the
	// transaction still runs.
	var token *models.AuthToken
	err := db.Transaction(func(tx *gorm.DB) error {
		membership, err := attachMembership(tx, user.ID, company.ID, models.RoleCompanyAdmin, admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleCompanyAdmin, membership.Role)

		token, err = issueOrGetToken(tx, user.ID)
		return err
	})
	require.NoError(t, err)
	require.NotNil(t, token)

	var membership models.CompanyUser
	require.NoError(t, db.First(&membership, "user_id = ? AND company_id = ?", user.ID, company.ID).Error)
	assert.Equal(t, models.RoleCompanyAdmin, membership.Role)
}

func TestProvisionUserExistingAccountFallsBack(t *testing.T) {
	db := newTestDB(t)

	existing := createTestUser(t, db, "taken@example.com", models.UserTypeHRRecruiter)

	err := db.Transaction(func(tx *gorm.DB) error {
		user, created, err := provisionUser(tx, "taken@example.com", models.RoleHRRecruiter)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing.ID, user.ID)

		_, err = issueOrGetToken(tx, user.ID)
		return err
	})
	require.NoError(t, err)

	var users int64
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "taken@example.com").Count(&users).Error)
	assert.EqualValues(t, 1, users)
}

func TestCompleteSetup_RequiresNamesForNamedUser(t *testing.T) {
	db := newTestDB(t)
	svc := newInviteService(db, &recordingEmailProvider{})

	company := createTestCompany(t, db, "wonka")
	admin := createTestUser(t, db, "admin@wonka.example.com", models.UserTypeCompanyAdmin)
	createTestMembership(t, db, admin.ID, company.ID, models.RoleCompanyAdmin, models.MembershipStatusActive)

	// The target already has a populated profile; names are still
	// required on every setup completion.
	createTestUser(t, db, "named@example.com", models.UserTypeHRManager)

	invited, err := svc.InviteUserToCompany(company.ID, &dto.InviteUserRequest{
		Email: "named@example.com",
		Role:  models.RoleHRManager,
	}, admin)
	require.NoError(t, err)

	_, err = svc.CompleteSetup(&dto.CompleteSetupRequest{
		Token:    invited.Token,
		Password: "fresh-password",
	})
	require.Error(t, err)
	var appErr *appErrors.AppError
	require.True(t, appErrors.As(err, &appErr))
	assert.Equal(t, appErrors.CodeValidationFailed, appErr.Code)
	details, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "first_name")
	assert.Contains(t, details, "last_name")
}
