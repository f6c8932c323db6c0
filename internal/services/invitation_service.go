package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/auth"
	"hirepro_backend/internal/email"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"

	"gorm.io/gorm"
)

// InvitationService provisions company members. An invite creates the
// user account on the spot when none exists, attaches the membership,
// and hands out an API token embedded in the dashboard link, so the
// invitee lands already authenticated and finishes setup from there.
type InvitationService interface {
	InviteUserToCompany(companyID string, req *dto.InviteUserRequest, invitedBy *models.User) (*dto.InviteResponse, error)
	ValidateSetupToken(key string) (*dto.SetupTokenResponse, error)
	CompleteSetup(req *dto.CompleteSetupRequest) (*dto.AuthResponse, error)
	InviteInterviewer(jobID string, req *dto.InviteUserRequest, invitedBy *models.User) (*dto.InviteResponse, error)
}

type InvitationServiceImpl struct {
	db            *gorm.DB
	companyRepo   repositories.CompanyRepository
	jobRepo       repositories.JobRepository
	emailProvider email.Provider
	fromAddr      string
	baseDomain    string
}

func NewInvitationService(
	db *gorm.DB,
	companyRepo repositories.CompanyRepository,
	jobRepo repositories.JobRepository,
	emailProvider email.Provider,
	fromAddr string,
	baseDomain string,
) InvitationService {
	return &InvitationServiceImpl{
		db:            db,
		companyRepo:   companyRepo,
		jobRepo:       jobRepo,
		emailProvider: emailProvider,
		fromAddr:      fromAddr,
		baseDomain:    baseDomain,
	}
}

type inviteOutcome struct {
	user         *models.User
	membership   *models.CompanyUser
	token        *models.AuthToken
	createdUser  bool
	upgradedRole bool
}

func (s *InvitationServiceImpl) InviteUserToCompany(companyID string, req *dto.InviteUserRequest, invitedBy *models.User) (*dto.InviteResponse, error) {
	if !models.ValidMembershipRole(req.Role) {
		return nil, appErrors.ErrInvalidRole
	}

	company, err := s.companyRepo.FindByID(companyID)
	if err != nil {
		if errors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, appErrors.ErrCompanyNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	var out inviteOutcome
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		out, txErr = inviteMember(tx, company.ID, normalizedEmail, req.Role, invitedBy.ID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	requiresSetup := !out.user.HasUsablePassword
	url := dashboardURL(company, out.membership.Role, out.token.Key, s.baseDomain, requiresSetup)

	dispatchTemplatedEmail(s.emailProvider, email.TemplateInvite, email.TemplateData{
		"FirstName":     out.user.FirstName,
		"CompanyName":   company.Name,
		"Role":          out.membership.Role,
		"DashboardURL":  url,
		"RequiresSetup": requiresSetup,
	}, &email.Email{
		From:    s.fromAddr,
		To:      []string{out.user.Email},
		Subject: fmt.Sprintf("You have been invited to %s", company.Name),
		Body:    inviteEmailBody(out.user, company, out.membership.Role, url, requiresSetup),
	})

	return &dto.InviteResponse{
		UserID:       out.user.ID,
		Email:        out.user.Email,
		Role:         out.membership.Role,
		Status:       out.membership.Status,
		CreatedUser:  out.createdUser,
		UpgradedRole: out.upgradedRole,
		Token:        out.token.Key,
		DashboardURL: url,
	}, nil
}

// inviteMember runs the transactional part of an invite. A concurrent
// invite for the same pair loses on the unique constraint and falls
// back to the existing-membership path.
func inviteMember(tx *gorm.DB, companyID, emailAddr string, role models.MembershipRole, invitedByID string) (inviteOutcome, error) {
	userRepo := repositories.NewUserRepository(tx)
	memberRepo := repositories.NewMembershipRepository(tx)

	var out inviteOutcome

	user, err := userRepo.FindByEmail(emailAddr)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrUserNotFound):
		user, out.createdUser, err = provisionUser(tx, emailAddr, role)
		if err != nil {
			return out, err
		}
	default:
		return out, appErrors.InternalError(err)
	}
	out.user = user

	membership, err := memberRepo.Find(user.ID, companyID)
	switch {
	case errors.Is(err, repositories.ErrMembershipNotFound):
		membership, err = attachMembership(tx, user.ID, companyID, role, invitedByID)
		if err != nil {
			return out, err
		}
	case err != nil:
		return out, appErrors.InternalError(err)
	default:
		if shouldUpgradeRole(membership.Role, role) && membership.Role != role {
			membership, err = memberRepo.Update(membership.ID, map[string]interface{}{"role": role})
			if err != nil {
				return out, appErrors.InternalError(err)
			}
			out.upgradedRole = true
		}
	}
	out.membership = membership

	token, err := issueOrGetToken(tx, user.ID)
	if err != nil {
		return out, err
	}
	out.token = token

	return out, nil
}

// provisionUser creates the account an invite targets. The generated
// credential is unguessable and never shared; HasUsablePassword stays
// false until the invitee completes setup.
func provisionUser(tx *gorm.DB, emailAddr string, role models.MembershipRole) (*models.User, bool, error) {
	temp, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, false, appErrors.InternalError(err)
	}
	hash, err := auth.HashPassword(temp)
	if err != nil {
		return nil, false, appErrors.InternalError(err)
	}

	user := &models.User{
		Username:          emailAddr,
		Email:             emailAddr,
		PasswordHash:      hash,
		UserType:          models.UserType(role),
		HasUsablePassword: false,
	}
	// Savepoint around the insert so a lost race leaves tx usable.
	createErr := tx.Transaction(func(inner *gorm.DB) error {
		return repositories.NewUserRepository(inner).Create(user)
	})
	if createErr != nil {
		if errors.Is(createErr, repositories.ErrUserAlreadyExists) {
			// Concurrent invite created the account first.
			existing, findErr := repositories.NewUserRepository(tx).FindByEmail(emailAddr)
			if findErr != nil {
				return nil, false, appErrors.InternalError(findErr)
			}
			return existing, false, nil
		}
		return nil, false, appErrors.InternalError(createErr)
	}
	return user, true, nil
}

func attachMembership(tx *gorm.DB, userID, companyID string, role models.MembershipRole, invitedByID string) (*models.CompanyUser, error) {
	memberRepo := repositories.NewMembershipRepository(tx)

	now := time.Now()
	membership := &models.CompanyUser{
		UserID:      userID,
		CompanyID:   companyID,
		Role:        role,
		Status:      models.MembershipStatusActive,
		InvitedByID: &invitedByID,
		InvitedAt:   now,
		ActivatedAt: &now,
	}
	// Savepoint around the insert so a lost race leaves tx usable.
	err := tx.Transaction(func(inner *gorm.DB) error {
		return repositories.NewMembershipRepository(inner).Create(membership)
	})
	if err == nil {
		return membership, nil
	}
	if !errors.Is(err, repositories.ErrMembershipExists) {
		return nil, appErrors.InternalError(err)
	}

	// Lost the race on the (user, company) constraint; apply the
	// upgrade policy to the winner's row instead.
	existing, err := memberRepo.Find(userID, companyID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if shouldUpgradeRole(existing.Role, role) && existing.Role != role {
		return memberRepo.Update(existing.ID, map[string]interface{}{"role": role})
	}
	return existing, nil
}

func (s *InvitationServiceImpl) ValidateSetupToken(key string) (*dto.SetupTokenResponse, error) {
	user, companyResp, err := s.resolveSetupContext(key)
	if err != nil {
		return nil, err
	}

	userResp := dto.NewUserResponse(user)
	return &dto.SetupTokenResponse{
		Valid:         true,
		RequiresSetup: !user.HasUsablePassword,
		User:          &userResp,
		Company:       companyResp,
	}, nil
}

func (s *InvitationServiceImpl) CompleteSetup(req *dto.CompleteSetupRequest) (*dto.AuthResponse, error) {
	user, companyResp, err := s.resolveSetupContext(req.Token)
	if err != nil {
		return nil, err
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	details := make(map[string]string)
	if firstName == "" {
		details["first_name"] = "This field is required"
	}
	if lastName == "" {
		details["last_name"] = "This field is required"
	}
	if len(details) > 0 {
		return nil, appErrors.ValidationError(details)
	}

	var newToken *models.AuthToken
	err = s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := repositories.NewUserRepository(tx)

		user.IsProfileComplete = true
		user.FirstName = firstName
		user.LastName = lastName
		if req.Phone != "" {
			user.Phone = req.Phone
		}
		if err := setUserPassword(userRepo, user, req.Password); err != nil {
			return err
		}

		// Rotate the token so the setup link stops working.
		var txErr error
		newToken, txErr = reissueToken(tx, user.ID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	if companyResp != nil {
		dispatchTemplatedEmail(s.emailProvider, email.TemplateSetupComplete, email.TemplateData{
			"FirstName":   user.FirstName,
			"CompanyName": companyResp.Name,
		}, &email.Email{
			From:    s.fromAddr,
			To:      []string{user.Email},
			Subject: "Your account is ready",
			Body:    setupCompleteEmailBody(user, &models.Company{Name: companyResp.Name}),
		})
	}

	userResp := dto.NewUserResponse(user)
	return &dto.AuthResponse{
		Token:   newToken.Key,
		User:    userResp,
		Company: companyResp,
	}, nil
}

func (s *InvitationServiceImpl) InviteInterviewer(jobID string, req *dto.InviteUserRequest, invitedBy *models.User) (*dto.InviteResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, appErrors.ErrJobNotFound
		}
		return nil, appErrors.InternalError(err)
	}

	inviteReq := &dto.InviteUserRequest{Email: req.Email, Role: models.RoleInterviewer}
	resp, err := s.InviteUserToCompany(job.CompanyID, inviteReq, invitedBy)
	if err != nil {
		return nil, err
	}

	link := &models.JobInterviewer{
		JobID:         job.ID,
		InterviewerID: resp.UserID,
		AddedByID:     &invitedBy.ID,
		Status:        models.InterviewerStatusActive,
	}
	if err := s.jobRepo.AddInterviewer(link); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return resp, nil
}

// resolveSetupContext maps a bearer key to its user plus the company of
// the most recent active membership. Reads are always fresh; once the
// token is reissued the old key resolves to nothing.
func (s *InvitationServiceImpl) resolveSetupContext(key string) (*models.User, *dto.CompanyResponse, error) {
	tokenRepo := repositories.NewAuthTokenRepository(s.db)
	memberRepo := repositories.NewMembershipRepository(s.db)

	token, err := tokenRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, nil, appErrors.ErrInvalidToken
		}
		return nil, nil, appErrors.InternalError(err)
	}
	if token.User == nil {
		return nil, nil, appErrors.ErrInvalidToken
	}

	memberships, err := memberRepo.List(repositories.MembershipFilter{
		UserID: token.UserID,
		Status: models.MembershipStatusActive,
	})
	if err != nil {
		return nil, nil, appErrors.InternalError(err)
	}
	if len(memberships) == 0 {
		return token.User, nil, nil
	}

	latest := memberships[len(memberships)-1]
	company, err := s.companyRepo.FindByID(latest.CompanyID)
	if err != nil {
		return nil, nil, appErrors.InternalError(err)
	}

	companyResp := dto.NewCompanyResponse(company, s.baseDomain)
	return token.User, &companyResp, nil
}
