package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/auth"
	"hirepro_backend/internal/email"
	"hirepro_backend/internal/logger"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	// CompanyAdminSignup registers the user and their company in one
	// transaction. The company starts in pending status.
	CompanyAdminSignup(req *dto.CompanyAdminSignupRequest) (*dto.AuthResponse, error)
	CandidateSignup(req *dto.CandidateSignupRequest) (*dto.AuthResponse, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	// RequestPasswordReset is a silent no-op for unknown emails.
	RequestPasswordReset(emailAddr string) error
	ResetPassword(tokenKey, newPassword string) error
}

type AuthServiceImpl struct {
	db            *gorm.DB
	userSvc       UserService
	emailProvider email.Provider
	fromAddr      string
	baseDomain    string
	resetTokenTTL time.Duration
}

func NewAuthService(
	db *gorm.DB,
	userSvc UserService,
	emailProvider email.Provider,
	fromAddr string,
	baseDomain string,
	resetTokenTTL time.Duration,
) AuthService {
	return &AuthServiceImpl{
		db:            db,
		userSvc:       userSvc,
		emailProvider: emailProvider,
		fromAddr:      fromAddr,
		baseDomain:    baseDomain,
		resetTokenTTL: resetTokenTTL,
	}
}

func (s *AuthServiceImpl) CompanyAdminSignup(req *dto.CompanyAdminSignupRequest) (*dto.AuthResponse, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	var (
		user    *models.User
		company *models.Company
		token   *models.AuthToken
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := repositories.NewUserRepository(tx)
		companyRepo := repositories.NewCompanyRepository(tx)
		memberRepo := repositories.NewMembershipRepository(tx)

		user = &models.User{
			Username:          normalizedEmail,
			Email:             normalizedEmail,
			PasswordHash:      hash,
			UserType:          models.UserTypeCompanyAdmin,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Phone:             req.Phone,
			HasUsablePassword: true,
			IsProfileComplete: true,
		}
		if err := userRepo.Create(user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return appErrors.ErrEmailAlreadyExists
			}
			return appErrors.InternalError(err)
		}

		company = &models.Company{
			Name:         req.CompanyName,
			Subdomain:    normalizeSubdomain(req.Subdomain),
			Website:      req.Website,
			Status:       models.CompanyStatusPending,
			ContactEmail: normalizedEmail,
			ContactPhone: req.ContactPhone,
		}
		if err := companyRepo.Create(company); err != nil {
			if errors.Is(err, repositories.ErrSubdomainTaken) {
				return appErrors.ErrSubdomainTaken
			}
			return appErrors.InternalError(err)
		}

		now := time.Now()
		membership := &models.CompanyUser{
			UserID:      user.ID,
			CompanyID:   company.ID,
			Role:        models.RoleCompanyAdmin,
			Status:      models.MembershipStatusActive,
			InvitedAt:   now,
			ActivatedAt: &now,
		}
		if err := memberRepo.Create(membership); err != nil {
			return appErrors.InternalError(err)
		}

		var txErr error
		token, txErr = issueOrGetToken(tx, user.ID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	dispatchEmail(s.emailProvider, &email.Email{
		From:    s.fromAddr,
		To:      []string{user.Email},
		Subject: "Welcome to HirePro",
		Body: fmt.Sprintf(
			"Hello %s,\n\nYour company %s is registered and pending review. "+
				"We will notify you once it is approved.\n\nThe HirePro Team",
			user.FirstName, company.Name,
		),
	})

	companyResp := dto.NewCompanyResponse(company, s.baseDomain)
	return &dto.AuthResponse{
		Token:   token.Key,
		User:    dto.NewUserResponse(user),
		Company: &companyResp,
	}, nil
}

func (s *AuthServiceImpl) CandidateSignup(req *dto.CandidateSignupRequest) (*dto.AuthResponse, error) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	var (
		user  *models.User
		token *models.AuthToken
	)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		userRepo := repositories.NewUserRepository(tx)

		user = &models.User{
			Username:          normalizedEmail,
			Email:             normalizedEmail,
			PasswordHash:      hash,
			UserType:          models.UserTypeCandidate,
			FirstName:         req.FirstName,
			LastName:          req.LastName,
			Phone:             req.Phone,
			HasUsablePassword: true,
			IsProfileComplete: true,
		}
		if err := userRepo.Create(user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return appErrors.ErrEmailAlreadyExists
			}
			return appErrors.InternalError(err)
		}

		var txErr error
		token, txErr = issueOrGetToken(tx, user.ID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token.Key,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userSvc.VerifyCredentials(req.Login, req.Password)
	if err != nil {
		return nil, err
	}

	var token *models.AuthToken
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		token, txErr = issueOrGetToken(tx, user.ID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: token.Key,
		User:  dto.NewUserResponse(user),
	}, nil
}

func (s *AuthServiceImpl) RequestPasswordReset(emailAddr string) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(emailAddr))

	userRepo := repositories.NewUserRepository(s.db)
	user, err := userRepo.FindByEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Do not reveal whether the account exists.
			logger.Info("password reset requested for unknown email")
			return nil
		}
		return appErrors.InternalError(err)
	}

	tokenRepo := repositories.NewInviteTokenRepository(s.db)
	reset := &models.InviteToken{
		Token:     uuid.NewString(),
		TokenType: models.TokenTypePasswordReset,
		UserID:    &user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
	}
	if err := tokenRepo.Create(reset); err != nil {
		return appErrors.InternalError(err)
	}

	resetURL := fmt.Sprintf("https://%s/reset-password?token=%s", s.baseDomain, reset.Token)
	dispatchTemplatedEmail(s.emailProvider, email.TemplatePasswordReset, email.TemplateData{
		"ResetURL": resetURL,
	}, &email.Email{
		From:    s.fromAddr,
		To:      []string{user.Email},
		Subject: "Reset your HirePro password",
		Body:    passwordResetEmailBody(resetURL),
	})
	return nil
}

func (s *AuthServiceImpl) ResetPassword(tokenKey, newPassword string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		tokenRepo := repositories.NewInviteTokenRepository(tx)
		userRepo := repositories.NewUserRepository(tx)

		reset, err := tokenRepo.FindByToken(tokenKey)
		if err != nil {
			if errors.Is(err, repositories.ErrInviteTokenNotFound) {
				return appErrors.ErrInvalidToken
			}
			return appErrors.InternalError(err)
		}
		if reset.TokenType != models.TokenTypePasswordReset || reset.UserID == nil ||
			reset.IsExpired() || reset.IsUsed() {
			return appErrors.ErrInvalidToken
		}

		if err := tokenRepo.MarkUsed(reset.ID); err != nil {
			if errors.Is(err, repositories.ErrInviteTokenUsed) {
				return appErrors.ErrInvalidToken
			}
			return appErrors.InternalError(err)
		}

		user, err := userRepo.FindByID(*reset.UserID)
		if err != nil {
			return appErrors.InternalError(err)
		}
		if err := setUserPassword(userRepo, user, newPassword); err != nil {
			return err
		}

		// Invalidate every session holding the old token.
		_, err = reissueToken(tx, user.ID)
		return err
	})
}
