package services

import (
	"errors"
	"strings"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/auth"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"
	"hirepro_backend/internal/services/dto"
)

type UserService interface {
	GetByID(userID string) (*models.User, error)
	// VerifyCredentials matches the login handle against email or
	// username. Every failure collapses to ErrInvalidCredentials so the
	// response never reveals whether the account exists.
	VerifyCredentials(login, password string) (*models.User, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	// SetPassword replaces the credential and marks it usable so the
	// account can log in with it.
	SetPassword(user *models.User, plaintext string) error
	List(limit, offset int) ([]models.User, int64, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

func (s *UserServiceImpl) GetByID(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) VerifyCredentials(login, password string) (*models.User, error) {
	user, err := s.userRepo.FindByLogin(strings.ToLower(strings.TrimSpace(login)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, appErrors.InternalError(err)
	}

	if !user.HasUsablePassword || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, appErrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) SetPassword(user *models.User, plaintext string) error {
	return setUserPassword(s.userRepo, user, plaintext)
}

// setUserPassword hashes the plaintext in place and persists the now
// usable credential. Token-driven flows call it with their
// transaction-scoped repository.
func setUserPassword(userRepo repositories.UserRepository, user *models.User, plaintext string) error {
	hash, err := auth.HashPassword(plaintext)
	if err != nil {
		return appErrors.InternalError(err)
	}
	user.PasswordHash = hash
	user.HasUsablePassword = true
	if err := userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) List(limit, offset int) ([]models.User, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.userRepo.FindAll(limit, offset)
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	return users, total, nil
}
