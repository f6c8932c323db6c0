package repositories

import (
	"errors"

	"hirepro_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("auth token not found")

type AuthTokenRepository interface {
	FindByUserID(userID string) (*models.AuthToken, error)
	// FindByKey resolves a bearer key to its token with the owning user
	// preloaded. Always a fresh read; resolution is never cached.
	FindByKey(key string) (*models.AuthToken, error)
	Create(token *models.AuthToken) error
	DeleteByUserID(userID string) error
}

type AuthTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewAuthTokenRepository(db *gorm.DB) AuthTokenRepository {
	return &AuthTokenRepositoryImpl{db: db}
}

func (r *AuthTokenRepositoryImpl) FindByUserID(userID string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.First(&token, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *AuthTokenRepositoryImpl) FindByKey(key string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.db.Preload("User").First(&token, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *AuthTokenRepositoryImpl) Create(token *models.AuthToken) error {
	return r.db.Create(token).Error
}

func (r *AuthTokenRepositoryImpl) DeleteByUserID(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.AuthToken{}).Error
}
