package repositories

import (
	"errors"
	"time"

	"hirepro_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInviteTokenNotFound = errors.New("invite token not found")
	ErrInviteTokenUsed     = errors.New("invite token already used")
)

type InviteTokenRepository interface {
	Create(token *models.InviteToken) error
	FindByToken(token string) (*models.InviteToken, error)
	// MarkUsed consumes the token. Returns ErrInviteTokenUsed when the
	// row was already consumed, so racing redeemers get exactly one win.
	MarkUsed(tokenID string) error
	DeleteExpired() error
}

type InviteTokenRepositoryImpl struct {
	db *gorm.DB
}

func NewInviteTokenRepository(db *gorm.DB) InviteTokenRepository {
	return &InviteTokenRepositoryImpl{db: db}
}

func (r *InviteTokenRepositoryImpl) Create(token *models.InviteToken) error {
	return r.db.Create(token).Error
}

func (r *InviteTokenRepositoryImpl) FindByToken(token string) (*models.InviteToken, error) {
	var record models.InviteToken
	err := r.db.Preload("User").Preload("Company").First(&record, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteTokenNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *InviteTokenRepositoryImpl) MarkUsed(tokenID string) error {
	result := r.db.Model(&models.InviteToken{}).
		Where("id = ? AND used_at IS NULL", tokenID).
		Update("used_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInviteTokenUsed
	}
	return nil
}

func (r *InviteTokenRepositoryImpl) DeleteExpired() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&models.InviteToken{}).Error
}
