package services

import (
	"errors"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/auth"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/repositories"

	"gorm.io/gorm"
)

// TokenService manages the opaque API tokens. One token per user; a key
// is resolved against the database on every request so a reissue takes
// effect immediately.
type TokenService interface {
	IssueOrGet(userID string) (*models.AuthToken, error)
	Reissue(userID string) (*models.AuthToken, error)
	Resolve(key string) (*models.User, error)
}

type TokenServiceImpl struct {
	db *gorm.DB
}

func NewTokenService(db *gorm.DB) TokenService {
	return &TokenServiceImpl{db: db}
}

// IssueOrGet returns the user's existing token or creates one. Safe
// under concurrent callers: a duplicate-key loser re-reads the winner's
// row.
func (s *TokenServiceImpl) IssueOrGet(userID string) (*models.AuthToken, error) {
	return issueOrGetToken(s.db, userID)
}

// Reissue atomically replaces the user's token. Every copy of the old
// key stops resolving as soon as the transaction commits.
func (s *TokenServiceImpl) Reissue(userID string) (*models.AuthToken, error) {
	var token *models.AuthToken
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		token, txErr = reissueToken(tx, userID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (s *TokenServiceImpl) Resolve(key string) (*models.User, error) {
	tokenRepo := repositories.NewAuthTokenRepository(s.db)
	token, err := tokenRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, appErrors.InternalError(err)
	}
	if token.User == nil {
		return nil, appErrors.ErrInvalidToken
	}
	return token.User, nil
}

func issueOrGetToken(tx *gorm.DB, userID string) (*models.AuthToken, error) {
	tokenRepo := repositories.NewAuthTokenRepository(tx)

	existing, err := tokenRepo.FindByUserID(userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repositories.ErrTokenNotFound) {
		return nil, appErrors.InternalError(err)
	}

	key, err := auth.GenerateTokenKey()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	token := &models.AuthToken{Key: key, UserID: userID}
	// The insert runs under a savepoint: a duplicate-key loss must not
	// abort the enclosing transaction on postgres.
	createErr := tx.Transaction(func(inner *gorm.DB) error {
		return repositories.NewAuthTokenRepository(inner).Create(token)
	})
	if createErr != nil {
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			// Lost the race; another request created the token.
			return tokenRepo.FindByUserID(userID)
		}
		return nil, appErrors.InternalError(createErr)
	}
	return token, nil
}

func reissueToken(tx *gorm.DB, userID string) (*models.AuthToken, error) {
	tokenRepo := repositories.NewAuthTokenRepository(tx)

	if err := tokenRepo.DeleteByUserID(userID); err != nil {
		return nil, appErrors.InternalError(err)
	}

	key, err := auth.GenerateTokenKey()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	token := &models.AuthToken{Key: key, UserID: userID}
	if err := tokenRepo.Create(token); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return token, nil
}
