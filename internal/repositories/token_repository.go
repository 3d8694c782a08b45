package repositories

import (
	"errors"
	"time"

	"jobboard_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository interface {
	// Upsert keeps one row per (user, type): reissuing replaces the token
	// string and resets the creation time.
	Upsert(db *gorm.DB, userID string, tokenType models.TokenType, token string) (*models.Token, error)

	// FindByEmailAndToken resolves a token through the owning user's email.
	FindByEmailAndToken(db *gorm.DB, email, token string, tokenType models.TokenType) (*models.Token, error)

	Delete(db *gorm.DB, id string) error
}

type TokenRepositoryImpl struct{}

func NewTokenRepository() TokenRepository {
	return &TokenRepositoryImpl{}
}

func (r *TokenRepositoryImpl) Upsert(db *gorm.DB, userID string, tokenType models.TokenType, token string) (*models.Token, error) {
	var existing models.Token
	err := db.Where("user_id = ? AND token_type = ?", userID, tokenType).First(&existing).Error

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		created := models.Token{
			UserID:    userID,
			Token:     token,
			TokenType: tokenType,
		}
		if err := db.Create(&created).Error; err != nil {
			return nil, err
		}
		return &created, nil
	}

	now := time.Now().UTC()
	result := db.Model(&existing).Updates(map[string]interface{}{
		"token":      token,
		"created_at": now,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	existing.Token = token
	existing.CreatedAt = now
	return &existing, nil
}

func (r *TokenRepositoryImpl) FindByEmailAndToken(db *gorm.DB, email, token string, tokenType models.TokenType) (*models.Token, error) {
	var t models.Token
	err := db.Joins("JOIN users ON users.id = tokens.user_id").
		Where("users.email = ? AND tokens.token = ? AND tokens.token_type = ?", email, token, tokenType).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Token{}, "id = ?", id).Error
}
