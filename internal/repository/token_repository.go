package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recipeapi/internal/model"
)

// TokenRepository defines auth token persistence operations.
type TokenRepository interface {
	// GetOrCreate stores candidateKey for userID unless the user already owns a token,
	// and returns whichever token is persisted.
	GetOrCreate(ctx context.Context, userID uint, candidateKey string) (*model.Token, error)
	FindByKey(ctx context.Context, key string) (*model.Token, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// GetOrCreate relies on the unique user_id index: concurrent first logins insert at most one row
// and all of them read back the winner.
func (r *tokenRepository) GetOrCreate(ctx context.Context, userID uint, candidateKey string) (*model.Token, error) {
	candidate := &model.Token{Key: candidateKey, UserID: userID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(candidate).Error; err != nil {
		return nil, err
	}

	var token model.Token
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// FindByKey finds a token by exact key match, with its user loaded.
func (r *tokenRepository) FindByKey(ctx context.Context, key string) (*model.Token, error) {
	var token model.Token
	if err := r.db.WithContext(ctx).Preload("User").
		Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
