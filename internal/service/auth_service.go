package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipeapi/internal/auth"
	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
	"recipeapi/internal/repository"
)

// AuthService handles credential checks and token issuance.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	IssueToken(ctx context.Context, user *model.User) (string, error)
	ResolveToken(ctx context.Context, key string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}

type authService struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	hasher     *auth.Hasher
	tokenCache auth.TokenCacheInterface
	log        *zap.Logger
	now        func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	hasher *auth.Hasher,
	tokenCache auth.TokenCacheInterface,
	log *zap.Logger,
) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		hasher:     hasher,
		tokenCache: tokenCache,
		log:        log,
		now:        time.Now,
	}
}

// Authenticate returns ErrInvalidCredentials for unknown emails, wrong passwords and inactive users alike.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// keep the miss as slow as a wrong password
			s.hasher.Check(s.placeholderHash(), password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Check(user.PasswordHash, password) || !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken returns the user's existing token or persists a new one.
func (s *authService) IssueToken(ctx context.Context, user *model.User) (string, error) {
	key, err := auth.GenerateKey()
	if err != nil {
		return "", err
	}
	token, err := s.tokens.GetOrCreate(ctx, user.ID, key)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token.Key, nil
}

// ResolveToken maps a token key to its active user.
func (s *authService) ResolveToken(ctx context.Context, key string) (*model.User, error) {
	if !auth.ValidKeyFormat(key) {
		return nil, apperrors.ErrInvalidToken
	}

	if userID, ok := s.tokenCache.GetUserID(ctx, key); ok {
		user, err := s.users.FindByID(ctx, userID)
		if err == nil {
			return activeOrInvalid(user)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		_ = s.tokenCache.Delete(ctx, key)
	}

	token, err := s.tokens.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	user := token.User
	if user == nil {
		if user, err = s.users.FindByID(ctx, token.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrInvalidToken
			}
			return nil, fmt.Errorf("find user: %w", err)
		}
	}

	_ = s.tokenCache.StoreUserID(ctx, key, user.ID)
	return activeOrInvalid(user)
}

// Login authenticates and returns the user's token.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return "", err
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		s.log.Warn("update last login failed", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return token, nil
}

func (s *authService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("placeholder-password")
	})
	return s.dummyHash
}

func activeOrInvalid(user *model.User) (*model.User, error) {
	if !user.IsActive {
		return nil, apperrors.ErrInvalidToken
	}
	return user, nil
}
