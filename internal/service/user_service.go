package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipeapi/internal/auth"
	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
	"recipeapi/internal/repository"
)

// UserFields are the optional attributes of a new user.
type UserFields struct {
	Name        string
	IsStaff     bool
	IsSuperuser bool
}

// UserUpdate is a partial profile update; nil fields are left unchanged.
type UserUpdate struct {
	Name     *string
	Password *string
}

// UserService exposes account operations.
type UserService interface {
	CreateUser(ctx context.Context, email, password string, fields UserFields) (*model.User, error)
	CreateSuperuser(ctx context.Context, email, password string) (*model.User, error)
	CheckPassword(user *model.User, candidate string) bool
	UpdateUser(ctx context.Context, userID uint, update UserUpdate) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	hasher *auth.Hasher
	log    *zap.Logger
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository, hasher *auth.Hasher, log *zap.Logger) UserService {
	return &userService{repo: repo, hasher: hasher, log: log}
}

// NormalizeEmail lowercases the whole address and strips surrounding space.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser hashes password and stores a new active user.
// An empty password leaves the account without a usable password.
func (s *userService) CreateUser(ctx context.Context, email, password string, fields UserFields) (*model.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}

	var hash string
	if password != "" {
		var err error
		if hash, err = s.hasher.Hash(password); err != nil {
			return nil, err
		}
	}

	user := &model.User{
		Email:        email,
		Name:         fields.Name,
		PasswordHash: hash,
		IsActive:     true,
		IsStaff:      fields.IsStaff,
		IsSuperuser:  fields.IsSuperuser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user created", zap.Uint("user_id", user.ID), zap.Bool("superuser", user.IsSuperuser))
	return user, nil
}

func (s *userService) CreateSuperuser(ctx context.Context, email, password string) (*model.User, error) {
	return s.CreateUser(ctx, email, password, UserFields{IsStaff: true, IsSuperuser: true})
}

func (s *userService) CheckPassword(user *model.User, candidate string) bool {
	if user == nil {
		return false
	}
	return s.hasher.Check(user.PasswordHash, candidate)
}

func (s *userService) UpdateUser(ctx context.Context, userID uint, update UserUpdate) (*model.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
