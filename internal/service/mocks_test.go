package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"recipeapi/internal/model"
	"recipeapi/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockTokenRepository is a mock implementation of TokenRepository.
type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) GetOrCreate(ctx context.Context, userID uint, candidateKey string) (*model.Token, error) {
	args := m.Called(ctx, userID, candidateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

func (m *MockTokenRepository) FindByKey(ctx context.Context, key string) (*model.Token, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Token), args.Error(1)
}

// MockTokenCache is a mock implementation of auth.TokenCacheInterface.
type MockTokenCache struct {
	mock.Mock
}

func (m *MockTokenCache) GetUserID(ctx context.Context, key string) (uint, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(uint), args.Bool(1)
}

func (m *MockTokenCache) StoreUserID(ctx context.Context, key string, userID uint) error {
	args := m.Called(ctx, key, userID)
	return args.Error(0)
}

func (m *MockTokenCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockAttributeRepository is a mock implementation of AttributeRepository.
type MockAttributeRepository[T model.Attribute] struct {
	mock.Mock
}

func (m *MockAttributeRepository[T]) Create(ctx context.Context, item *T) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockAttributeRepository[T]) ListByOwner(ctx context.Context, ownerID uint) ([]T, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockAttributeRepository[T]) FindByIDs(ctx context.Context, ids []uint) ([]T, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

// MockRecipeRepository is a mock implementation of RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Recipe, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByIDForOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	if args.Error(0) == nil && recipe.ID == 0 {
		recipe.ID = 1
	}
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *model.Recipe, mask repository.AssociationMask) error {
	args := m.Called(ctx, recipe, mask)
	return args.Error(0)
}

func (m *MockRecipeRepository) UpdateImage(ctx context.Context, id uint, image string) error {
	args := m.Called(ctx, id, image)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.RecipeRepository) error) error {
	args := m.Called(ctx, fn)
	return args.Error(0)
}

// MockImageStore is a mock implementation of storage.ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	args := m.Called(ctx, key, body, contentType)
	return args.Error(0)
}

func (m *MockImageStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockImageStore) URL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
