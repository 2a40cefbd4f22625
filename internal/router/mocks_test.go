package router

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"recipeapi/internal/model"
	"recipeapi/internal/service"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CreateUser(ctx context.Context, email, password string, fields service.UserFields) (*model.User, error) {
	args := m.Called(ctx, email, password, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) CreateSuperuser(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) CheckPassword(user *model.User, candidate string) bool {
	return m.Called(user, candidate).Bool(0)
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID uint, update service.UserUpdate) (*model.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockAuthService) IssueToken(ctx context.Context, user *model.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *mockAuthService) ResolveToken(ctx context.Context, key string) (*model.User, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type mockAttributeService[T model.Attribute] struct {
	mock.Mock
}

func (m *mockAttributeService[T]) List(ctx context.Context, ownerID uint) ([]T, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *mockAttributeService[T]) Create(ctx context.Context, ownerID uint, name string) (*T, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

type mockRecipeService struct {
	mock.Mock
}

func (m *mockRecipeService) List(ctx context.Context, ownerID uint) ([]model.Recipe, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *mockRecipeService) Get(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *mockRecipeService) Create(ctx context.Context, ownerID uint, in service.RecipeInput) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *mockRecipeService) Update(ctx context.Context, ownerID, id uint, in service.RecipeInput, partial bool) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, id, in, partial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *mockRecipeService) Delete(ctx context.Context, ownerID, id uint) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type mockImageService struct {
	mock.Mock
}

func (m *mockImageService) UploadRecipeImage(ctx context.Context, ownerID, recipeID uint, file io.Reader) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, recipeID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *mockImageService) URL(key string) string {
	return m.Called(key).String(0)
}
