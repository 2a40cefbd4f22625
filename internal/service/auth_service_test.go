package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipeapi/internal/auth"
	apperrors "recipeapi/internal/errors"
	"recipeapi/internal/model"
)

const testTokenKey = "0123456789abcdef0123456789abcdef01234567"

func newTestAuthService(users *MockUserRepository, tokens *MockTokenRepository, cache *MockTokenCache) AuthService {
	return NewAuthService(users, tokens, newTestHasher(), cache, zap.NewNop())
}

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := newTestHasher().Hash(password)
	require.NoError(t, err)
	return &model.User{ID: 5, Email: "test@example.com", Name: "Test", PasswordHash: hash, IsActive: true}
}

func TestAuthService_Authenticate(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*testing.T, *MockUserRepository)
		expectedError error
	}{
		{
			name:     "valid credentials with mixed case email",
			email:    "Test@Example.com",
			password: "testpass123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(activeUser(t, "testpass123"), nil)
			},
		},
		{
			name:     "unknown email",
			email:    "notfound@example.com",
			password: "testpass123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(activeUser(t, "testpass123"), nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "inactive user",
			email:    "test@example.com",
			password: "testpass123",
			setupMock: func(t *testing.T, m *MockUserRepository) {
				u := activeUser(t, "testpass123")
				u.IsActive = false
				m.On("FindByEmail", mock.Anything, "test@example.com").Return(u, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "blank email",
			email:         "",
			password:      "testpass123",
			setupMock:     func(t *testing.T, m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(t, users)
			svc := newTestAuthService(users, new(MockTokenRepository), new(MockTokenCache))

			user, err := svc.Authenticate(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(5), user.ID)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_AuthenticateStoreFailure(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "test@example.com").Return(nil, errors.New("db down"))
	svc := newTestAuthService(users, new(MockTokenRepository), new(MockTokenCache))

	_, err := svc.Authenticate(context.Background(), "test@example.com", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_IssueTokenIsIdempotent(t *testing.T) {
	tokens := new(MockTokenRepository)
	tokens.On("GetOrCreate", mock.Anything, uint(5), mock.MatchedBy(auth.ValidKeyFormat)).
		Return(&model.Token{Key: testTokenKey, UserID: 5}, nil)
	svc := newTestAuthService(new(MockUserRepository), tokens, new(MockTokenCache))
	user := &model.User{ID: 5}

	first, err := svc.IssueToken(context.Background(), user)
	require.NoError(t, err)
	second, err := svc.IssueToken(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, testTokenKey, first)
	assert.Equal(t, first, second)
	tokens.AssertNumberOfCalls(t, "GetOrCreate", 2)
}

func TestAuthService_Login(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "test@example.com").Return(activeUser(t, "testpass123"), nil)
	users.On("TouchLastLogin", mock.Anything, uint(5), mock.Anything).Return(nil)
	tokens := new(MockTokenRepository)
	tokens.On("GetOrCreate", mock.Anything, uint(5), mock.Anything).Return(&model.Token{Key: testTokenKey, UserID: 5}, nil)
	svc := newTestAuthService(users, tokens, new(MockTokenCache))

	token, err := svc.Login(context.Background(), "test@example.com", "testpass123")
	require.NoError(t, err)
	assert.Equal(t, testTokenKey, token)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAuthService_LoginInvalidIssuesNoToken(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "test@example.com").Return(activeUser(t, "testpass123"), nil)
	tokens := new(MockTokenRepository)
	svc := newTestAuthService(users, tokens, new(MockTokenCache))

	token, err := svc.Login(context.Background(), "test@example.com", "wrong")
	assert.Equal(t, apperrors.ErrInvalidCredentials, err)
	assert.Empty(t, token)
	tokens.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ResolveToken(t *testing.T) {
	t.Run("malformed key skips the store", func(t *testing.T) {
		svc := newTestAuthService(new(MockUserRepository), new(MockTokenRepository), new(MockTokenCache))
		_, err := svc.ResolveToken(context.Background(), "nope")
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("cache hit", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("GetUserID", mock.Anything, testTokenKey).Return(uint(5), true)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, IsActive: true}, nil)
		tokens := new(MockTokenRepository)
		svc := newTestAuthService(users, tokens, cache)

		user, err := svc.ResolveToken(context.Background(), testTokenKey)
		require.NoError(t, err)
		assert.Equal(t, uint(5), user.ID)
		tokens.AssertNotCalled(t, "FindByKey", mock.Anything, mock.Anything)
	})

	t.Run("cache miss loads token and fills cache", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("GetUserID", mock.Anything, testTokenKey).Return(uint(0), false)
		cache.On("StoreUserID", mock.Anything, testTokenKey, uint(5)).Return(nil)
		tokens := new(MockTokenRepository)
		tokens.On("FindByKey", mock.Anything, testTokenKey).
			Return(&model.Token{Key: testTokenKey, UserID: 5, User: &model.User{ID: 5, IsActive: true}}, nil)
		svc := newTestAuthService(new(MockUserRepository), tokens, cache)

		user, err := svc.ResolveToken(context.Background(), testTokenKey)
		require.NoError(t, err)
		assert.Equal(t, uint(5), user.ID)
		cache.AssertExpectations(t)
	})

	t.Run("unknown token", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("GetUserID", mock.Anything, testTokenKey).Return(uint(0), false)
		tokens := new(MockTokenRepository)
		tokens.On("FindByKey", mock.Anything, testTokenKey).Return(nil, gorm.ErrRecordNotFound)
		svc := newTestAuthService(new(MockUserRepository), tokens, cache)

		_, err := svc.ResolveToken(context.Background(), testTokenKey)
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("inactive user", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("GetUserID", mock.Anything, testTokenKey).Return(uint(0), false)
		cache.On("StoreUserID", mock.Anything, testTokenKey, uint(5)).Return(nil)
		tokens := new(MockTokenRepository)
		tokens.On("FindByKey", mock.Anything, testTokenKey).
			Return(&model.Token{Key: testTokenKey, UserID: 5, User: &model.User{ID: 5, IsActive: false}}, nil)
		svc := newTestAuthService(new(MockUserRepository), tokens, cache)

		_, err := svc.ResolveToken(context.Background(), testTokenKey)
		assert.Equal(t, apperrors.ErrInvalidToken, err)
	})

	t.Run("stale cache entry falls back to the store", func(t *testing.T) {
		cache := new(MockTokenCache)
		cache.On("GetUserID", mock.Anything, testTokenKey).Return(uint(8), true)
		cache.On("Delete", mock.Anything, testTokenKey).Return(nil)
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(8)).Return(nil, gorm.ErrRecordNotFound)
		tokens := new(MockTokenRepository)
		tokens.On("FindByKey", mock.Anything, testTokenKey).Return(nil, gorm.ErrRecordNotFound)
		svc := newTestAuthService(users, tokens, cache)

		_, err := svc.ResolveToken(context.Background(), testTokenKey)
		assert.Equal(t, apperrors.ErrInvalidToken, err)
		cache.AssertExpectations(t)
	})
}
