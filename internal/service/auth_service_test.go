package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventbuddy/internal/auth"
	"eventbuddy/internal/model"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uint, email, role string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, role, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uint, string, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uint), args.String(1), args.String(2), args.Error(3)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func (m *MockTokenStore) BlacklistAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// recordingMailer captures welcome emails instead of sending them.
type recordingMailer struct {
	sent []string
}

func (r *recordingMailer) SendRegistrationEmail(to, fullName string) {
	r.sent = append(r.sent, to)
}

func TestAuthService_Register(t *testing.T) {
	existing := &model.User{ID: 1, Email: "taken@x.com"}

	tests := []struct {
		name          string
		email         string
		role          string
		setupMock     func(m *MockUserRepository)
		expectedError error
		wantMail      bool
	}{
		{
			name:  "successful user registration sends welcome mail",
			email: "new@x.com",
			role:  model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "new@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantMail: true,
		},
		{
			name:  "admin registration skips welcome mail",
			email: "boss@x.com",
			role:  model.RoleAdmin,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "boss@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			wantMail: false,
		},
		{
			name:  "email already registered",
			email: "taken@x.com",
			role:  model.RoleUser,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@x.com").Return(existing, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)
			mailer := &recordingMailer{}

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), new(MockTokenStore), mailer)
			user, err := svc.Register(context.Background(), tt.email, "password123", "Test Person", tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
				assert.Empty(t, mailer.sent)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.role, user.Role)
				assert.NotEqual(t, "password123", user.PasswordHash)
				if tt.wantMail {
					assert.Equal(t, []string{tt.email}, mailer.sent)
				} else {
					assert.Empty(t, mailer.sent)
				}
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)
	user := &model.User{ID: 4, Email: "a@x.com", PasswordHash: string(hash), Role: model.RoleUser}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(repo *MockUserRepository, store *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "a@x.com",
			password: "correct-horse",
			setupMock: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)
				store.On("StoreRefreshToken", mock.Anything, mock.AnythingOfType("string"),
					uint(4), "a@x.com", model.RoleUser, auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "a@x.com",
			password: "wrong",
			setupMock: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByEmail", mock.Anything, "a@x.com").Return(user, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@x.com",
			password: "whatever",
			setupMock: func(repo *MockUserRepository, store *MockTokenStore) {
				repo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockStore)
			jwtService := auth.NewJWTService("test-secret")

			svc := NewAuthService(mockRepo, jwtService, mockStore, nil)
			access, refresh, gotUser, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, access)
				assert.Empty(t, refresh)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, access)
				assert.NotEmpty(t, refresh)
				assert.Equal(t, user.ID, gotUser.ID)

				claims, err := jwtService.ValidateToken(access)
				assert.NoError(t, err)
				assert.Equal(t, user.Email, claims.Email)
				assert.Equal(t, model.RoleUser, claims.Role)
			}
			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(4, "a@x.com", model.RoleUser)
	assert.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).
			Return(uint(4), "a@x.com", model.RoleUser, nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore, nil)
		access, err := svc.RefreshToken(context.Background(), refreshToken)
		assert.NoError(t, err)

		claims, err := jwtService.ValidateToken(access)
		assert.NoError(t, err)
		assert.Equal(t, uint(4), claims.UserID)
		assert.Equal(t, model.RoleUser, claims.Role)
		mockStore.AssertExpectations(t)
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("GetRefreshToken", mock.Anything, tokenID).
			Return(uint(0), "", "", ErrInvalidRefreshToken)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore, nil)
		_, err := svc.RefreshToken(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), nil)
		_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken(4, "a@x.com", model.RoleUser)
	assert.NoError(t, err)

	t.Run("revokes both tokens", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("BlacklistAccessToken", mock.Anything, "access-jti", 5*time.Minute).Return(nil)
		mockStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore, nil)
		assert.NoError(t, svc.Logout(context.Background(), refreshToken, "access-jti", 5*time.Minute))
		mockStore.AssertExpectations(t)
	})

	t.Run("expired access token is not blacklisted", func(t *testing.T) {
		mockStore := new(MockTokenStore)
		mockStore.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)

		svc := NewAuthService(new(MockUserRepository), jwtService, mockStore, nil)
		assert.NoError(t, svc.Logout(context.Background(), refreshToken, "access-jti", -time.Minute))
		mockStore.AssertNotCalled(t, "BlacklistAccessToken", mock.Anything, mock.Anything, mock.Anything)
		mockStore.AssertExpectations(t)
	})

	t.Run("garbage refresh token", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore), nil)
		err := svc.Logout(context.Background(), "not-a-jwt", "access-jti", time.Minute)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
