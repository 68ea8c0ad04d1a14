package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
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

func (m *MockUserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) ReplacePermissions(ctx context.Context, id uuid.UUID, perms []model.Permission) error {
	args := m.Called(ctx, id, perms)
	return args.Error(0)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, userID uuid.UUID, email string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, userID, email, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (uuid.UUID, string, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

func newAuthFixture() (*MockUserRepository, *MockTokenStore, *MockActivityService, AuthService) {
	users := new(MockUserRepository)
	tokens := new(MockTokenStore)
	activity := new(MockActivityService)
	svc := NewAuthService(users, auth.NewJWTService("test-secret"), tokens, activity, zerolog.Nop())
	return users, tokens, activity, svc
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "creates a credentials user",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "jane@example.com" &&
						u.Provider == model.ProviderCredentials &&
						u.Role == model.RoleUser &&
						u.PasswordHash != "" && u.PasswordHash != "secret123"
				})).Return(nil)
			},
		},
		{
			name: "rejects an existing email",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").
					Return(&model.User{ID: uuid.New(), Email: "jane@example.com"}, nil)
			},
			expectedError: ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, _, _, svc := newAuthFixture()
			tt.setupMock(users)

			user, err := svc.Register(context.Background(), "Jane", "jane@example.com", "secret123")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret123")))
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcryptCost)
	assert.NoError(t, err)

	credentialsUser := &model.User{
		ID:           uuid.New(),
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Provider:     model.ProviderCredentials,
		Role:         model.RoleUser,
	}

	tests := []struct {
		name          string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore, *MockActivityService)
		expectedError error
	}{
		{
			name:     "issues both tokens and records the sign-in",
			password: "secret123",
			setupMock: func(users *MockUserRepository, tokens *MockTokenStore, activity *MockActivityService) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").Return(credentialsUser, nil)
				tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, credentialsUser.ID, credentialsUser.Email, auth.RefreshTokenExpiry).Return(nil)
				activity.On("Log", mock.Anything, credentialsUser.ID, model.ActivityLogin, mock.Anything, mock.Anything).Return()
			},
		},
		{
			name:     "wrong password",
			password: "wrong",
			setupMock: func(users *MockUserRepository, tokens *MockTokenStore, activity *MockActivityService) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").Return(credentialsUser, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			password: "secret123",
			setupMock: func(users *MockUserRepository, tokens *MockTokenStore, activity *MockActivityService) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "google account cannot use password login",
			password: "secret123",
			setupMock: func(users *MockUserRepository, tokens *MockTokenStore, activity *MockActivityService) {
				users.On("FindByEmail", mock.Anything, "jane@example.com").
					Return(&model.User{ID: uuid.New(), Email: "jane@example.com", Provider: model.ProviderGoogle}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, tokens, activity, svc := newAuthFixture()
			tt.setupMock(users, tokens, activity)

			accessToken, refreshToken, user, err := svc.Login(context.Background(), "jane@example.com", tt.password, "203.0.113.9")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, credentialsUser.ID, user.ID)
			}

			users.AssertExpectations(t)
			tokens.AssertExpectations(t)
			activity.AssertExpectations(t)
		})
	}
}

func TestAuthService_GoogleSignIn(t *testing.T) {
	t.Run("first sign-in creates the user", func(t *testing.T) {
		users, tokens, activity, svc := newAuthFixture()
		users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
		users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Provider == model.ProviderGoogle && u.Role == model.RoleUser
		})).Return(nil)
		tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, mock.Anything, "new@example.com", auth.RefreshTokenExpiry).Return(nil)
		activity.On("Log", mock.Anything, mock.Anything, model.ActivityLogin, mock.Anything, mock.Anything).Return()

		accessToken, refreshToken, user, err := svc.GoogleSignIn(context.Background(), "new@example.com", "New User", "https://example.com/p.png", "")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, model.ProviderGoogle, user.Provider)
		users.AssertExpectations(t)
	})

	t.Run("returning user keeps their record", func(t *testing.T) {
		users, tokens, activity, svc := newAuthFixture()
		existing := &model.User{ID: uuid.New(), Email: "old@example.com", Provider: model.ProviderGoogle, Image: "https://example.com/p.png"}
		users.On("FindByEmail", mock.Anything, "old@example.com").Return(existing, nil)
		tokens.On("StoreRefreshToken", mock.Anything, mock.Anything, existing.ID, existing.Email, auth.RefreshTokenExpiry).Return(nil)
		activity.On("Log", mock.Anything, existing.ID, model.ActivityLogin, mock.Anything, mock.Anything).Return()

		_, _, user, err := svc.GoogleSignIn(context.Background(), "old@example.com", "Old User", "https://example.com/p.png", "")

		assert.NoError(t, err)
		assert.Equal(t, existing.ID, user.ID)
		users.AssertNotCalled(t, "Create")
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	userID := uuid.New()
	email := "jane@example.com"
	jwtService := auth.NewJWTService("test-secret")

	t.Run("mints an access token with the current role", func(t *testing.T) {
		users, tokens, _, svc := newAuthFixture()
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, email)
		assert.NoError(t, err)

		tokens.On("GetRefreshToken", mock.Anything, tokenID).Return(userID, email, nil)
		users.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, Email: email, Role: model.RoleAdmin}, nil)

		accessToken, err := svc.RefreshToken(context.Background(), refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)

		claims, err := jwtService.ValidateToken(accessToken)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, claims.Role)
	})

	t.Run("token absent from the store", func(t *testing.T) {
		_, tokens, _, svc := newAuthFixture()
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, email)
		assert.NoError(t, err)

		tokens.On("GetRefreshToken", mock.Anything, tokenID).
			Return(uuid.Nil, "", assert.AnError)

		_, err = svc.RefreshToken(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()
		_, err := svc.RefreshToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("stored identity mismatch", func(t *testing.T) {
		_, tokens, _, svc := newAuthFixture()
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, email)
		assert.NoError(t, err)

		tokens.On("GetRefreshToken", mock.Anything, tokenID).Return(uuid.New(), email, nil)

		_, err = svc.RefreshToken(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	userID := uuid.New()
	jwtService := auth.NewJWTService("test-secret")

	t.Run("drops the refresh token and records the sign-out", func(t *testing.T) {
		_, tokens, activity, svc := newAuthFixture()
		tokenID, refreshToken, err := jwtService.GenerateRefreshToken(userID, "jane@example.com")
		assert.NoError(t, err)

		tokens.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
		activity.On("Log", mock.Anything, userID, model.ActivityLogout, mock.Anything, mock.Anything).Return()

		assert.NoError(t, svc.Logout(context.Background(), refreshToken, "203.0.113.9"))
		tokens.AssertExpectations(t)
		activity.AssertExpectations(t)
	})

	t.Run("access tokens carry no jti and cannot log out", func(t *testing.T) {
		_, _, _, svc := newAuthFixture()
		accessToken, err := jwtService.GenerateAccessToken(userID, "jane@example.com", model.RoleUser)
		assert.NoError(t, err)

		err = svc.Logout(context.Background(), accessToken, "")
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}
