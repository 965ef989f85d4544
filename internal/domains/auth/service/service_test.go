package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"todoapp/config"
	"todoapp/infras/jwt"
	jwtMocks "todoapp/infras/jwt/mocks"
	"todoapp/infras/otel/mocks"
	"todoapp/internal/domains/auth/model/dto"
	"todoapp/internal/domains/auth/service"
	userMocks "todoapp/internal/domains/user/mocks"
	userModel "todoapp/internal/domains/user/model"
	"todoapp/shared/failure"
	gModel "todoapp/shared/model"
	"todoapp/shared/timezone"
)

func validUser() userModel.User {
	return userModel.User{
		ID:       42,
		Email:    "test@example.com",
		Username: "testuser",
		Password: "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi", // "password" hashed
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	validReq := dto.RegisterRequest{
		Email:    "new@example.com",
		Username: "newuser",
		Password: "password123",
	}

	t.Run("successful registration", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil).
			Times(2)

		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user userModel.User) (int64, error) {
				assert.Equal(t, validReq.Email, user.Email)
				assert.Equal(t, validReq.Username, user.Username)
				assert.NotEqual(t, validReq.Password, user.Password)
				assert.True(t, user.Active)
				assert.False(t, user.IsSuperuser)

				return 1, nil
			})

		res, err := svc.Register(context.Background(), validReq)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.ID)
		assert.Equal(t, validReq.Email, res.Email)
		assert.Equal(t, validReq.Username, res.Username)
	})

	t.Run("email already registered", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		_, err := svc.Register(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "email already registered", err.Error())
	})

	t.Run("username already taken", func(t *testing.T) {
		gomock.InOrder(
			mockUserRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(false, nil),
			mockUserRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil),
		)

		_, err := svc.Register(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "username already taken", err.Error())
	})

	t.Run("concurrent registration loses the insert race", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil).
			Times(2)

		uniqueViolation := fmt.Errorf("failed to insert data (user): %w", &pq.Error{Code: "23505"})

		mockUserRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(int64(0), uniqueViolation)

		_, err := svc.Register(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "email or username already registered", err.Error())
	})

	t.Run("repository error", func(t *testing.T) {
		mockUserRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("database error"))

		_, err := svc.Register(context.Background(), validReq)

		assert.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	tokenPair := &jwt.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "bearer",
		ExpiresIn:    1800,
	}

	tests := []struct {
		name       string
		req        dto.LoginRequest
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantErrMsg string
	}{
		{
			name: "successful login with username",
			req: dto.LoginRequest{
				Username: "testuser",
				Password: "password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)

				mockJWT.EXPECT().
					GenerateTokenPair(int64(42), "test@example.com").
					Return(tokenPair, nil)

				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "successful login with email",
			req: dto.LoginRequest{
				Username: "test@example.com",
				Password: "password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)

				mockJWT.EXPECT().
					GenerateTokenPair(int64(42), "test@example.com").
					Return(tokenPair, nil)

				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "user not found",
			req: dto.LoginRequest{
				Username: "nobody",
				Password: "password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr:    true,
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "invalid username or password",
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Username: "testuser",
				Password: "wrongpassword",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)
			},
			wantErr:    true,
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "invalid username or password",
		},
		{
			name: "deactivated user",
			req: dto.LoginRequest{
				Username: "testuser",
				Password: "password",
			},
			setupMock: func() {
				inactive := validUser()
				inactive.Active = false

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactive, nil)
			},
			wantErr:    true,
			wantCode:   http.StatusBadRequest,
			wantErrMsg: "user account is deactivated",
		},
		{
			name: "token generation error",
			req: dto.LoginRequest{
				Username: "testuser",
				Password: "password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)

				mockJWT.EXPECT().
					GenerateTokenPair(int64(42), "test@example.com").
					Return(nil, errors.New("token generation failed"))
			},
			wantErr: true,
		},
		{
			name: "last login update error",
			req: dto.LoginRequest{
				Username: "testuser",
				Password: "password",
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser(), nil)

				mockJWT.EXPECT().
					GenerateTokenPair(int64(42), "test@example.com").
					Return(tokenPair, nil)

				mockUserRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				if tt.wantErrMsg != "" {
					assert.Equal(t, tt.wantErrMsg, err.Error())
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
				assert.Equal(t, "refresh-token", res.RefreshToken)
				assert.Equal(t, "bearer", res.TokenType)
				assert.Equal(t, int64(1800), res.ExpiresIn)
			}
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockUserRepo, cfg, mockOtel, mockJWT)

	t.Run("successful token refresh", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
				TokenType:    "bearer",
				ExpiresIn:    1800,
			}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access-token", res.AccessToken)
		assert.Equal(t, "new-refresh-token", res.RefreshToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		mockJWT.EXPECT().
			RefreshTokens("invalid-refresh-token").
			Return(nil, errors.New("invalid token"))

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "invalid-refresh-token"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}
