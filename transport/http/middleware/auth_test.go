package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"todoapp/config"
	"todoapp/infras/jwt"
	jwtMocks "todoapp/infras/jwt/mocks"
	"todoapp/infras/otel/mocks"
	userMocks "todoapp/internal/domains/user/mocks"
	"todoapp/internal/domains/user/model"
	"todoapp/shared/constant"
	"todoapp/transport/http/middleware"
)

func newAuthMiddleware(t *testing.T) (middleware.Auth, *jwtMocks.MockJWT, *userMocks.MockUser) {
	ctrl := gomock.NewController(t)
	jwtService := jwtMocks.NewMockJWT(ctrl)
	userRepo := userMocks.NewMockUser(ctrl)

	return middleware.NewAuthMiddleware(jwtService, userRepo, mocks.NewOtel(), &config.Config{}), jwtService, userRepo
}

func authRequest(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	if header != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, header)
	}

	return req
}

func validClaims() *jwt.Claims {
	return &jwt.Claims{
		UserID:  7,
		Email:   "alice@example.com",
		TokenID: "token-id",
		Type:    jwt.AccessToken,
	}
}

func TestAuthMiddleware_Auth(t *testing.T) {
	t.Run("valid token and active user", func(t *testing.T) {
		m, jwtService, userRepo := newAuthMiddleware(t)

		jwtService.EXPECT().
			ValidateToken("valid-token", jwt.AccessToken).
			Return(validClaims(), nil)
		userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: 7, Email: "alice@example.com", Active: true}, nil)

		var gotUserID int64
		var gotSuperuser bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUserID, _ = r.Context().Value(constant.ContextKeyUserID).(int64)
			gotSuperuser, _ = r.Context().Value(constant.ContextKeySuperuser).(bool)
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		m.Auth(next).ServeHTTP(rec, authRequest("Bearer valid-token"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, int64(7), gotUserID)
		assert.False(t, gotSuperuser)
	})

	t.Run("superuser flag propagated", func(t *testing.T) {
		m, jwtService, userRepo := newAuthMiddleware(t)

		jwtService.EXPECT().
			ValidateToken("admin-token", jwt.AccessToken).
			Return(validClaims(), nil)
		userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: 7, Email: "alice@example.com", Active: true, IsSuperuser: true}, nil)

		var gotSuperuser bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSuperuser, _ = r.Context().Value(constant.ContextKeySuperuser).(bool)
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		m.Auth(next).ServeHTTP(rec, authRequest("Bearer admin-token"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotSuperuser)
	})

	t.Run("missing authorization header", func(t *testing.T) {
		m, _, _ := newAuthMiddleware(t)

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		rec := httptest.NewRecorder()
		m.Auth(next).ServeHTTP(rec, authRequest(""))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, nextCalled)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		m, _, _ := newAuthMiddleware(t)

		rec := httptest.NewRecorder()
		m.Auth(http.NotFoundHandler()).ServeHTTP(rec, authRequest("Token abc"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		m, jwtService, _ := newAuthMiddleware(t)

		jwtService.EXPECT().
			ValidateToken("expired-token", jwt.AccessToken).
			Return(nil, jwt.ErrExpiredToken)

		rec := httptest.NewRecorder()
		m.Auth(http.NotFoundHandler()).ServeHTTP(rec, authRequest("Bearer expired-token"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Token has expired")
	})

	t.Run("garbage token", func(t *testing.T) {
		m, jwtService, _ := newAuthMiddleware(t)

		jwtService.EXPECT().
			ValidateToken("garbage", jwt.AccessToken).
			Return(nil, jwt.ErrInvalidToken)

		rec := httptest.NewRecorder()
		m.Auth(http.NotFoundHandler()).ServeHTTP(rec, authRequest("Bearer garbage"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
	})

	t.Run("token user no longer exists", func(t *testing.T) {
		m, jwtService, userRepo := newAuthMiddleware(t)

		jwtService.EXPECT().
			ValidateToken("orphan-token", jwt.AccessToken).
			Return(validClaims(), nil)
		userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		rec := httptest.NewRecorder()
		m.Auth(next).ServeHTTP(rec, authRequest("Bearer orphan-token"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "User not found or inactive")
		assert.False(t, nextCalled)
	})

	t.Run("token user deactivated", func(t *testing.T) {
		m, jwtService, userRepo := newAuthMiddleware(t)

		jwtService.EXPECT().
			ValidateToken("inactive-token", jwt.AccessToken).
			Return(validClaims(), nil)
		userRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{ID: 7, Email: "alice@example.com", Active: false}, nil)

		rec := httptest.NewRecorder()
		m.Auth(http.NotFoundHandler()).ServeHTTP(rec, authRequest("Bearer inactive-token"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "User not found or inactive")
	})
}

func TestAuthMiddleware_Superuser(t *testing.T) {
	t.Run("superuser passes through", func(t *testing.T) {
		m, _, _ := newAuthMiddleware(t)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		req := authRequest("")
		req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeySuperuser, true))

		rec := httptest.NewRecorder()
		m.Superuser(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular user forbidden", func(t *testing.T) {
		m, _, _ := newAuthMiddleware(t)

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		req := authRequest("")
		req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeySuperuser, false))

		rec := httptest.NewRecorder()
		m.Superuser(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, nextCalled)
	})
}
