package middleware

import (
	"context"
	"errors"
	"net/http"

	"todoapp/config"
	"todoapp/infras/jwt"
	"todoapp/infras/otel"
	userModel "todoapp/internal/domains/user/model"
	userRepo "todoapp/internal/domains/user/repository"
	"todoapp/shared"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/transport/http/response"

	"github.com/rs/zerolog/log"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	Superuser(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	userRepo   userRepo.User
	otel       otel.Otel
	cfg        *config.Config
}

// NewAuthMiddleware creates a new middleware instance
func NewAuthMiddleware(jwtService jwt.JWT, userRepo userRepo.User, otel otel.Otel, cfg *config.Config) Auth {
	return &authImpl{
		jwtService: jwtService,
		userRepo:   userRepo,
		otel:       otel,
		cfg:        cfg,
	}
}

// Auth validates the bearer token and resolves the calling user.
// The token alone is not enough: the user row must still exist and be active.
func (m *authImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
		})

		authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
		if authHeader == "" {
			err := failure.Unauthorized("Missing authorization header")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			err := failure.Unauthorized("Invalid authorization header format")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			var message string

			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				message = "Token has expired"
			case errors.Is(err, jwt.ErrInvalidToken):
				message = "Invalid token"
			case errors.Is(err, jwt.ErrInvalidClaim):
				message = "Invalid token claims"
			default:
				message = "Token validation failed"
			}

			err := failure.Unauthorized(message)
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if claims.UserID == 0 || claims.Email == "" {
			log.Error().Msg("JWT claims: user identity is empty")

			err := failure.Unauthorized("Invalid token claims")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		user, err := m.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
		if err != nil {
			log.Error().Err(err).Int64("user_id", claims.UserID).Msg("failed to load token user")

			err := failure.Unauthorized("Token validation failed")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		if user.ID == 0 || !user.Active {
			err := failure.Unauthorized("User not found or inactive")
			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, user.ID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, user.Email)
		ctx = context.WithValue(ctx, constant.ContextKeySuperuser, user.IsSuperuser)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.TokenID)

		scope.End()

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Superuser requires prior authentication via Auth middleware.
func (m *authImpl) Superuser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "superuser.middleware")

		superuser, _ := ctx.Value(constant.ContextKeySuperuser).(bool)
		if !superuser {
			err := failure.ForbiddenError

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}
