package user

import (
	"net/http"

	"todoapp/infras/otel"
	"todoapp/internal/domains/user/model/dto"
	"todoapp/internal/domains/user/service"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/validator"
	"todoapp/transport/http/middleware"
	"todoapp/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.User
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.User, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Get("/me", handler.GetProfile)
		routerGroup.Put("/me", handler.UpdateProfile)

		routerGroup.With(handler.middleware.Superuser).Get("/", handler.GetUsers)
	})
}

// GetProfile returns the authenticated user's profile
// @Summary Get own profile
// @Description Get the profile of the authenticated user.
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse "Profile retrieved successfully"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /users/me [get]
func (handler *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	res, err := handler.service.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateProfile updates the authenticated user's email or username
// @Summary Update own profile
// @Description Update the email or username of the authenticated user.
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} dto.UserResponse "Profile updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /users/me [put]
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	req := dto.UpdateProfileRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	res, err := handler.service.UpdateProfile(ctx, req, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetUsers lists all users, superusers only
// @Summary Get users
// @Description Get all users with pagination. Requires superuser privileges.
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param skip query int false "Number of rows to skip"
// @Param limit query int false "Maximum number of rows to return"
// @Param sort_by query string false "Field to sort by"
// @Param sort_dir query string false "Sort direction (ASC or DESC)"
// @Success 200 {object} dto.GetUsersResponse "Users retrieved successfully"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /users [get]
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams, gDto.FilterGroup{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Users retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}
