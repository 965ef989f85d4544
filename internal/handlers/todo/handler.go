package todo

import (
	"net/http"
	"strconv"

	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/service"
	"todoapp/shared"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/shared/validator"
	"todoapp/transport/http/middleware"
	"todoapp/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Todo
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Todo, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/todos", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)

		routerGroup.Post("/", handler.CreateTodo)
		routerGroup.Get("/", handler.GetTodos)
		routerGroup.Get("/{id}", handler.GetTodo)
		routerGroup.Put("/{id}", handler.UpdateTodo)
		routerGroup.Delete("/{id}", handler.DeleteTodo)
	})
}

// CreateTodo creates a new todo owned by the authenticated user
// @Summary Create a new todo
// @Description Create a new todo for the authenticated user.
// @Tags Todos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTodoRequest true "Create Todo Request"
// @Success 201 {object} dto.TodoResponse "Todo created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todos [post]
func (handler *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTodo")
	defer scope.End()

	req := dto.CreateTodoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetTodos lists the authenticated user's todos
// @Summary Get todos
// @Description Get the authenticated user's todos with pagination and optional filters.
// @Tags Todos
// @Security BearerAuth
// @Produce json
// @Param skip query int false "Number of rows to skip"
// @Param limit query int false "Maximum number of rows to return"
// @Param sort_by query string false "Field to sort by"
// @Param sort_dir query string false "Sort direction (ASC or DESC)"
// @Param title query string false "Filter by title substring"
// @Param completed query bool false "Filter by completion status"
// @Success 200 {object} dto.GetTodosResponse "Todos retrieved successfully"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todos [get]
func (handler *Handler) GetTodos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodos")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldOwnerID,
				Value:    ownerID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	if title := r.URL.Query().Get("title"); title != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Value:    title,
			Operator: gDto.FilterOperatorLike,
			Table:    model.TableName,
		})
	}

	if completed := shared.ConvertStringToBool(r.URL.Query().Get("completed")); completed != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCompleted,
			Value:    *completed,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	res, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todos")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todos retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetTodo retrieves a single todo by ID
// @Summary Get a todo
// @Description Get a todo owned by the authenticated user by its ID.
// @Tags Todos
// @Security BearerAuth
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse "Todo retrieved successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todos/{id} [get]
func (handler *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTodo")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid todo id")

		response.WithError(w, failure.InvalidIDParam)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateTodo partially updates a todo
// @Summary Update a todo
// @Description Update a todo owned by the authenticated user. Only provided fields are changed.
// @Tags Todos
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Update Todo Request"
// @Success 200 {object} dto.TodoResponse "Todo updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todos/{id} [put]
func (handler *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTodo")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid todo id")

		response.WithError(w, failure.InvalidIDParam)

		return
	}

	req := dto.UpdateTodoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteTodo deletes a todo and returns its last state
// @Summary Delete a todo
// @Description Delete a todo owned by the authenticated user. The deleted todo is returned.
// @Tags Todos
// @Security BearerAuth
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} dto.TodoResponse "Todo deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /todos/{id} [delete]
func (handler *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTodo")
	defer scope.End()

	id, err := strconv.ParseInt(chi.URLParam(r, constant.RequestParamID), 10, 64)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid todo id")

		response.WithError(w, failure.InvalidIDParam)

		return
	}

	res, err := handler.service.Delete(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete todo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Todo deleted successfully")

	response.WithJSON(w, http.StatusOK, res)
}
