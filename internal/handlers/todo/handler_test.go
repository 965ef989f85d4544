package todo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"todoapp/infras/otel/mocks"
	"todoapp/internal/domains/todo/model/dto"
	serviceMocks "todoapp/internal/domains/todo/service/mocks"
	"todoapp/internal/handlers/todo"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
)

func requestWithID(method, target, id string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(constant.RequestParamID, id)

	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = context.WithValue(ctx, constant.ContextKeyUserID, int64(7))

	return req.WithContext(ctx)
}

func TestTodoHandler_CreateTodo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockTodo(ctrl)
	handler := todo.New(mockService, nil, mocks.NewOtel())

	t.Run("successful creation", func(t *testing.T) {
		mockService.EXPECT().
			Create(gomock.Any(), dto.CreateTodoRequest{Title: "Buy groceries"}).
			Return(dto.TodoResponse{ID: 1, Title: "Buy groceries", OwnerID: 7}, nil)

		req := requestWithID(http.MethodPost, "/todos", "", `{"title":"Buy groceries"}`)
		rec := httptest.NewRecorder()

		handler.CreateTodo(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"Buy groceries"`)
	})

	t.Run("missing title rejected", func(t *testing.T) {
		req := requestWithID(http.MethodPost, "/todos", "", `{"description":"no title"}`)
		rec := httptest.NewRecorder()

		handler.CreateTodo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body rejected", func(t *testing.T) {
		req := requestWithID(http.MethodPost, "/todos", "", `{not-json`)
		rec := httptest.NewRecorder()

		handler.CreateTodo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTodoHandler_GetTodos(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockTodo(ctrl)
	handler := todo.New(mockService, nil, mocks.NewOtel())

	t.Run("owner filter always applied", func(t *testing.T) {
		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTodosResponse, error) {
				assert.Equal(t, constant.DefaultValueLimit, params.Limit)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "todos.owner_id = :owner_id")
				assert.Equal(t, int64(7), args["owner_id"])

				return dto.GetTodosResponse{Todos: []dto.TodoResponse{}}, nil
			})

		req := requestWithID(http.MethodGet, "/todos", "", "")
		rec := httptest.NewRecorder()

		handler.GetTodos(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"todos":[]`)
	})

	t.Run("title and completed filters", func(t *testing.T) {
		mockService.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTodosResponse, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "LOWER(todos.title) LIKE LOWER(:title)")
				assert.Contains(t, where, "todos.completed = :completed")
				assert.Equal(t, "%groceries%", args["title"])
				assert.Equal(t, true, args["completed"])

				return dto.GetTodosResponse{Todos: []dto.TodoResponse{}}, nil
			})

		req := requestWithID(http.MethodGet, "/todos?title=groceries&completed=true", "", "")
		rec := httptest.NewRecorder()

		handler.GetTodos(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTodoHandler_GetTodo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockTodo(ctrl)
	handler := todo.New(mockService, nil, mocks.NewOtel())

	t.Run("successful get", func(t *testing.T) {
		mockService.EXPECT().
			Get(gomock.Any(), int64(1)).
			Return(dto.TodoResponse{ID: 1, Title: "Buy groceries", OwnerID: 7}, nil)

		req := requestWithID(http.MethodGet, "/todos/1", "1", "")
		rec := httptest.NewRecorder()

		handler.GetTodo(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := requestWithID(http.MethodGet, "/todos/abc", "abc", "")
		rec := httptest.NewRecorder()

		handler.GetTodo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid id parameter")
	})

	t.Run("not found", func(t *testing.T) {
		mockService.EXPECT().
			Get(gomock.Any(), int64(99)).
			Return(dto.TodoResponse{}, failure.NotFound("todo not found"))

		req := requestWithID(http.MethodGet, "/todos/99", "99", "")
		rec := httptest.NewRecorder()

		handler.GetTodo(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("not owned", func(t *testing.T) {
		mockService.EXPECT().
			Get(gomock.Any(), int64(2)).
			Return(dto.TodoResponse{}, failure.ResourceRestrictedError)

		req := requestWithID(http.MethodGet, "/todos/2", "2", "")
		rec := httptest.NewRecorder()

		handler.GetTodo(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestTodoHandler_UpdateTodo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockTodo(ctrl)
	handler := todo.New(mockService, nil, mocks.NewOtel())

	t.Run("successful update", func(t *testing.T) {
		completed := true

		mockService.EXPECT().
			Update(gomock.Any(), dto.UpdateTodoRequest{Completed: &completed}, int64(1)).
			Return(dto.TodoResponse{ID: 1, Title: "Buy groceries", Completed: true, OwnerID: 7}, nil)

		req := requestWithID(http.MethodPut, "/todos/1", "1", `{"completed":true}`)
		rec := httptest.NewRecorder()

		handler.UpdateTodo(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"completed":true`)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := requestWithID(http.MethodPut, "/todos/abc", "abc", `{"title":"x"}`)
		rec := httptest.NewRecorder()

		handler.UpdateTodo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty update rejected by service", func(t *testing.T) {
		mockService.EXPECT().
			Update(gomock.Any(), dto.UpdateTodoRequest{}, int64(1)).
			Return(dto.TodoResponse{}, failure.BadRequestFromString("update request cannot be empty"))

		req := requestWithID(http.MethodPut, "/todos/1", "1", `{}`)
		rec := httptest.NewRecorder()

		handler.UpdateTodo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTodoHandler_DeleteTodo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := serviceMocks.NewMockTodo(ctrl)
	handler := todo.New(mockService, nil, mocks.NewOtel())

	t.Run("successful delete returns prior state", func(t *testing.T) {
		mockService.EXPECT().
			Delete(gomock.Any(), int64(1)).
			Return(dto.TodoResponse{ID: 1, Title: "Buy groceries", OwnerID: 7}, nil)

		req := requestWithID(http.MethodDelete, "/todos/1", "1", "")
		rec := httptest.NewRecorder()

		handler.DeleteTodo(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"Buy groceries"`)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := requestWithID(http.MethodDelete, "/todos/abc", "abc", "")
		rec := httptest.NewRecorder()

		handler.DeleteTodo(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
