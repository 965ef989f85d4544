package dto_test

import (
	"testing"

	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	gModel "todoapp/shared/model"
	"todoapp/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateTodoRequest_ToModel(t *testing.T) {
	req := dto.CreateTodoRequest{
		Title:       "Buy groceries",
		Description: "Milk and eggs",
	}

	todo := req.ToModel(7)

	assert.Equal(t, "Buy groceries", todo.Title)
	assert.Equal(t, "Milk and eggs", todo.Description)
	assert.Equal(t, int64(7), todo.OwnerID)
	assert.False(t, todo.Completed)
	assert.False(t, todo.CreatedAt.IsZero())
	assert.False(t, todo.ModifiedAt.IsZero())
}

func TestTodoResponse_FromModel(t *testing.T) {
	todo := model.Todo{
		ID:          1,
		Title:       "Buy groceries",
		Description: "Milk and eggs",
		Completed:   true,
		OwnerID:     7,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	res := dto.TodoResponse{}
	res.FromModel(todo)

	assert.Equal(t, int64(1), res.ID)
	assert.Equal(t, "Buy groceries", res.Title)
	assert.Equal(t, "Milk and eggs", res.Description)
	assert.True(t, res.Completed)
	assert.Equal(t, int64(7), res.OwnerID)
	assert.NotEmpty(t, res.CreatedAt)
	assert.NotEmpty(t, res.ModifiedAt)
}

func TestGetTodosResponse_FromModels(t *testing.T) {
	t.Run("empty slice", func(t *testing.T) {
		res := dto.GetTodosResponse{}
		res.FromModels([]model.Todo{})

		assert.NotNil(t, res.Todos)
		assert.Empty(t, res.Todos)
	})

	t.Run("multiple todos", func(t *testing.T) {
		todos := []model.Todo{
			{ID: 1, Title: "first", OwnerID: 7},
			{ID: 2, Title: "second", OwnerID: 7},
		}

		res := dto.GetTodosResponse{}
		res.FromModels(todos)

		assert.Len(t, res.Todos, 2)
		assert.Equal(t, "first", res.Todos[0].Title)
		assert.Equal(t, "second", res.Todos[1].Title)
	})
}
