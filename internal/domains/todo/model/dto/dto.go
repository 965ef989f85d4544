package dto

import (
	"todoapp/internal/domains/todo/model"
	gDto "todoapp/shared/dto"
	gModel "todoapp/shared/model"
	"todoapp/shared/timezone"
)

type CreateTodoRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

func (c *CreateTodoRequest) ToModel(ownerID int64) model.Todo {
	return model.Todo{
		Title:       c.Title,
		Description: c.Description,
		Completed:   false,
		OwnerID:     ownerID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateTodoRequest struct {
	Title       string `db:"title"       json:"title"       validate:"omitempty,max=255"`
	Description string `db:"description" json:"description" validate:"omitempty,max=255"`
	Completed   *bool  `db:"completed"   json:"completed"   validate:"omitempty"`
}

type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	OwnerID     int64  `json:"owner_id"`
	gDto.Metadata
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Completed = model.Completed
	r.OwnerID = model.OwnerID
	r.Metadata.FromModel(model.Metadata)
}

type GetTodosResponse struct {
	Todos []TodoResponse `json:"todos"`
}

func (r *GetTodosResponse) FromModels(models []model.Todo) {
	r.Todos = make([]TodoResponse, len(models))
	for i, mod := range models {
		r.Todos[i].FromModel(mod)
	}
}
