package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/repository"
	"todoapp/shared"
	"todoapp/shared/cache"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTodo    = "todo:get"
	cacheGetAllTodo = "todo:gets"
)

type Todo interface {
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTodosResponse, error)
	Get(ctx context.Context, id int64) (dto.TodoResponse, error)
	Update(ctx context.Context, req dto.UpdateTodoRequest, id int64) (dto.TodoResponse, error)
	Delete(ctx context.Context, id int64) (dto.TodoResponse, error)
}

type serviceImpl struct {
	repo  repository.Todo
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Todo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Todo {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	todo := req.ToModel(ownerID)

	id, err := s.repo.Insert(ctx, todo)
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, fmt.Errorf("failed to create todo: %w", err)
	}

	todo.ID = id
	res.FromModel(todo)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTodo)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTodosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTodo, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for todos")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return res, fmt.Errorf("failed to get todos: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save todos to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(int64)
	cacheKey := shared.BuildCacheKey(cacheGetTodo, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for todo")

		if res.OwnerID != ownerID {
			return dto.TodoResponse{}, failure.ResourceRestrictedError
		}

		return res, nil
	}

	todo, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return dto.TodoResponse{}, err
	}

	res.FromModel(todo)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save todo to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTodoRequest, id int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTodoRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	if _, err = s.getOwned(ctx, id, ownerID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	updatedFields := shared.TransformFields(req)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update todo")

		return res, fmt.Errorf("failed to update todo: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get updated todo")

		return res, fmt.Errorf("failed to get updated todo: %w", err)
	}

	res.FromModel(updated)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTodo, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete todo from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTodo)
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	ownerID, _ := ctx.Value(constant.ContextKeyUserID).(int64)

	todo, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return res, err
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete todo")

		return res, fmt.Errorf("failed to delete todo: %w", err)
	}

	res.FromModel(todo)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTodo, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete todo from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTodo)
	}()

	return res, nil
}

// getOwned loads the todo and enforces the existence-then-ownership order:
// a missing row is a 404, a row owned by another user is a 403.
func (s *serviceImpl) getOwned(ctx context.Context, id, ownerID int64) (model.Todo, error) {
	todo, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo")

		return todo, fmt.Errorf("failed to get todo: %w", err)
	}

	if todo.ID == 0 {
		return todo, failure.NotFound("todo not found")
	}

	if todo.OwnerID != ownerID {
		log.Warn().Int64("todo_id", id).Int64("user_id", ownerID).Msg("todo access denied")

		return todo, failure.ResourceRestrictedError
	}

	return todo, nil
}
