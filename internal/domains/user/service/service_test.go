package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"todoapp/config"
	"todoapp/infras/otel/mocks"
	userMocks "todoapp/internal/domains/user/mocks"
	"todoapp/internal/domains/user/model"
	"todoapp/internal/domains/user/model/dto"
	"todoapp/internal/domains/user/service"
	cacheMocks "todoapp/shared/cache/mocks"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	gModel "todoapp/shared/model"
	"todoapp/shared/timezone"
)

func testUser() model.User {
	return model.User{
		ID:       42,
		Email:    "test@example.com",
		Username: "testuser",
		Password: "hashed-password",
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

func TestUserService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	t.Run("cache miss, found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testUser(), nil)

		res, err := svc.Get(context.Background(), 42)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
		assert.Equal(t, "test@example.com", res.Email)
	})

	t.Run("cache hit", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.UserResponse)
				assert.True(t, ok)

				res.FromModel(testUser())

				return nil
			})

		res, err := svc.Get(context.Background(), 42)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), 99)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.User{}, errors.New("database error"))

		_, err := svc.Get(context.Background(), 42)

		assert.Error(t, err)
	})
}

func TestUserService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	params := gDto.QueryParams{Limit: 10, SortBy: "id", SortDir: "ASC"}
	filter := gDto.FilterGroup{}

	t.Run("cache miss, successful get", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), filter).
			Return(11, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), params, filter).
			Return([]model.User{testUser()}, nil)

		res, err := svc.GetAll(context.Background(), params, filter)

		assert.NoError(t, err)
		assert.Len(t, res.Users, 1)
		assert.Equal(t, 11, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
	})

	t.Run("count error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), filter).
			Return(0, errors.New("database error"))

		_, err := svc.GetAll(context.Background(), params, filter)

		assert.Error(t, err)
	})

	t.Run("repository error", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss")).
			Times(2)

		mockRepo.EXPECT().
			Count(gomock.Any(), filter).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), params, filter).
			Return(nil, errors.New("database error"))

		_, err := svc.GetAll(context.Background(), params, filter)

		assert.Error(t, err)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := userMocks.NewMockUser(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	newEmail := "changed@example.com"
	newUsername := "changeduser"

	t.Run("empty update request", func(t *testing.T) {
		_, err := svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{}, 42)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("user not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		_, err := svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Email: &newEmail}, 99)

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("email taken by another user", func(t *testing.T) {
		gomock.InOrder(
			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil),
			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil),
		)

		_, err := svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Email: &newEmail}, 42)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "email already registered", err.Error())
	})

	t.Run("username taken by another user", func(t *testing.T) {
		gomock.InOrder(
			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil),
			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil),
		)

		_, err := svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Username: &newUsername}, 42)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "username already taken", err.Error())
	})

	t.Run("successful update", func(t *testing.T) {
		updated := testUser()
		updated.Email = newEmail

		gomock.InOrder(
			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(true, nil),
			mockRepo.EXPECT().
				Exist(gomock.Any(), gomock.Any()).
				Return(false, nil),
		)

		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, newEmail, fields["email"])

				return nil
			})

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(updated, nil)

		res, err := svc.UpdateProfile(context.Background(), dto.UpdateProfileRequest{Email: &newEmail}, 42)

		assert.NoError(t, err)
		assert.Equal(t, newEmail, res.Email)
	})
}
