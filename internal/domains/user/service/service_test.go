package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomly/infras/otel/mocks"
	s3Mocks "roomly/infras/s3/mocks"
	userMocks "roomly/internal/domains/user/mocks"
	"roomly/internal/domains/user/model"
	"roomly/internal/domains/user/model/dto"
	"roomly/internal/domains/user/service"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/password"
)

func strPtr(s string) *string {
	return &s
}

func newService(t *testing.T) (service.User, *userMocks.MockUser, *s3Mocks.MockS3) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)

	return service.New(mockRepo, mocks.NewOtel(), mockS3), mockRepo, mockS3
}

func actor(id int64, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func TestUserService_Create(t *testing.T) {
	req := dto.CreateUserRequest{
		Name:     "Lan",
		Email:    "lan@example.com",
		Password: "secret123",
	}

	t.Run("success hashes password and defaults role", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().
			InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user model.User) (int64, error) {
				assert.Equal(t, constant.RoleUser, user.Role)
				require.NotNil(t, user.Password)
				assert.NoError(t, password.Verify("secret123", *user.Password))

				return 12, nil
			})

		res, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(12), res.ID)
		assert.Equal(t, "lan@example.com", res.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "Email already exists", err.Error())
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		_, err := svc.Create(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestUserService_GetAll(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.User, error) {
			assert.Equal(t, model.FieldID, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.User{{ID: 1, Name: "Lan"}, {ID: 2, Name: "Minh"}}, nil
		})

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListUsersQuery{Keyword: "an"})
	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalItem)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Items, 2)
}

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: 3, Name: "Lan", Role: constant.RoleUser}, nil)

		res, err := svc.Get(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, "Lan", res.Name)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := svc.Get(context.Background(), 3)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "User with id 3 not found", err.Error())
	})
}

func TestUserService_Update(t *testing.T) {
	current := model.User{ID: 3, Name: "Lan", Email: "lan@example.com", Role: constant.RoleUser}

	t.Run("email cannot change", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := svc.Update(context.Background(), 3, dto.UpdateUserRequest{Email: strPtr("other@example.com")})
		require.Error(t, err)
		assert.Equal(t, "Email cannot be updated", err.Error())
	})

	t.Run("empty request", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Update(context.Background(), 3, dto.UpdateUserRequest{})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("password is rehashed", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		gomock.InOrder(
			mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil),
			mockRepo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
					hashed, ok := fields[model.FieldPassword].(*string)
					require.True(t, ok)
					assert.NoError(t, password.Verify("newpass1", *hashed))
					assert.Equal(t, "Lan Nguyen", *fields[model.FieldName].(*string))

					return nil
				}),
			mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{ID: 3, Name: "Lan Nguyen"}, nil),
		)

		res, err := svc.Update(context.Background(), 3, dto.UpdateUserRequest{
			Name:     strPtr("Lan Nguyen"),
			Email:    strPtr("lan@example.com"),
			Password: strPtr("newpass1"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Lan Nguyen", res.Name)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("soft deletes", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, fields[constant.FieldIsDeleted])
				assert.Equal(t, int64(1), fields[constant.FieldDeletedBy])

				return nil
			})

		assert.NoError(t, svc.Delete(actor(1, constant.RoleAdmin), 3))
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Delete(actor(1, constant.RoleAdmin), 3)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_UploadAvatar(t *testing.T) {
	req := dto.UploadAvatarRequest{Avatar: "data:image/png;base64,iVBORw0KGgo="}
	current := model.User{ID: 3, Name: "Lan", Avatar: strPtr("https://cdn.example.com/avatars/old.png")}

	t.Run("replaces previous avatar", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		mockS3.EXPECT().
			UploadFileBytes(gomock.Any(), "avatars", "image/png", gomock.Any()).
			Return("https://cdn.example.com/avatars/new.png", nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		mockS3.EXPECT().DeleteFileByURL(gomock.Any(), "https://cdn.example.com/avatars/old.png").Return(nil)

		res, err := svc.UploadAvatar(actor(3, constant.RoleUser), 3, req)
		require.NoError(t, err)
		require.NotNil(t, res.Avatar)
		assert.Equal(t, "https://cdn.example.com/avatars/new.png", *res.Avatar)
	})

	t.Run("other users are forbidden", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.UploadAvatar(actor(4, constant.RoleUser), 3, req)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("invalid data uri", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)

		_, err := svc.UploadAvatar(actor(1, constant.RoleAdmin), 3, dto.UploadAvatarRequest{Avatar: "not-a-data-uri"})
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("orphaned upload is removed on save failure", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(current, nil)
		mockS3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("https://cdn.example.com/avatars/new.png", nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		mockS3.EXPECT().DeleteFileByURL(gomock.Any(), "https://cdn.example.com/avatars/new.png").Return(nil)

		_, err := svc.UploadAvatar(actor(1, constant.RoleAdmin), 3, req)
		assert.Error(t, err)
	})
}
