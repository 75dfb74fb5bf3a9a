package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomly/infras/otel/mocks"
	commentMocks "roomly/internal/domains/comment/mocks"
	"roomly/internal/domains/comment/model"
	"roomly/internal/domains/comment/model/dto"
	"roomly/internal/domains/comment/service"
	roomMocks "roomly/internal/domains/room/mocks"
	roomModel "roomly/internal/domains/room/model"
	userMocks "roomly/internal/domains/user/mocks"
	userModel "roomly/internal/domains/user/model"
	"roomly/shared/constant"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
	"roomly/shared/timezone"
)

var now = time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   service.Comment
	repo  *commentMocks.MockComment
	users *userMocks.MockUser
	rooms *roomMocks.MockRoom
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  commentMocks.NewMockComment(ctrl),
		users: userMocks.NewMockUser(ctrl),
		rooms: roomMocks.NewMockRoom(ctrl),
	}

	f.svc = service.New(f.repo, f.users, f.rooms, mocks.NewOtel(), timezone.FixedClock(now))

	return f
}

func actor(id int64, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func intPtr(v int) *int {
	return &v
}

func TestCommentService_Create(t *testing.T) {
	req := dto.CreateCommentRequest{Content: "Very comfortable", Rating: 5, RoomID: 3}

	t.Run("writes as the caller", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, int64(2), args[userModel.FieldID])

				return userModel.User{ID: 2, Name: "Linh"}, nil
			})
		f.rooms.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(roomModel.Room{ID: 3, RoomName: "Sea view"}, nil)
		f.repo.EXPECT().
			InsertReturningID(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, comment model.Comment) (int64, error) {
				assert.Equal(t, int64(2), comment.UserID)
				assert.Equal(t, now, comment.CommentDate)

				return 15, nil
			})

		res, err := f.svc.Create(actor(2, constant.RoleUser), req)
		require.NoError(t, err)
		assert.Equal(t, int64(15), res.ID)
		assert.Equal(t, "Linh", res.User.Name)
		assert.Equal(t, "Sea view", res.Room.RoomName)
	})

	t.Run("missing user", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)

		_, err := f.svc.Create(actor(2, constant.RoleUser), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "User with id 2 not found", failure.GetMessage(err))
	})

	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)

		f.users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{ID: 2}, nil)
		f.rooms.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(roomModel.Room{}, nil)

		_, err := f.svc.Create(actor(2, constant.RoleUser), req)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "Room with id 3 not found", failure.GetMessage(err))
	})
}

func TestCommentService_GetAll(t *testing.T) {
	f := newFixture(t)

	roomID := int64(3)
	query := dto.ListCommentsQuery{RoomID: &roomID}

	f.repo.EXPECT().CountDetail(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup) ([]model.CommentDetail, error) {
			assert.Equal(t, "comments.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.CommentDetail{{Comment: model.Comment{ID: 1, RoomID: 3}}}, nil
		})

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, query)
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalItem)
	assert.Equal(t, 1, res.TotalPage)
	require.Len(t, res.Items, 1)
}

func TestCommentService_GetByRoom(t *testing.T) {
	t.Run("missing room", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.GetByRoom(context.Background(), 99)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("projects comments", func(t *testing.T) {
		f := newFixture(t)

		avatar := "https://cdn.roomly.dev/avatars/linh.png"

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.CommentDetail{{
				Comment:    model.Comment{ID: 7, Content: "Great", Rating: 4, CommentDate: now},
				UserName:   "Linh",
				UserAvatar: &avatar,
			}}, nil)

		res, err := f.svc.GetByRoom(context.Background(), 3)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "Linh", res[0].UserComment)
		assert.Equal(t, &avatar, res[0].Avatar)
		assert.Equal(t, 4, res[0].Rating)
	})

	t.Run("empty room returns an empty list", func(t *testing.T) {
		f := newFixture(t)

		f.rooms.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAllDetail(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetByRoom(context.Background(), 3)
		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}

func TestCommentService_Update(t *testing.T) {
	t.Run("owner updates the rating", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Comment{ID: 7, UserID: 2}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 3, fields[model.FieldRating])
				assert.Equal(t, now, fields[constant.FieldUpdatedAt])

				return nil
			})
		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.CommentDetail{Comment: model.Comment{ID: 7, Rating: 3}}, nil)

		res, err := f.svc.Update(actor(2, constant.RoleUser), 7, dto.UpdateCommentRequest{Rating: intPtr(3)})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Rating)
	})

	t.Run("empty request", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(actor(2, constant.RoleUser), 7, dto.UpdateCommentRequest{})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("another user's comment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Comment{ID: 7, UserID: 5}, nil)

		_, err := f.svc.Update(actor(2, constant.RoleUser), 7, dto.UpdateCommentRequest{Rating: intPtr(3)})
		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})
}

func TestCommentService_Delete(t *testing.T) {
	t.Run("admin removes any comment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Comment{ID: 7, UserID: 5}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, f.svc.Delete(actor(1, constant.RoleAdmin), 7))
	})

	t.Run("missing comment", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Comment{}, nil)

		err := f.svc.Delete(actor(1, constant.RoleAdmin), 7)
		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.Equal(t, "Comment with ID 7 not found", failure.GetMessage(err))
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Comment{ID: 7, UserID: 1}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		err := f.svc.Delete(actor(1, constant.RoleAdmin), 7)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
