package comment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomly/infras/otel/mocks"
	"roomly/internal/domains/comment/model/dto"
	commentMocks "roomly/internal/domains/comment/service/mocks"
	"roomly/internal/handlers/comment"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *commentMocks.MockComment) {
	t.Helper()

	svc := commentMocks.NewMockComment(gomock.NewController(t))
	handler := comment.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func do(router http.Handler, method, target, body string) (int, map[string]any) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	var envelope map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &envelope)

	return recorder.Code, envelope
}

func TestHandler_CreateComment(t *testing.T) {
	tests := []struct {
		name string
		body string
		code int
	}{
		{name: "created", body: `{"content":"Lovely view","rating":5,"room_id":3}`, code: http.StatusCreated},
		{name: "rating out of range", body: `{"content":"Lovely view","rating":6,"room_id":3}`, code: http.StatusBadRequest},
		{name: "missing room", body: `{"content":"Lovely view","rating":4}`, code: http.StatusBadRequest},
		{name: "malformed body", body: `{"content":`, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)

			if tt.code == http.StatusCreated {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.CommentResponse{ID: 12, Rating: 5}, nil)
			}

			code, body := do(router, http.MethodPost, "/comments", tt.body)

			assert.Equal(t, tt.code, code)

			if tt.code == http.StatusCreated {
				assert.Equal(t, "Create comment successfully", body["message"])
			}
		})
	}
}

func TestHandler_GetComments(t *testing.T) {
	t.Run("filters by room", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, query dto.ListCommentsQuery) (dto.GetCommentsResponse, error) {
				require.NotNil(t, query.RoomID)
				assert.Equal(t, int64(3), *query.RoomID)
				assert.Nil(t, query.UserID)

				return dto.GetCommentsResponse{}, nil
			})

		code, _ := do(router, http.MethodGet, "/comments?room_id=3", "")

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("bad user id", func(t *testing.T) {
		router, _ := newRouter(t)

		code, _ := do(router, http.MethodGet, "/comments?user_id=abc", "")

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestHandler_GetCommentsByRoom(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetByRoom(gomock.Any(), int64(3)).
			Return([]dto.RoomCommentResponse{{ID: 1, UserComment: "Lan"}, {ID: 2, UserComment: "Minh"}}, nil)

		code, body := do(router, http.MethodGet, "/comments/room/3", "")

		assert.Equal(t, http.StatusOK, code)
		assert.Len(t, body["data"], 2)
	})

	t.Run("room missing", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetByRoom(gomock.Any(), int64(99)).
			Return(nil, failure.NotFound("Room with ID 99 not found"))

		code, body := do(router, http.MethodGet, "/comments/room/99", "")

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Room with ID 99 not found", body["message"])
	})

	t.Run("invalid room id", func(t *testing.T) {
		router, _ := newRouter(t)

		code, body := do(router, http.MethodGet, "/comments/room/zero", "")

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "roomId must be a positive number", body["message"])
	})
}

func TestHandler_UpdateComment(t *testing.T) {
	t.Run("not the author", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().Update(gomock.Any(), int64(12), gomock.Any()).
			Return(dto.CommentResponse{}, failure.Forbidden("You cannot modify comments of other users"))

		code, _ := do(router, http.MethodPatch, "/comments/12", `{"rating":2}`)

		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("updated", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			Update(gomock.Any(), int64(12), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, req dto.UpdateCommentRequest) (dto.CommentResponse, error) {
				require.NotNil(t, req.Rating)
				assert.Equal(t, 2, *req.Rating)
				assert.Nil(t, req.Content)

				return dto.CommentResponse{ID: 12, Rating: 2}, nil
			})

		code, body := do(router, http.MethodPatch, "/comments/12", `{"rating":2}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Update comment successfully", body["message"])
	})
}

func TestHandler_DeleteComment(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), int64(12)).Return(nil)

	code, body := do(router, http.MethodDelete, "/comments/12", "")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Delete comment successfully", body["message"])
}
