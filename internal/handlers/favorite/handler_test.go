package favorite_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roomly/infras/otel/mocks"
	"roomly/internal/domains/favorite/model/dto"
	favoriteMocks "roomly/internal/domains/favorite/service/mocks"
	"roomly/internal/handlers/favorite"
	gDto "roomly/shared/dto"
	"roomly/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *favoriteMocks.MockFavorite) {
	t.Helper()

	svc := favoriteMocks.NewMockFavorite(gomock.NewController(t))
	handler := favorite.New(svc, mocks.NewOtel())

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

func TestHandler_ToggleFavorite(t *testing.T) {
	tests := []struct {
		name     string
		result   dto.ToggleFavoriteResponse
		favorite bool
	}{
		{name: "added", result: dto.NewToggleFavoriteResponse(true), favorite: true},
		{name: "removed", result: dto.NewToggleFavoriteResponse(false), favorite: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, svc := newRouter(t)

			svc.EXPECT().Toggle(gomock.Any(), dto.ToggleFavoriteRequest{RoomID: 3}).Return(tt.result, nil)

			code, body := do(router, http.MethodPost, "/favorites/toggle", `{"room_id":3}`)

			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.result.Message, body["message"])
			assert.Equal(t, tt.favorite, body["data"].(map[string]any)["is_favorite"])
		})
	}

	t.Run("missing room", func(t *testing.T) {
		router, _ := newRouter(t)

		code, _ := do(router, http.MethodPost, "/favorites/toggle", `{}`)

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestHandler_GetFavoritesByUser(t *testing.T) {
	t.Run("listed", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			GetByUser(gomock.Any(), int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, params gDto.QueryParams) (dto.GetFavoritesResponse, error) {
				assert.Equal(t, 1, params.Page)

				return dto.GetFavoritesResponse{Items: []dto.FavoriteResponse{{ID: 1, RoomID: 3}}}, nil
			})

		code, body := do(router, http.MethodGet, "/favorites/user/7", "")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Get favorites successfully", body["message"])
	})

	t.Run("someone else's list", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetByUser(gomock.Any(), int64(8), gomock.Any()).
			Return(dto.GetFavoritesResponse{}, failure.Forbidden("You cannot access favorites of other users"))

		code, _ := do(router, http.MethodGet, "/favorites/user/8", "")

		assert.Equal(t, http.StatusForbidden, code)
	})
}

func TestHandler_GetFavoriteStatus(t *testing.T) {
	t.Run("favorited", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().GetByUserAndRoom(gomock.Any(), int64(7), int64(3)).
			Return(dto.FavoriteStatusResponse{UserID: 7, RoomID: 3, IsFavorite: true}, nil)

		code, body := do(router, http.MethodGet, "/favorites/user/7/room/3", "")

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["data"].(map[string]any)["is_favorite"])
	})

	t.Run("invalid room id", func(t *testing.T) {
		router, _ := newRouter(t)

		code, body := do(router, http.MethodGet, "/favorites/user/7/room/-3", "")

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "roomId must be a positive number", body["message"])
	})
}
