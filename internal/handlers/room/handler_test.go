package room_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roomly/infras/otel/mocks"
	"roomly/internal/domains/room/model/dto"
	roomMocks "roomly/internal/domains/room/service/mocks"
	"roomly/internal/handlers/room"
	gDto "roomly/shared/dto"
)

func newRouter(t *testing.T) (http.Handler, *roomMocks.MockRoom) {
	t.Helper()

	svc := roomMocks.NewMockRoom(gomock.NewController(t))
	handler := room.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func form(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	require.NoError(t, writer.Close())

	r := httptest.NewRequest(method, target, body)
	r.Header.Set("Content-Type", writer.FormDataContentType())

	return r
}

func serve(router http.Handler, r *http.Request) (int, map[string]any) {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, r)

	var envelope map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &envelope)

	return recorder.Code, envelope
}

func TestHandler_CreateRoom(t *testing.T) {
	t.Run("reads numbers and amenities from the form", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
				assert.Equal(t, "Garden studio", req.RoomName)
				assert.Equal(t, 3, req.GuestCount)
				assert.Equal(t, int64(650000), req.Price)
				assert.Equal(t, int64(2), req.LocationID)
				require.NotNil(t, req.Wifi)
				assert.True(t, *req.Wifi)

				return dto.RoomResponse{ID: 8, RoomName: req.RoomName}, nil
			})

		code, body := serve(router, form(t, http.MethodPost, "/rooms", map[string]string{
			"room_name":   "Garden studio",
			"guest_count": "3",
			"price":       "650000",
			"location_id": "2",
			"wifi":        "true",
		}))

		assert.Equal(t, http.StatusCreated, code)
		assert.Equal(t, float64(8), body["data"].(map[string]any)["id"])
	})

	t.Run("non numeric price", func(t *testing.T) {
		router, _ := newRouter(t)

		code, body := serve(router, form(t, http.MethodPost, "/rooms", map[string]string{
			"room_name":   "Garden studio",
			"price":       "cheap",
			"location_id": "2",
		}))

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "price must be a number", body["message"])
	})

	t.Run("missing location", func(t *testing.T) {
		router, _ := newRouter(t)

		code, _ := serve(router, form(t, http.MethodPost, "/rooms", map[string]string{"room_name": "Garden studio"}))

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestHandler_GetRooms(t *testing.T) {
	t.Run("parses filters", func(t *testing.T) {
		router, svc := newRouter(t)

		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, query dto.ListRoomsQuery) (dto.GetRoomsResponse, error) {
				require.NotNil(t, query.LocationID)
				assert.Equal(t, int64(2), *query.LocationID)
				require.NotNil(t, query.GuestCount)
				assert.Equal(t, 4, *query.GuestCount)

				return dto.GetRoomsResponse{}, nil
			})

		code, _ := serve(router, httptest.NewRequest(http.MethodGet, "/rooms?location_id=2&guest_count=4", nil))

		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("invalid guest count", func(t *testing.T) {
		router, _ := newRouter(t)

		code, _ := serve(router, httptest.NewRequest(http.MethodGet, "/rooms?guest_count=-1", nil))

		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestHandler_GetRoomByID(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), int64(8)).Return(dto.RoomResponse{ID: 8}, nil)

	code, _ := serve(router, httptest.NewRequest(http.MethodGet, "/rooms/8", nil))

	assert.Equal(t, http.StatusOK, code)
}

func TestHandler_DeleteRoom(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Delete(gomock.Any(), int64(8)).Return(nil)

	code, body := serve(router, httptest.NewRequest(http.MethodDelete, "/rooms/8", nil))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Delete room successfully", body["message"])
}
