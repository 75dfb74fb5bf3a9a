package request_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"roomly/shared/failure"
	"roomly/transport/http/request"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		path string
		id   int64
		ok   bool
	}{
		{path: "/bookings/12", id: 12, ok: true},
		{path: "/bookings/0"},
		{path: "/bookings/-3"},
		{path: "/bookings/abc"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var (
				id  int64
				err error
			)

			router := chi.NewRouter()
			router.Get("/bookings/{id}", func(_ http.ResponseWriter, r *http.Request) {
				id, err = request.ID(r, "id")
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))

			if !tt.ok {
				require.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestMultipartForm(t *testing.T) {
	t.Run("multipart body", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.WriteField("location_name", "Da Lat"))
		require.NoError(t, writer.Close())

		r := httptest.NewRequest(http.MethodPost, "/locations", body)
		r.Header.Set("Content-Type", writer.FormDataContentType())

		require.NoError(t, request.MultipartForm(r))
		assert.Equal(t, "Da Lat", r.FormValue("location_name"))
	})

	t.Run("json body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/locations", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")

		err := request.MultipartForm(r)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}
