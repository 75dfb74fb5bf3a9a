package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"roomly/config"
	jwtMocks "roomly/infras/jwt/mocks"
	"roomly/infras/otel/mocks"
	"roomly/permissions"
	cacheMocks "roomly/shared/cache/mocks"
	"roomly/transport/http/middleware"
	"roomly/transport/http/router"
)

func newTestServer(t *testing.T) *HTTP {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	otl := mocks.NewOtel()

	app := middleware.NewAppMiddleware(otl, cfg, cacheMocks.NewMockRedisCache(ctrl))
	authRole := middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(ctrl), otl, permissions.Get(), cfg)

	return New(cfg, router.New(router.DomainHandlers{}), app, authRole, otl, nil, nil)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name  string
		state ServerState
		code  int
	}{
		{name: "ready", state: ServerStateReady, code: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, code: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t)
			server.setup()
			server.setState(tt.state)

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, recorder.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.state == ServerStateReady, body["success"])
		})
	}
}

func TestServeHTTP_SetsUpOnce(t *testing.T) {
	server := newTestServer(t)

	assert.Equal(t, ServerState(0), server.State())

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, ServerStateReady, server.State())
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestProtectedRouteNeedsToken(t *testing.T) {
	server := newTestServer(t)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
