package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"roomly/config"
	"roomly/infras/kafka"
	"roomly/infras/otel"
	"roomly/infras/postgres"
	"roomly/shared/constant"
	"roomly/transport/http/middleware"
	"roomly/transport/http/response"
	"roomly/transport/http/router"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "roomly/docs" // swagger spec

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	defaultHost       = "0.0.0.0"
	readHeaderTimeout = 10 * time.Second
)

type HTTP struct {
	Config   *config.Config
	Router   router.Router
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
	Otel     otel.Otel
	Producer kafka.Producer
	DB       *postgres.Connection

	state  atomic.Int32
	once   sync.Once
	mux    chi.Router
	server *http.Server
}

func New(
	cfg *config.Config,
	r router.Router,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	otl otel.Otel,
	producer kafka.Producer,
	db *postgres.Connection,
) *HTTP {
	return &HTTP{
		Config:   cfg,
		Router:   r,
		App:      app,
		AuthRole: authRole,
		Otel:     otl,
		Producer: producer,
		DB:       db,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

func (h *HTTP) Serve() {
	h.setup()
	h.setupGracefulShutdown()

	host := h.Config.Server.Host
	if host == "" {
		host = defaultHost
	}

	h.server = &http.Server{
		Addr:              net.JoinHostPort(host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// ServeHTTP lets the server run behind a serverless entrypoint.
func (h *HTTP) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.setup()
	h.mux.ServeHTTP(writer, request)
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		h.setupRoutes()
		h.setState(ServerStateReady)
	})
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(chiMiddleware.Recoverer)
	mux.Use(h.App.Tracing)
	mux.Use(h.App.Metrics)

	if h.Config.App.CORS.Enable {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	mux.Use(h.App.RateLimit())

	mux.Get("/health", h.health)
	mux.Get("/swagger/*", httpSwagger.WrapHandler)

	if h.Config.App.Metrics.Enable {
		mux.Handle(h.Config.App.Metrics.Route, promhttp.Handler())
	}

	mux.Group(func(secured chi.Router) {
		secured.Use(h.AuthRole.APIKey)
		secured.Use(h.AuthRole.Auth)
		secured.Use(h.AuthRole.RBAC)

		h.Router.SetupRoutes(secured)
	})

	h.mux = mux
}

func (h *HTTP) health(writer http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(writer, http.StatusOK, "OK")
	case ServerStateInGracePeriod:
		response.WithPreparingShutdown(writer)
	default:
		response.WithUnhealthy(writer)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
		h.shutdown(0)

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	h.shutdown(time.Duration(shutdownConfig.CleanupPeriodSeconds) * time.Second)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}

// shutdown drains in-flight requests within timeout, then releases the producer, database and tracer.
func (h *HTTP) shutdown(timeout time.Duration) {
	ctx := context.Background()

	if timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if h.server != nil {
		if err := h.server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("failed to shut down HTTP server")
		}
	}

	if err := h.Producer.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close kafka producer")
	}

	if h.DB != nil {
		if err := h.DB.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close database pools")
		}
	}

	if err := h.Otel.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shut down tracer provider")
	}
}
