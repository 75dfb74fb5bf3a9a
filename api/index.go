package handler

import (
	"net/http"
	"roomly/config"
	"roomly/di"
	"roomly/shared/logger"
	"sync"
)

var (
	once   sync.Once
	server http.Handler
)

// Handler is the serverless entrypoint. The dependency graph is built once per
// warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.Configure(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
